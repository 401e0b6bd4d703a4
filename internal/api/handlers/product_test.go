package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListProducts(t *testing.T) {

	t.Run("Success - Filters From Query", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockProductService(t)
		handler := handlers.NewProductHandler(mockService)
		categoryID := uuid.New()

		products := []*models.Product{
			{ID: uuid.New(), Name: "Capacete LS2 FF353", Price: decimal.RequireFromString("499.90"), Active: true},
			{ID: uuid.New(), Name: "Capacete LS2 FF358", Price: decimal.RequireFromString("899.90"), Active: true},
		}

		mockService.On("ListStorefrontProducts", mock.Anything, models.ProductFilter{
			Search:     "ls2",
			CategoryID: &categoryID,
			Page:       2,
			PageSize:   10,
		}).Return(products, 12, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet,
			"/api/v1/products?search=ls2&category="+categoryID.String()+"&page=2&pageSize=10", nil, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.ListProducts().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		got := decodeData[page[models.Product]](t, rr)
		assert.Len(t, got.Data, 2)
		assert.Equal(t, 12, got.Total)
		assert.Equal(t, 2, got.Page)
		assert.Equal(t, 10, got.PageSize)
	})

	t.Run("Failure - Invalid Brand", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockProductService(t)
		handler := handlers.NewProductHandler(mockService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products?brand=shoei", nil, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.ListProducts().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid brand format", decodeError(t, rr).Message)
		mockService.AssertNotCalled(t, "ListStorefrontProducts")
	})
}

func TestAdminListProducts(t *testing.T) {

	// Arrange
	mockService := mocks.NewMockProductService(t)
	handler := handlers.NewProductHandler(mockService)

	mockService.On("ListProducts", mock.Anything, mock.MatchedBy(func(f models.ProductFilter) bool {
		return f.ActiveOnly && f.Page == 1 && f.PageSize == models.DefaultPageSize
	})).Return([]*models.Product{}, 0, nil).Once()

	req := testutils.CreateTestRequestWithRole(http.MethodGet, "/api/v1/admin/products?active=true", nil, uuid.New(), models.RoleAdmin, nil)
	rr := httptest.NewRecorder()

	// Act
	handler.AdminListProducts().ServeHTTP(rr, req)

	// Assert
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decodeData[page[models.Product]](t, rr).Data)
}

func TestGetProduct(t *testing.T) {

	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockProductService(t)
		handler := handlers.NewProductHandler(mockService)

		mockService.On("GetStorefrontProduct", mock.Anything, productID).Return(&models.Product{
			ID:            productID,
			Name:          "Capacete Norisk Razor",
			Price:         decimal.RequireFromString("649.00"),
			StockQuantity: 4,
			Sizes:         []string{"56", "58", "60"},
		}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/"+productID.String(), nil,
			map[string]string{"id": productID.String()})
		rr := httptest.NewRecorder()

		// Act
		handler.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		product := decodeData[models.Product](t, rr)
		assert.Equal(t, productID, product.ID)
		assert.Equal(t, []string{"56", "58", "60"}, product.Sizes)
	})

	t.Run("Failure - Inactive Product Is Not Found", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockProductService(t)
		handler := handlers.NewProductHandler(mockService)

		mockService.On("GetStorefrontProduct", mock.Anything, productID).Return(nil, appErrors.NotFoundError("Product not found")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/"+productID.String(), nil,
			map[string]string{"id": productID.String()})
		rr := httptest.NewRecorder()

		// Act
		handler.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, appErrors.ErrCodeNotFound, decodeError(t, rr).Code)
	})

	t.Run("Failure - Invalid ID", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockProductService(t)
		handler := handlers.NewProductHandler(mockService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/abc", nil, map[string]string{"id": "abc"})
		rr := httptest.NewRecorder()

		// Act
		handler.GetProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "GetStorefrontProduct")
	})
}

func TestCreateProduct(t *testing.T) {

	adminID := uuid.New()

	t.Run("Success", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockProductService(t)
		handler := handlers.NewProductHandler(mockService)

		productID := uuid.New()
		mockService.On("CreateProduct", mock.Anything, mock.MatchedBy(func(req *models.CreateProductRequest) bool {
			return req.Name == "Capacete Shoei GT-Air" && req.Price.Equal(decimal.RequireFromString("3999.90")) && *req.StockQuantity == 3
		})).Return(&models.Product{ID: productID, Name: "Capacete Shoei GT-Air"}, nil).Once()

		body := strings.NewReader(`{"name":"Capacete Shoei GT-Air","price":"3999.90","stock_quantity":3,"sizes":["M","G"]}`)
		req := testutils.CreateTestRequestWithRole(http.MethodPost, "/api/v1/admin/products", body, adminID, models.RoleAdmin, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.CreateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, productID, decodeData[models.Product](t, rr).ID)
	})

	t.Run("Failure - Original Price Below Price", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockProductService(t)
		handler := handlers.NewProductHandler(mockService)

		body := strings.NewReader(`{"name":"Capacete","price":"500","original_price":"400","stock_quantity":1}`)
		req := testutils.CreateTestRequestWithRole(http.MethodPost, "/api/v1/admin/products", body, adminID, models.RoleAdmin, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.CreateProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		errResp := decodeError(t, rr)
		assert.Equal(t, appErrors.ErrCodeValidation, errResp.Code)
		require.Len(t, errResp.Fields, 1)
		assert.Equal(t, "original_price", errResp.Fields[0].Field)
		mockService.AssertNotCalled(t, "CreateProduct")
	})
}

func TestUpdateProduct(t *testing.T) {

	// Arrange
	mockService := mocks.NewMockProductService(t)
	handler := handlers.NewProductHandler(mockService)
	productID := uuid.New()

	mockService.On("UpdateProduct", mock.Anything, productID, mock.MatchedBy(func(req *models.UpdateProductRequest) bool {
		return req.Name == nil && req.StockQuantity != nil && *req.StockQuantity == 0
	})).Return(&models.Product{ID: productID, StockQuantity: 0}, nil).Once()

	req := testutils.CreateTestRequestWithRole(http.MethodPatch, "/api/v1/admin/products/"+productID.String(),
		strings.NewReader(`{"stock_quantity":0}`), uuid.New(), models.RoleAdmin, map[string]string{"id": productID.String()})
	rr := httptest.NewRecorder()

	// Act
	handler.UpdateProduct().ServeHTTP(rr, req)

	// Assert
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, decodeData[models.Product](t, rr).StockQuantity)
}

func TestDeleteProduct(t *testing.T) {

	productID := uuid.New()
	adminID := uuid.New()
	token := uuid.NewString()

	t.Run("Success - Request Returns Token", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockProductService(t)
		handler := handlers.NewProductHandler(mockService)

		mockService.On("RequestDelete", mock.Anything, productID).Return(&models.DeleteConfirmation{
			ResourceID: productID,
			Resource:   "product",
			Token:      token,
			ExpiresAt:  time.Now().Add(5 * time.Minute),
		}, nil).Once()

		req := testutils.CreateTestRequestWithRole(http.MethodDelete, "/api/v1/admin/products/"+productID.String(), nil,
			adminID, models.RoleAdmin, map[string]string{"id": productID.String()})
		rr := httptest.NewRecorder()

		// Act
		handler.RequestDeleteProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusAccepted, rr.Code)
		assert.Equal(t, token, decodeData[models.DeleteConfirmation](t, rr).Token)
	})

	t.Run("Success - Confirmed", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockProductService(t)
		handler := handlers.NewProductHandler(mockService)

		mockService.On("ConfirmDelete", mock.Anything, productID, token).Return(nil).Once()

		req := testutils.CreateTestRequestWithRole(http.MethodPost, "/api/v1/admin/products/"+productID.String()+"/confirm-delete",
			jsonBody(t, models.ConfirmDeleteRequest{Token: token}), adminID, models.RoleAdmin, map[string]string{"id": productID.String()})
		rr := httptest.NewRecorder()

		// Act
		handler.ConfirmDeleteProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, map[string]bool{"deleted": true}, decodeData[map[string]bool](t, rr))
	})

	t.Run("Failure - Expired Token", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockProductService(t)
		handler := handlers.NewProductHandler(mockService)

		mockService.On("ConfirmDelete", mock.Anything, productID, token).
			Return(appErrors.BadRequestError("Delete confirmation expired or invalid")).Once()

		req := testutils.CreateTestRequestWithRole(http.MethodPost, "/api/v1/admin/products/"+productID.String()+"/confirm-delete",
			jsonBody(t, models.ConfirmDeleteRequest{Token: token}), adminID, models.RoleAdmin, map[string]string{"id": productID.String()})
		rr := httptest.NewRecorder()

		// Act
		handler.ConfirmDeleteProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Failure - Token Not A UUID", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockProductService(t)
		handler := handlers.NewProductHandler(mockService)

		req := testutils.CreateTestRequestWithRole(http.MethodPost, "/api/v1/admin/products/"+productID.String()+"/confirm-delete",
			strings.NewReader(`{"token":"yes"}`), adminID, models.RoleAdmin, map[string]string{"id": productID.String()})
		rr := httptest.NewRecorder()

		// Act
		handler.ConfirmDeleteProduct().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "token", decodeError(t, rr).Fields[0].Field)
		mockService.AssertNotCalled(t, "ConfirmDelete")
	})
}
