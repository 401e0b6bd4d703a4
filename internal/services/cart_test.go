package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	appErrors "github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/helmet-storefront/internal/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func helmet(stock int) *models.Product {
	return &models.Product{
		ID:            uuid.New(),
		Name:          "Capacete Integral",
		Price:         decimal.RequireFromString("349.90"),
		StockQuantity: stock,
		Sizes:         []string{"56", "58", "60"},
		WeightGrams:   1400,
		Active:        true,
	}
}

func emptyCart(customerID uuid.UUID) *models.Cart {
	return &models.Cart{ID: uuid.New(), UserID: customerID, Items: []models.CartItem{}}
}

func TestCartService_GetCart(t *testing.T) {

	ctx := context.Background()

	t.Run("Success - Creates Cart On First Use", func(t *testing.T) {

		// Arrange
		cartRepo := mocks.NewMockCartRepository(t)
		cartService := service.NewCartService(cartRepo, mocks.NewMockProductRepository(t), newMemCache())
		customerID := uuid.New()

		cartRepo.On("GetCartByCustomerID", ctx, customerID).Return(nil, sql.ErrNoRows).Once()
		cartRepo.On("CreateCart", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		// Act
		cart, err := cartService.GetCart(ctx, customerID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, customerID, cart.UserID)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("Success - Second Read Served From Cache", func(t *testing.T) {

		// Arrange
		cartRepo := mocks.NewMockCartRepository(t)
		cartService := service.NewCartService(cartRepo, mocks.NewMockProductRepository(t), newMemCache())
		customerID := uuid.New()

		cartRepo.On("GetCartByCustomerID", ctx, customerID).Return(emptyCart(customerID), nil).Once()

		// Act
		_, err1 := cartService.GetCart(ctx, customerID)
		_, err2 := cartService.GetCart(ctx, customerID)

		// Assert
		require.NoError(t, err1)
		require.NoError(t, err2)
		cartRepo.AssertNumberOfCalls(t, "GetCartByCustomerID", 1)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {

		// Arrange
		cartRepo := mocks.NewMockCartRepository(t)
		cartService := service.NewCartService(cartRepo, mocks.NewMockProductRepository(t), newMemCache())
		customerID := uuid.New()

		cartRepo.On("GetCartByCustomerID", ctx, customerID).Return(nil, errors.New("connection reset")).Once()

		// Act
		cart, err := cartService.GetCart(ctx, customerID)

		// Assert
		assert.Nil(t, cart)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
	})
}

func TestCartService_AddItem(t *testing.T) {

	ctx := context.Background()

	t.Run("Success - Same Product And Size Increments Quantity", func(t *testing.T) {

		// Arrange
		cartRepo := mocks.NewMockCartRepository(t)
		productRepo := mocks.NewMockProductRepository(t)
		cartService := service.NewCartService(cartRepo, productRepo, newMemCache())

		customerID := uuid.New()
		product := helmet(10)

		productRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Twice()
		cartRepo.On("GetCartByCustomerID", ctx, customerID).Return(emptyCart(customerID), nil).Once()
		cartRepo.On("UpdateCart", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Twice()

		req := &models.AddItemRequest{ProductID: product.ID, Quantity: 1, SelectedSize: "58"}

		// Act
		_, err := cartService.AddItem(ctx, customerID, req)
		require.NoError(t, err)

		cart, err := cartService.AddItem(ctx, customerID, req)

		// Assert
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 2, cart.Items[0].Quantity)
		assert.True(t, decimal.RequireFromString("699.80").Equal(cart.Total))
	})

	t.Run("Success - Different Size Is A New Line", func(t *testing.T) {

		// Arrange
		cartRepo := mocks.NewMockCartRepository(t)
		productRepo := mocks.NewMockProductRepository(t)
		cartService := service.NewCartService(cartRepo, productRepo, newMemCache())

		customerID := uuid.New()
		product := helmet(10)

		productRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Twice()
		cartRepo.On("GetCartByCustomerID", ctx, customerID).Return(emptyCart(customerID), nil).Once()
		cartRepo.On("UpdateCart", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Twice()

		// Act
		_, err := cartService.AddItem(ctx, customerID, &models.AddItemRequest{ProductID: product.ID, Quantity: 1, SelectedSize: "56"})
		require.NoError(t, err)

		cart, err := cartService.AddItem(ctx, customerID, &models.AddItemRequest{ProductID: product.ID, Quantity: 1, SelectedSize: "60"})

		// Assert
		require.NoError(t, err)
		assert.Len(t, cart.Items, 2)
	})

	t.Run("Success - Price Comes From The Product Record", func(t *testing.T) {

		// Arrange
		cartRepo := mocks.NewMockCartRepository(t)
		productRepo := mocks.NewMockProductRepository(t)
		cartService := service.NewCartService(cartRepo, productRepo, newMemCache())

		customerID := uuid.New()
		product := helmet(3)

		productRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		cartRepo.On("GetCartByCustomerID", ctx, customerID).Return(emptyCart(customerID), nil).Once()
		cartRepo.On("UpdateCart", ctx, mock.MatchedBy(func(c *models.Cart) bool {
			return len(c.Items) == 1 && c.Items[0].UnitPrice.Equal(product.Price) && c.Items[0].WeightGrams == 1400
		})).Return(nil).Once()

		// Act
		_, err := cartService.AddItem(ctx, customerID, &models.AddItemRequest{ProductID: product.ID, Quantity: 1, SelectedSize: "58"})

		// Assert
		require.NoError(t, err)
	})

	t.Run("Failure - Quantity Above Stock", func(t *testing.T) {

		// Arrange
		cartRepo := mocks.NewMockCartRepository(t)
		productRepo := mocks.NewMockProductRepository(t)
		cartService := service.NewCartService(cartRepo, productRepo, newMemCache())

		customerID := uuid.New()
		product := helmet(2)

		productRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		cartRepo.On("GetCartByCustomerID", ctx, customerID).Return(emptyCart(customerID), nil).Once()

		// Act
		cart, err := cartService.AddItem(ctx, customerID, &models.AddItemRequest{ProductID: product.ID, Quantity: 3, SelectedSize: "58"})

		// Assert
		assert.Nil(t, cart)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
		assert.Contains(t, appErr.Message, "Capacete Integral")
	})

	t.Run("Failure - Unknown Size", func(t *testing.T) {

		// Arrange
		productRepo := mocks.NewMockProductRepository(t)
		cartService := service.NewCartService(mocks.NewMockCartRepository(t), productRepo, newMemCache())
		product := helmet(5)

		productRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()

		// Act
		_, err := cartService.AddItem(ctx, uuid.New(), &models.AddItemRequest{ProductID: product.ID, Quantity: 1, SelectedSize: "XL"})

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		require.Len(t, appErr.Fields, 1)
		assert.Equal(t, "selected_size", appErr.Fields[0].Field)
	})

	t.Run("Failure - Inactive Product", func(t *testing.T) {

		// Arrange
		productRepo := mocks.NewMockProductRepository(t)
		cartService := service.NewCartService(mocks.NewMockCartRepository(t), productRepo, newMemCache())
		product := helmet(5)
		product.Active = false

		productRepo.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()

		// Act
		_, err := cartService.AddItem(ctx, uuid.New(), &models.AddItemRequest{ProductID: product.ID, Quantity: 1, SelectedSize: "58"})

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestCartService_UpdateQuantity(t *testing.T) {

	ctx := context.Background()

	t.Run("Success - Zero Removes The Line", func(t *testing.T) {

		// Arrange
		cartRepo := mocks.NewMockCartRepository(t)
		cartService := service.NewCartService(cartRepo, mocks.NewMockProductRepository(t), newMemCache())

		customerID := uuid.New()
		productID := uuid.New()
		cart := emptyCart(customerID)
		cart.Add(models.CartItem{ProductID: productID, ProductName: "Luva", Quantity: 2, UnitPrice: decimal.NewFromInt(80)})

		cartRepo.On("GetCartByCustomerID", ctx, customerID).Return(cart, nil).Once()
		cartRepo.On("UpdateCart", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

		// Act
		updated, err := cartService.UpdateQuantity(ctx, customerID, &models.UpdateQuantityRequest{ProductID: productID, Quantity: 0})

		// Assert
		require.NoError(t, err)
		assert.True(t, updated.IsEmpty())
		assert.True(t, updated.Total.IsZero())
	})

	t.Run("Failure - Line Not In Cart", func(t *testing.T) {

		// Arrange
		cartRepo := mocks.NewMockCartRepository(t)
		cartService := service.NewCartService(cartRepo, mocks.NewMockProductRepository(t), newMemCache())
		customerID := uuid.New()

		cartRepo.On("GetCartByCustomerID", ctx, customerID).Return(emptyCart(customerID), nil).Once()

		// Act
		_, err := cartService.UpdateQuantity(ctx, customerID, &models.UpdateQuantityRequest{ProductID: uuid.New(), Quantity: 1})

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
	})
}

func TestCartService_ClearAndTotal(t *testing.T) {

	ctx := context.Background()

	// Arrange
	cartRepo := mocks.NewMockCartRepository(t)
	cartService := service.NewCartService(cartRepo, mocks.NewMockProductRepository(t), newMemCache())

	customerID := uuid.New()
	cart := emptyCart(customerID)
	cart.Add(models.CartItem{ProductID: uuid.New(), Quantity: 3, UnitPrice: decimal.RequireFromString("0.10")})
	cart.Add(models.CartItem{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.RequireFromString("0.20")})

	cartRepo.On("GetCartByCustomerID", ctx, customerID).Return(cart, nil).Once()
	cartRepo.On("UpdateCart", ctx, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

	// Act
	total, err := cartService.Total(ctx, customerID)
	require.NoError(t, err)

	clearErr := cartService.ClearCart(ctx, customerID)
	after, _ := cartService.Total(ctx, customerID)

	// Assert
	assert.Equal(t, "0.5", total.String())
	assert.NoError(t, clearErr)
	assert.True(t, after.IsZero())
}
