package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	service "github.com/aaravmahajanofficial/helmet-storefront/internal/services"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ProductHandler struct {
	productService service.ProductService
	validator      *validator.Validate
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService, validator: utils.NewValidator()}
}

func productFilter(r *http.Request) (models.ProductFilter, error) {
	page, size := utils.ParsePagination(r)

	categoryID, err := queryUUID(r, "category")
	if err != nil {
		return models.ProductFilter{}, err
	}

	brandID, err := queryUUID(r, "brand")
	if err != nil {
		return models.ProductFilter{}, err
	}

	return models.ProductFilter{
		Search:     r.URL.Query().Get("search"),
		CategoryID: categoryID,
		BrandID:    brandID,
		Page:       page,
		PageSize:   size,
	}, nil
}

// ListProducts godoc
//
//	@Summary		List products on sale
//	@Description	Lists active products, optionally filtered by a search term, category or brand.
//	@Tags			Products
//	@Produce		json
//	@Param			search		query		string												false	"Name or brand search"
//	@Param			category	query		string												false	"Category ID"	Format(uuid)
//	@Param			brand		query		string												false	"Brand ID"		Format(uuid)
//	@Param			page		query		int													false	"Page number (default: 1)"
//	@Param			pageSize	query		int													false	"Items per page (default: 20, max: 100)"
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Product}	"Products"
//	@Failure		400			{object}	response.ErrorResponse								"Invalid filter"
//	@Failure		500			{object}	response.ErrorResponse								"Internal server error"
//	@Router			/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		filter, err := productFilter(r)
		if err != nil {
			logger.Warn("Invalid product filter", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		products, total, err := h.productService.ListStorefrontProducts(r.Context(), filter)
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Debug("Products listed", slog.Int("count", len(products)), slog.Int("total", total))
		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     products,
			Total:    total,
			Page:     filter.Page,
			PageSize: filter.PageSize,
		})
	}
}

// GetProduct godoc
//
//	@Summary		Get a product
//	@Tags			Products
//	@Produce		json
//	@Param			id	path		string					true	"Product ID"	Format(uuid)
//	@Success		200	{object}	models.Product			"Product"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid product ID format"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found or inactive"
//	@Router			/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		product, err := h.productService.GetStorefrontProduct(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get product", slog.String("productId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// AdminListProducts godoc
//
//	@Summary		List every product (Admin)
//	@Description	Same filters as the storefront listing; inactive products are included unless active=true.
//	@Tags			Admin
//	@Produce		json
//	@Param			search		query		string												false	"Name or brand search"
//	@Param			category	query		string												false	"Category ID"	Format(uuid)
//	@Param			brand		query		string												false	"Brand ID"		Format(uuid)
//	@Param			active		query		bool												false	"Only active products"
//	@Param			page		query		int													false	"Page number"
//	@Param			pageSize	query		int													false	"Items per page"
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Product}	"Products"
//	@Failure		401			{object}	response.ErrorResponse								"Authentication required"
//	@Failure		403			{object}	response.ErrorResponse								"Admin only"
//	@Security		BearerAuth
//	@Router			/admin/products [get]
func (h *ProductHandler) AdminListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		filter, err := productFilter(r)
		if err != nil {
			logger.Warn("Invalid product filter", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		filter.ActiveOnly = queryBool(r, "active")

		products, total, err := h.productService.ListProducts(r.Context(), filter)
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     products,
			Total:    total,
			Page:     filter.Page,
			PageSize: filter.PageSize,
		})
	}
}

// AdminGetProduct godoc
//
//	@Summary		Get any product (Admin)
//	@Tags			Admin
//	@Produce		json
//	@Param			id	path		string					true	"Product ID"	Format(uuid)
//	@Success		200	{object}	models.Product			"Product"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Security		BearerAuth
//	@Router			/admin/products/{id} [get]
func (h *ProductHandler) AdminGetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		product, err := h.productService.GetProductByID(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get product", slog.String("productId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// CreateProduct godoc
//
//	@Summary		Create a product (Admin)
//	@Description	Price must be positive, stock non-negative, and original price (when given) not below the price.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			product	body		models.CreateProductRequest	true	"Product"
//	@Success		201		{object}	models.Product				"Created product"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		409		{object}	response.ErrorResponse		"Duplicate slug"
//	@Security		BearerAuth
//	@Router			/admin/products [post]
func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create product input")
			return
		}

		product, err := h.productService.CreateProduct(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product created", slog.String("productId", product.ID.String()))
		response.Success(w, http.StatusCreated, product)
	}
}

// UpdateProduct godoc
//
//	@Summary		Update a product (Admin)
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Product ID"	Format(uuid)
//	@Param			product	body		models.UpdateProductRequest	true	"Fields to change"
//	@Success		200		{object}	models.Product				"Updated product"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		404		{object}	response.ErrorResponse		"Product not found"
//	@Security		BearerAuth
//	@Router			/admin/products/{id} [patch]
func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.String("productId", id.String()))

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update product input")
			return
		}

		product, err := h.productService.UpdateProduct(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product updated")
		response.Success(w, http.StatusOK, product)
	}
}

// RequestDeleteProduct godoc
//
//	@Summary		Ask to delete a product (Admin)
//	@Description	Returns a short-lived token. The product is only removed once the token is confirmed.
//	@Tags			Admin
//	@Produce		json
//	@Param			id	path		string						true	"Product ID"	Format(uuid)
//	@Success		202	{object}	models.DeleteConfirmation	"Confirmation token"
//	@Failure		404	{object}	response.ErrorResponse		"Product not found"
//	@Security		BearerAuth
//	@Router			/admin/products/{id} [delete]
func (h *ProductHandler) RequestDeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		confirmation, err := h.productService.RequestDelete(r.Context(), id)
		if err != nil {
			logger.Warn("Product delete request failed", slog.String("productId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusAccepted, confirmation)
	}
}

// ConfirmDeleteProduct godoc
//
//	@Summary		Confirm a product delete (Admin)
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Product ID"	Format(uuid)
//	@Param			token	body		models.ConfirmDeleteRequest	true	"Token from the delete request"
//	@Success		200		{object}	map[string]bool				"Deleted"
//	@Failure		400		{object}	response.ErrorResponse		"Missing or expired token"
//	@Security		BearerAuth
//	@Router			/admin/products/{id}/confirm-delete [post]
func (h *ProductHandler) ConfirmDeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.ConfirmDeleteRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.productService.ConfirmDelete(r.Context(), id, req.Token); err != nil {
			logger.Warn("Product delete not confirmed", slog.String("productId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product deleted", slog.String("productId", id.String()))
		response.Success(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}
