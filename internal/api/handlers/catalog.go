package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	service "github.com/aaravmahajanofficial/helmet-storefront/internal/services"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CatalogHandler serves categories and brands. Reads are public, writes are admin-only.
type CatalogHandler struct {
	catalogService service.CatalogService
	validator      *validator.Validate
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, validator: utils.NewValidator()}
}

// ListCategories godoc
//
//	@Summary	List categories
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{array}		models.Category
//	@Failure	500	{object}	response.ErrorResponse	"Internal server error"
//	@Router		/categories [get]
func (h *CatalogHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categories, err := h.catalogService.ListCategories(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list categories", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

// ListBrands godoc
//
//	@Summary	List brands
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{array}		models.Brand
//	@Failure	500	{object}	response.ErrorResponse	"Internal server error"
//	@Router		/brands [get]
func (h *CatalogHandler) ListBrands() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		brands, err := h.catalogService.ListBrands(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list brands", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, brands)
	}
}

// CreateCategory godoc
//
//	@Summary	Create a category (Admin)
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		category	body		models.CreateCategoryRequest	true	"Category"
//	@Success	201			{object}	models.Category
//	@Failure	400			{object}	response.ErrorResponse	"Validation error"
//	@Failure	409			{object}	response.ErrorResponse	"Duplicate slug"
//	@Security	BearerAuth
//	@Router		/admin/categories [post]
func (h *CatalogHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateCategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		category, err := h.catalogService.CreateCategory(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create category", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Category created", slog.String("categoryId", category.ID.String()))
		response.Success(w, http.StatusCreated, category)
	}
}

// UpdateCategory godoc
//
//	@Summary	Update a category (Admin)
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		id			path		string							true	"Category ID"	Format(uuid)
//	@Param		category	body		models.CreateCategoryRequest	true	"Category"
//	@Success	200			{object}	models.Category
//	@Failure	404			{object}	response.ErrorResponse	"Category not found"
//	@Security	BearerAuth
//	@Router		/admin/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.CreateCategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		category, err := h.catalogService.UpdateCategory(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update category", slog.String("categoryId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, category)
	}
}

// RequestDeleteCategory godoc
//
//	@Summary	Ask to delete a category (Admin)
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path		string	true	"Category ID"	Format(uuid)
//	@Success	202	{object}	models.DeleteConfirmation
//	@Failure	404	{object}	response.ErrorResponse	"Category not found"
//	@Security	BearerAuth
//	@Router		/admin/categories/{id} [delete]
func (h *CatalogHandler) RequestDeleteCategory() http.HandlerFunc {
	return h.requestDelete("category", h.catalogService.RequestCategoryDelete)
}

// ConfirmDeleteCategory godoc
//
//	@Summary	Confirm a category delete (Admin)
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Category ID"	Format(uuid)
//	@Param		token	body		models.ConfirmDeleteRequest	true	"Token from the delete request"
//	@Success	200		{object}	map[string]bool
//	@Failure	400		{object}	response.ErrorResponse	"Missing or expired token"
//	@Security	BearerAuth
//	@Router		/admin/categories/{id}/confirm-delete [post]
func (h *CatalogHandler) ConfirmDeleteCategory() http.HandlerFunc {
	return h.confirmDelete("category", h.catalogService.ConfirmCategoryDelete)
}

// CreateBrand godoc
//
//	@Summary	Create a brand (Admin)
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		brand	body		models.CreateBrandRequest	true	"Brand"
//	@Success	201		{object}	models.Brand
//	@Failure	400		{object}	response.ErrorResponse	"Validation error"
//	@Security	BearerAuth
//	@Router		/admin/brands [post]
func (h *CatalogHandler) CreateBrand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateBrandRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		brand, err := h.catalogService.CreateBrand(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create brand", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Brand created", slog.String("brandId", brand.ID.String()))
		response.Success(w, http.StatusCreated, brand)
	}
}

// UpdateBrand godoc
//
//	@Summary	Update a brand (Admin)
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Brand ID"	Format(uuid)
//	@Param		brand	body		models.CreateBrandRequest	true	"Brand"
//	@Success	200		{object}	models.Brand
//	@Failure	404		{object}	response.ErrorResponse	"Brand not found"
//	@Security	BearerAuth
//	@Router		/admin/brands/{id} [put]
func (h *CatalogHandler) UpdateBrand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.CreateBrandRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		brand, err := h.catalogService.UpdateBrand(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update brand", slog.String("brandId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, brand)
	}
}

// RequestDeleteBrand godoc
//
//	@Summary	Ask to delete a brand (Admin)
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path		string	true	"Brand ID"	Format(uuid)
//	@Success	202	{object}	models.DeleteConfirmation
//	@Failure	404	{object}	response.ErrorResponse	"Brand not found"
//	@Security	BearerAuth
//	@Router		/admin/brands/{id} [delete]
func (h *CatalogHandler) RequestDeleteBrand() http.HandlerFunc {
	return h.requestDelete("brand", h.catalogService.RequestBrandDelete)
}

// ConfirmDeleteBrand godoc
//
//	@Summary	Confirm a brand delete (Admin)
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Brand ID"	Format(uuid)
//	@Param		token	body		models.ConfirmDeleteRequest	true	"Token from the delete request"
//	@Success	200		{object}	map[string]bool
//	@Failure	400		{object}	response.ErrorResponse	"Missing or expired token"
//	@Security	BearerAuth
//	@Router		/admin/brands/{id}/confirm-delete [post]
func (h *CatalogHandler) ConfirmDeleteBrand() http.HandlerFunc {
	return h.confirmDelete("brand", h.catalogService.ConfirmBrandDelete)
}

func (h *CatalogHandler) requestDelete(resource string, request func(ctx context.Context, id uuid.UUID) (*models.DeleteConfirmation, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		confirmation, err := request(r.Context(), id)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Delete request failed",
				slog.String("resource", resource),
				slog.String("id", id.String()),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusAccepted, confirmation)
	}
}

func (h *CatalogHandler) confirmDelete(resource string, confirm func(ctx context.Context, id uuid.UUID, token string) error) http.HandlerFunc {
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

		if err := confirm(r.Context(), id, req.Token); err != nil {
			logger.Warn("Delete not confirmed", slog.String("resource", resource), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Deleted", slog.String("resource", resource), slog.String("id", id.String()))
		response.Success(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}
