package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/cache"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/helmet-storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const productResource = "product"

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error)
	GetStorefrontProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListStorefrontProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error)
	RequestDelete(ctx context.Context, id uuid.UUID) (*models.DeleteConfirmation, error)
	ConfirmDelete(ctx context.Context, id uuid.UUID, token string) error
}

type productService struct {
	repo  repository.ProductRepository
	cache cache.Cache
	gate  *deleteGate
}

func NewProductService(repo repository.ProductRepository, c cache.Cache, deleteTokenTTL time.Duration) ProductService {
	return &productService{repo: repo, cache: c, gate: newDeleteGate(c, deleteTokenTTL)}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	product := &models.Product{
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		SKU:           req.SKU,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Sizes:         req.Sizes,
		Images:        req.Images,
		WeightGrams:   req.WeightGrams,
		Active:        true,
	}

	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}

	if req.Active != nil {
		product.Active = *req.Active
	}

	if req.CategoryID != nil {
		product.CategoryID = uuid.NullUUID{UUID: *req.CategoryID, Valid: true}
	}

	if req.BrandID != nil {
		product.BrandID = uuid.NullUUID{UUID: *req.BrandID, Valid: true}
	}

	if err := checkPriceRules(product); err != nil {
		return nil, err
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	middleware.LoggerFromContext(ctx).Info("Product created", slog.String("productId", product.ID.String()))

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, productLookupError(err)
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, productLookupError(err)
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		product.OriginalPrice = *req.OriginalPrice
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.Sizes != nil {
		product.Sizes = *req.Sizes
	}
	if req.Images != nil {
		product.Images = *req.Images
	}
	if req.WeightGrams != nil {
		product.WeightGrams = *req.WeightGrams
	}
	if req.CategoryID != nil {
		product.CategoryID = uuid.NullUUID{UUID: *req.CategoryID, Valid: *req.CategoryID != uuid.Nil}
	}
	if req.BrandID != nil {
		product.BrandID = uuid.NullUUID{UUID: *req.BrandID, Valid: *req.BrandID != uuid.Nil}
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := checkPriceRules(product); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	s.invalidate(ctx, id)

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error) {

	products, total, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}

// GetStorefrontProduct serves active products only, read through the cache.
func (s *productService) GetStorefrontProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.ProductKeyPrefix, id.String())

	var cached models.Product

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Product cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	if found {
		if !cached.Active {
			return nil, errors.NotFoundError("Product not found")
		}

		return &cached, nil
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, productLookupError(err)
	}

	if err := s.cache.Set(ctx, key, product, 0); err != nil {
		logger.Warn("Product cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	if !product.Active {
		return nil, errors.NotFoundError("Product not found")
	}

	return product, nil
}

func (s *productService) ListStorefrontProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, int, error) {
	filter.ActiveOnly = true

	return s.ListProducts(ctx, filter)
}

func (s *productService) RequestDelete(ctx context.Context, id uuid.UUID) (*models.DeleteConfirmation, error) {

	if _, err := s.repo.GetProductByID(ctx, id); err != nil {
		return nil, productLookupError(err)
	}

	return s.gate.issue(ctx, productResource, id)
}

func (s *productService) ConfirmDelete(ctx context.Context, id uuid.UUID, token string) error {

	if err := s.gate.consume(ctx, productResource, id, token); err != nil {
		return err
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return errors.NotFoundError("Product not found").WithError(err)
		}

		return errors.DatabaseError("Failed to delete product").WithError(err)
	}

	s.invalidate(ctx, id)

	middleware.LoggerFromContext(ctx).Info("Product deleted", slog.String("productId", id.String()))

	return nil
}

func (s *productService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, cache.Key(cache.ProductKeyPrefix, id.String())); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Product cache invalidation failed", slog.String("productId", id.String()), slog.Any("error", err))
	}
}

// checkPriceRules holds the rules that span fields after a partial update is merged.
func checkPriceRules(p *models.Product) error {
	var fields []errors.FieldError

	if !p.Price.GreaterThan(decimal.Zero) {
		fields = append(fields, errors.FieldError{Field: "price", Message: "must be greater than 0"})
	}

	if p.StockQuantity < 0 {
		fields = append(fields, errors.FieldError{Field: "stock_quantity", Message: "must be greater than or equal to 0"})
	}

	if p.OriginalPrice.Valid && p.OriginalPrice.Decimal.LessThan(p.Price) {
		fields = append(fields, errors.FieldError{Field: "original_price", Message: "must be greater than or equal to price"})
	}

	if len(fields) > 0 {
		return errors.FieldValidationError(fields)
	}

	return nil
}

func productLookupError(err error) error {
	if stdErrors.Is(err, sql.ErrNoRows) {
		return errors.NotFoundError("Product not found").WithError(err)
	}

	return errors.DatabaseError("Failed to fetch product").WithError(err)
}
