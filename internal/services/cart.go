package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/cache"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/helmet-storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartService interface {
	GetCart(ctx context.Context, customerID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, customerID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, customerID uuid.UUID, req *models.UpdateQuantityRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, customerID uuid.UUID, req *models.RemoveItemRequest) (*models.Cart, error)
	ClearCart(ctx context.Context, customerID uuid.UUID) error
	Total(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
}

type cartService struct {
	repo        repository.CartRepository
	productRepo repository.ProductRepository
	cache       cache.Cache
}

func NewCartService(repo repository.CartRepository, productRepo repository.ProductRepository, c cache.Cache) CartService {
	return &cartService{repo: repo, productRepo: productRepo, cache: c}
}

// GetCart reads through the cache and creates an empty cart on first use.
func (s *cartService) GetCart(ctx context.Context, customerID uuid.UUID) (*models.Cart, error) {

	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.CartKeyPrefix, customerID.String())

	cart := &models.Cart{}

	found, err := s.cache.Get(ctx, key, cart)
	if err != nil {
		logger.Warn("Cart cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	if found {
		return cart, nil
	}

	cart, err = s.repo.GetCartByCustomerID(ctx, customerID)
	if err != nil {
		if !stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
		}

		cart = &models.Cart{
			UserID:    customerID,
			Items:     []models.CartItem{},
			Total:     decimal.Zero,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.repo.CreateCart(ctx, cart); err != nil {
			return nil, errors.DatabaseError("Failed to create cart").WithError(err)
		}

		logger.Info("Cart created", slog.String("cartId", cart.ID.String()))
	}

	cart.Recalculate()
	s.remember(ctx, cart)

	return cart, nil
}

// AddItem prices the line from the product record; a repeated (product, size) increments the quantity.
func (s *cartService) AddItem(ctx context.Context, customerID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error) {

	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if !product.Active {
		return nil, errors.NotFoundError("Product not found")
	}

	if !product.HasSize(req.SelectedSize) {
		return nil, errors.AddValidationError("selected_size", "is not available for this product")
	}

	cart, err := s.GetCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	inCart := 0
	for _, item := range cart.Items {
		if item.ProductID == product.ID {
			inCart += item.Quantity
		}
	}

	if inCart+req.Quantity > product.StockQuantity {
		return nil, errors.BadRequestError(fmt.Sprintf("Only %d units of %s are available", product.StockQuantity, product.Name))
	}

	cart.Add(models.CartItem{
		ProductID:    product.ID,
		ProductName:  product.Name,
		ImageURL:     product.MainImage(),
		SelectedSize: req.SelectedSize,
		Quantity:     req.Quantity,
		UnitPrice:    product.Price,
		WeightGrams:  product.WeightGrams,
	})

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, customerID uuid.UUID, req *models.UpdateQuantityRequest) (*models.Cart, error) {

	cart, err := s.GetCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if !cart.SetQuantity(req.ProductID, req.SelectedSize, req.Quantity) {
		return nil, errors.BadRequestError("Item not found in the cart")
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *cartService) RemoveItem(ctx context.Context, customerID uuid.UUID, req *models.RemoveItemRequest) (*models.Cart, error) {

	cart, err := s.GetCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if !cart.Remove(req.ProductID, req.SelectedSize) {
		return nil, errors.BadRequestError("Item not found in the cart")
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *cartService) ClearCart(ctx context.Context, customerID uuid.UUID) error {

	cart, err := s.GetCart(ctx, customerID)
	if err != nil {
		return err
	}

	if cart.IsEmpty() {
		return nil
	}

	cart.Clear()

	return s.save(ctx, cart)
}

func (s *cartService) Total(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {

	cart, err := s.GetCart(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}

	return cart.Subtotal(), nil
}

func (s *cartService) save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()

	if err := s.repo.UpdateCart(ctx, cart); err != nil {
		s.forget(ctx, cart.UserID)

		return errors.DatabaseError("Failed to update cart").WithError(err)
	}

	s.remember(ctx, cart)

	return nil
}

func (s *cartService) remember(ctx context.Context, cart *models.Cart) {
	key := cache.Key(cache.CartKeyPrefix, cart.UserID.String())

	if err := s.cache.Set(ctx, key, cart, 0); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Cart cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (s *cartService) forget(ctx context.Context, customerID uuid.UUID) {
	if err := s.cache.Delete(ctx, cache.Key(cache.CartKeyPrefix, customerID.String())); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Cart cache invalidation failed", slog.Any("error", err))
	}
}
