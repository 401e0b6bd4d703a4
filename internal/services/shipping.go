package service

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/cache"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/config"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils"
	"github.com/aaravmahajanofficial/helmet-storefront/pkg/melhorenvio"
)

const shippingServiceName = "Shipping calculator"

// RateQuoter is the rate-quote API.
type RateQuoter interface {
	Calculate(ctx context.Context, req melhorenvio.QuoteRequest) ([]melhorenvio.Service, error)
}

type ShippingService interface {
	Quote(ctx context.Context, postalCode string, weightGrams int) ([]models.ShippingOption, error)
	QuoteCart(ctx context.Context, postalCode string, cart *models.Cart) ([]models.ShippingOption, error)
	PackageWeight(cart *models.Cart) int
}

type shippingService struct {
	quoter RateQuoter
	cache  cache.Cache
	cfg    config.Shipping
	ttl    time.Duration
}

func NewShippingService(quoter RateQuoter, c cache.Cache, cfg config.Shipping, quoteTTL time.Duration) ShippingService {
	return &shippingService{quoter: quoter, cache: c, cfg: cfg, ttl: quoteTTL}
}

// Quote returns usable services ranked by price, then delivery days.
func (s *shippingService) Quote(ctx context.Context, postalCode string, weightGrams int) ([]models.ShippingOption, error) {

	logger := middleware.LoggerFromContext(ctx)

	cep, err := utils.NormalizePostalCode(postalCode)
	if err != nil {
		return nil, err
	}

	if weightGrams <= 0 {
		weightGrams = s.defaultWeightGrams()
	}

	key := cache.Key(cache.ShippingQuoteKeyPrefix, cep, strconv.Itoa(weightGrams))

	var cached []models.ShippingOption

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Shipping quote cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	if found && len(cached) > 0 {
		return cached, nil
	}

	callCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	services, err := s.quoter.Calculate(callCtx, melhorenvio.QuoteRequest{
		From: melhorenvio.PostalCode{PostalCode: models.OnlyDigits(s.cfg.OriginPostalCode)},
		To:   melhorenvio.PostalCode{PostalCode: cep},
		Package: melhorenvio.Package{
			Height: s.cfg.PackageHeightCm,
			Width:  s.cfg.PackageWidthCm,
			Length: s.cfg.PackageLengthCm,
			Weight: float64(weightGrams) / 1000,
		},
	})
	metrics.RecordGatewayCall("melhorenvio", "calculate", err)

	if err != nil {
		logger.Error("Shipping quote failed", slog.String("postalCode", cep), slog.Any("error", err))
		return nil, errors.UpstreamError(shippingServiceName, err)
	}

	options := rankServices(services)
	if len(options) == 0 {
		logger.Warn("No shipping service for destination", slog.String("postalCode", cep), slog.Int("weightGrams", weightGrams))
		return nil, errors.NoShippingServiceError("No shipping service is available for this postal code")
	}

	if err := s.cache.Set(ctx, key, options, s.ttl); err != nil {
		logger.Warn("Shipping quote cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return options, nil
}

func (s *shippingService) QuoteCart(ctx context.Context, postalCode string, cart *models.Cart) ([]models.ShippingOption, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, errors.BadRequestError("Cart is empty")
	}

	return s.Quote(ctx, postalCode, s.PackageWeight(cart))
}

// PackageWeight sums weight times quantity, using the configured default for products without one.
func (s *shippingService) PackageWeight(cart *models.Cart) int {
	return cart.WeightGrams(s.defaultWeightGrams())
}

func (s *shippingService) defaultWeightGrams() int {
	if s.cfg.DefaultWeightKg <= 0 {
		return 1000
	}

	return int(s.cfg.DefaultWeightKg * 1000)
}

// rankServices drops carriers that answered with an error and orders the rest.
func rankServices(services []melhorenvio.Service) []models.ShippingOption {
	options := make([]models.ShippingOption, 0, len(services))

	for _, svc := range services {
		if svc.Error != "" {
			continue
		}

		price := svc.FinalPrice()
		if price.IsNegative() || (svc.Price == nil && svc.CustomPrice == nil) {
			continue
		}

		options = append(options, models.ShippingOption{
			ServiceID:    strconv.Itoa(svc.ID),
			Name:         svc.Name,
			Carrier:      svc.Company.Name,
			Price:        price,
			DeliveryDays: svc.FinalDeliveryDays(),
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		if !options[i].Price.Equal(options[j].Price) {
			return options[i].Price.LessThan(options[j].Price)
		}

		return options[i].DeliveryDays < options[j].DeliveryDays
	})

	return options
}
