package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/cache"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils"
	"github.com/aaravmahajanofficial/helmet-storefront/pkg/viacep"
)

const addressServiceName = "Address lookup"

type PostalCodeLookup interface {
	Lookup(ctx context.Context, postalCode string) (*viacep.Address, error)
}

type AddressService interface {
	Lookup(ctx context.Context, postalCode string) (*models.AddressLookup, error)
}

type addressService struct {
	client  PostalCodeLookup
	cache   cache.Cache
	ttl     time.Duration
	timeout time.Duration
}

func NewAddressService(client PostalCodeLookup, c cache.Cache, ttl, timeout time.Duration) AddressService {
	return &addressService{client: client, cache: c, ttl: ttl, timeout: timeout}
}

// Lookup resolves a postal code for autofill. Unknown codes come back with Found=false and no error.
func (s *addressService) Lookup(ctx context.Context, postalCode string) (*models.AddressLookup, error) {

	logger := middleware.LoggerFromContext(ctx)

	cep, err := utils.NormalizePostalCode(postalCode)
	if err != nil {
		return nil, err
	}

	key := cache.Key(cache.AddressKeyPrefix, cep)

	cached := &models.AddressLookup{}

	found, err := s.cache.Get(ctx, key, cached)
	if err != nil {
		logger.Warn("Address cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	if found {
		return cached, nil
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	addr, err := s.client.Lookup(callCtx, cep)
	metrics.RecordGatewayCall("viacep", "lookup", err)

	if err != nil {
		logger.Warn("Address lookup failed", slog.String("postalCode", cep), slog.Any("error", err))
		return nil, errors.UpstreamError(addressServiceName, err)
	}

	result := &models.AddressLookup{PostalCode: cep}

	if !bool(addr.NotFound) {
		result.Street = strings.TrimSpace(addr.Street)
		result.Complement = strings.TrimSpace(addr.Complement)
		result.Neighborhood = strings.TrimSpace(addr.Neighborhood)
		result.City = strings.TrimSpace(addr.City)
		result.State = strings.ToUpper(strings.TrimSpace(addr.State))
		result.Found = true
	}

	if err := s.cache.Set(ctx, key, result, s.ttl); err != nil {
		logger.Warn("Address cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return result, nil
}
