package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/cache"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/google/uuid"
)

const defaultDeleteTokenTTL = 2 * time.Minute

// deleteGate issues and consumes the short-lived tokens admins must echo back to delete a record.
type deleteGate struct {
	cache cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

func newDeleteGate(c cache.Cache, ttl time.Duration) *deleteGate {
	if ttl <= 0 {
		ttl = defaultDeleteTokenTTL
	}

	return &deleteGate{cache: c, ttl: ttl, now: time.Now}
}

func (g *deleteGate) issue(ctx context.Context, resource string, id uuid.UUID) (*models.DeleteConfirmation, error) {
	token := uuid.NewString()

	if err := g.cache.Set(ctx, cache.Key(cache.DeleteTokenKeyPrefix, resource, id.String()), token, g.ttl); err != nil {
		return nil, errors.InternalError("Failed to issue delete confirmation").WithError(err)
	}

	middleware.LoggerFromContext(ctx).Info("Delete confirmation issued",
		slog.String("resource", resource),
		slog.String("id", id.String()),
	)

	return &models.DeleteConfirmation{
		ResourceID: id,
		Resource:   resource,
		Token:      token,
		ExpiresAt:  g.now().Add(g.ttl),
	}, nil
}

// consume succeeds once per issued token. A wrong token still burns the pending one.
func (g *deleteGate) consume(ctx context.Context, resource string, id uuid.UUID, token string) error {
	var stored string

	found, err := g.cache.Take(ctx, cache.Key(cache.DeleteTokenKeyPrefix, resource, id.String()), &stored)
	if err != nil {
		return errors.InternalError("Failed to verify delete confirmation").WithError(err)
	}

	if !found || stored != token {
		return errors.ForbiddenError("Delete confirmation is missing or expired, request a new one")
	}

	return nil
}
