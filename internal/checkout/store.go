package checkout

import (
	"context"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/cache"
	"github.com/google/uuid"
)

// Store keeps sessions in the shared cache so any replica can serve the next step.
type Store interface {
	Load(ctx context.Context, customerID uuid.UUID) (*Session, bool, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, customerID uuid.UUID) error
	// AcquireSubmit takes the per-customer submit lock. False means a submission is already in flight.
	AcquireSubmit(ctx context.Context, customerID uuid.UUID) (bool, error)
	ReleaseSubmit(ctx context.Context, customerID uuid.UUID) error
}

type cacheStore struct {
	cache   cache.Cache
	ttl     time.Duration
	lockTTL time.Duration
}

func NewStore(c cache.Cache, sessionTTL, lockTTL time.Duration) Store {
	return &cacheStore{cache: c, ttl: sessionTTL, lockTTL: lockTTL}
}

func sessionKey(customerID uuid.UUID) string {
	return cache.Key(cache.CheckoutKeyPrefix, customerID.String())
}

func lockKey(customerID uuid.UUID) string {
	return cache.Key(cache.SubmitLockKeyPrefix, customerID.String())
}

func (s *cacheStore) Load(ctx context.Context, customerID uuid.UUID) (*Session, bool, error) {

	session := &Session{}

	found, err := s.cache.Get(ctx, sessionKey(customerID), session)
	if err != nil || !found {
		return nil, false, err
	}

	return session, true, nil
}

func (s *cacheStore) Save(ctx context.Context, session *Session) error {

	session.UpdatedAt = time.Now().UTC()

	return s.cache.Set(ctx, sessionKey(session.CustomerID), session, s.ttl)
}

func (s *cacheStore) Delete(ctx context.Context, customerID uuid.UUID) error {
	return s.cache.Delete(ctx, sessionKey(customerID))
}

func (s *cacheStore) AcquireSubmit(ctx context.Context, customerID uuid.UUID) (bool, error) {
	return s.cache.SetIfAbsent(ctx, lockKey(customerID), true, s.lockTTL)
}

func (s *cacheStore) ReleaseSubmit(ctx context.Context, customerID uuid.UUID) error {
	return s.cache.Delete(ctx, lockKey(customerID))
}
