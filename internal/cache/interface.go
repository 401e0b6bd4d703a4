package cache

import (
	"context"
	"strings"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// SetIfAbsent writes only when the key does not exist and reports whether it did.
	SetIfAbsent(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	// Take reads and removes the key in one step.
	Take(ctx context.Context, key string, value any) (bool, error)
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

func Key(prefix string, parts ...string) string {
	return prefix + ":" + strings.Join(parts, ":")
}

const (
	ProductKeyPrefix       = "product"
	CartKeyPrefix          = "cart"
	ShippingQuoteKeyPrefix = "shipping:quote"
	AddressKeyPrefix       = "address"
	CheckoutKeyPrefix      = "checkout:session"
	SubmitLockKeyPrefix    = "checkout:lock"
	DeleteTokenKeyPrefix   = "admin:delete"
)
