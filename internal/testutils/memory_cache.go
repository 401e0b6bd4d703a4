package testutils

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/cache"
)

// MemoryCache is a map-backed cache.Cache that round-trips values through JSON like the Redis one does.
// Like go-redis, every call fails once its context is done.
type MemoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: map[string][]byte{}}
}

var _ cache.Cache = (*MemoryCache)(nil)

func (m *MemoryCache) Get(ctx context.Context, key string, value any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}

	return true, json.Unmarshal(raw, value)
}

func (m *MemoryCache) Set(ctx context.Context, key string, value any, _ time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()

	return nil
}

func (m *MemoryCache) SetIfAbsent(ctx context.Context, key string, value any, _ time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[key]; ok {
		return false, nil
	}

	m.data[key] = raw

	return true, nil
}

func (m *MemoryCache) Take(ctx context.Context, key string, value any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m.mu.Lock()
	raw, ok := m.data[key]
	delete(m.data, key)
	m.mu.Unlock()

	if !ok || value == nil {
		return ok, nil
	}

	return true, json.Unmarshal(raw, value)
}

func (m *MemoryCache) Delete(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		delete(m.data, k)
	}

	return nil
}

func (m *MemoryCache) Close() error { return nil }

func (m *MemoryCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.data[key]

	return ok
}

// Has reports whether key is currently stored.
func (m *MemoryCache) Has(key string) bool {
	return m.has(key)
}
