package testutils_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_CancelledContext(t *testing.T) {
	// Arrange
	c := testutils.NewMemoryCache()
	require.NoError(t, c.Set(t.Context(), "session:1", "address", time.Minute))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	var value string

	// Act
	_, getErr := c.Get(ctx, "session:1", &value)
	setErr := c.Set(ctx, "session:2", "shipping", time.Minute)
	_, lockErr := c.SetIfAbsent(ctx, "lock:1", true, time.Minute)
	_, takeErr := c.Take(ctx, "session:1", &value)
	deleteErr := c.Delete(ctx, "session:1")

	// Assert
	assert.ErrorIs(t, getErr, context.Canceled)
	assert.ErrorIs(t, setErr, context.Canceled)
	assert.ErrorIs(t, lockErr, context.Canceled)
	assert.ErrorIs(t, takeErr, context.Canceled)
	assert.ErrorIs(t, deleteErr, context.Canceled)
	assert.True(t, c.Has("session:1"))
	assert.False(t, c.Has("session:2"))
	assert.False(t, c.Has("lock:1"))
}

func TestMemoryCache_SetIfAbsent(t *testing.T) {
	// Arrange
	c := testutils.NewMemoryCache()

	var (
		wg       sync.WaitGroup
		acquired atomic.Int32
	)

	// Act
	for range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			ok, err := c.SetIfAbsent(context.Background(), "lock:1", true, time.Minute)
			assert.NoError(t, err)

			if ok {
				acquired.Add(1)
			}
		}()
	}

	wg.Wait()

	// Assert
	assert.Equal(t, int32(1), acquired.Load())
}
