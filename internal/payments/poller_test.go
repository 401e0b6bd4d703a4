package payments_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/payments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() payments.PollerConfig {
	return payments.PollerConfig{
		Interval:    10 * time.Millisecond,
		Tick:        5 * time.Millisecond,
		Window:      5 * time.Second,
		MaxAttempts: 100,
	}
}

type updateRecorder struct {
	mu      sync.Mutex
	updates []payments.Update
}

func (r *updateRecorder) record(u payments.Update) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.updates = append(r.updates, u)
}

func (r *updateRecorder) final(t *testing.T) payments.Update {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	var finals []payments.Update
	for _, u := range r.updates {
		if u.Final {
			finals = append(finals, u)
		}
	}

	require.Len(t, finals, 1, "exactly one final update")

	return finals[0]
}

func waitDone(t *testing.T, p *payments.PixPoller) {
	t.Helper()

	select {
	case <-p.Done():
	case <-time.After(3 * time.Second):
		t.Fatal("poller did not stop")
	}
}

func TestPixPoller_StopsAfterApproved(t *testing.T) {
	// Arrange
	registry := payments.NewRegistry(fastConfig())
	t.Cleanup(func() { _ = registry.Close() })

	var calls atomic.Int32
	check := func(context.Context) (models.PaymentStatus, error) {
		if calls.Add(1) >= 2 {
			return models.PaymentStatusApproved, nil
		}

		return models.PaymentStatusPending, nil
	}

	rec := &updateRecorder{}

	// Act
	poller, err := registry.Start("pay-1", check, rec.record)
	require.NoError(t, err)
	waitDone(t, poller)

	time.Sleep(50 * time.Millisecond)
	poller.CheckNow()
	time.Sleep(20 * time.Millisecond)

	// Assert
	assert.Equal(t, int32(2), calls.Load(), "no checks after approval")
	final := rec.final(t)
	assert.Equal(t, models.PaymentStatusApproved, final.Status)
	assert.Equal(t, payments.StopTerminal, final.Reason)
	assert.Eventually(t, func() bool { return registry.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestPixPoller_CheckNow(t *testing.T) {
	// Arrange
	cfg := fastConfig()
	cfg.Interval = time.Hour

	registry := payments.NewRegistry(cfg)
	t.Cleanup(func() { _ = registry.Close() })

	checked := make(chan struct{}, 1)
	check := func(context.Context) (models.PaymentStatus, error) {
		checked <- struct{}{}
		return models.PaymentStatusApproved, nil
	}

	poller, err := registry.Start("pay-2", check, nil)
	require.NoError(t, err)

	// Act
	poller.CheckNow()

	// Assert
	select {
	case <-checked:
	case <-time.After(time.Second):
		t.Fatal("manual check was not performed")
	}

	waitDone(t, poller)
}

func TestPixPoller_Expires(t *testing.T) {
	// Arrange
	cfg := fastConfig()
	cfg.Interval = time.Hour
	cfg.Window = 30 * time.Millisecond

	registry := payments.NewRegistry(cfg)
	t.Cleanup(func() { _ = registry.Close() })

	rec := &updateRecorder{}
	check := func(context.Context) (models.PaymentStatus, error) {
		return models.PaymentStatusPending, nil
	}

	// Act
	poller, err := registry.Start("pay-3", check, rec.record)
	require.NoError(t, err)
	waitDone(t, poller)

	// Assert
	final := rec.final(t)
	assert.Equal(t, payments.StopExpired, final.Reason)
	assert.Equal(t, 0, final.SecondsRemaining)
}

func TestPixPoller_MaxAttempts(t *testing.T) {
	// Arrange
	cfg := fastConfig()
	cfg.MaxAttempts = 3

	registry := payments.NewRegistry(cfg)
	t.Cleanup(func() { _ = registry.Close() })

	var calls atomic.Int32
	check := func(context.Context) (models.PaymentStatus, error) {
		calls.Add(1)
		return "", errors.New("gateway unavailable")
	}

	rec := &updateRecorder{}

	// Act
	poller, err := registry.Start("pay-4", check, rec.record)
	require.NoError(t, err)
	waitDone(t, poller)

	// Assert
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, payments.StopMaxAttempts, rec.final(t).Reason)
}

func TestRegistry_CloseStopsPollers(t *testing.T) {
	// Arrange
	cfg := fastConfig()
	cfg.Interval = time.Hour

	registry := payments.NewRegistry(cfg)
	check := func(context.Context) (models.PaymentStatus, error) {
		return models.PaymentStatusPending, nil
	}

	rec := &updateRecorder{}

	first, err := registry.Start("pay-5", check, rec.record)
	require.NoError(t, err)

	again, err := registry.Start("pay-5", check, nil)
	require.NoError(t, err)
	assert.Same(t, first, again)

	// Act
	require.NoError(t, registry.Close())

	// Assert
	waitDone(t, first)
	assert.Equal(t, payments.StopCancelled, rec.final(t).Reason)

	_, err = registry.Start("pay-6", check, nil)
	assert.ErrorIs(t, err, payments.ErrRegistryClosed)
}
