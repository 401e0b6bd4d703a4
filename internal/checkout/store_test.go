package checkout_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/cache"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/checkout"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/config"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisStore(t *testing.T) (checkout.Store, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	c := cache.NewRedisCache(client, &config.CacheConfig{DefaultTTL: time.Minute})

	return checkout.NewStore(c, 2*time.Hour, time.Minute), mock
}

func TestStore_Load(t *testing.T) {

	customerID := uuid.New()
	key := cache.Key(cache.CheckoutKeyPrefix, customerID.String())

	t.Run("Success - Session Found", func(t *testing.T) {

		// Arrange
		store, mock := redisStore(t)
		raw, err := json.Marshal(checkout.Session{CustomerID: customerID, Step: checkout.StepShipping})
		require.NoError(t, err)

		mock.ExpectGet(key).SetVal(string(raw))

		// Act
		session, found, err := store.Load(t.Context(), customerID)

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, checkout.StepShipping, session.Step)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - No Session", func(t *testing.T) {

		// Arrange
		store, mock := redisStore(t)
		mock.ExpectGet(key).RedisNil()

		// Act
		session, found, err := store.Load(t.Context(), customerID)

		// Assert
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, session)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Down", func(t *testing.T) {

		// Arrange
		store, mock := redisStore(t)
		mock.ExpectGet(key).SetErr(errors.New("connection refused"))

		// Act
		_, found, err := store.Load(t.Context(), customerID)

		// Assert
		assert.Error(t, err)
		assert.False(t, found)
	})
}

func TestStore_SubmitLock(t *testing.T) {

	customerID := uuid.New()
	key := cache.Key(cache.SubmitLockKeyPrefix, customerID.String())

	t.Run("Success - First Submit Takes The Lock", func(t *testing.T) {

		// Arrange
		store, mock := redisStore(t)
		mock.ExpectSetNX(key, []byte("true"), time.Minute).SetVal(true)
		mock.ExpectDel(key).SetVal(1)

		// Act
		acquired, err := store.AcquireSubmit(t.Context(), customerID)
		require.NoError(t, err)

		releaseErr := store.ReleaseSubmit(t.Context(), customerID)

		// Assert
		assert.True(t, acquired)
		assert.NoError(t, releaseErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Submission In Flight", func(t *testing.T) {

		// Arrange
		store, mock := redisStore(t)
		mock.ExpectSetNX(key, []byte("true"), time.Minute).SetVal(false)

		// Act
		acquired, err := store.AcquireSubmit(t.Context(), customerID)

		// Assert
		require.NoError(t, err)
		assert.False(t, acquired)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_Delete(t *testing.T) {

	// Arrange
	customerID := uuid.New()
	store, mock := redisStore(t)
	mock.ExpectDel(cache.Key(cache.CheckoutKeyPrefix, customerID.String())).SetVal(1)

	// Act
	err := store.Delete(t.Context(), customerID)

	// Assert
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
