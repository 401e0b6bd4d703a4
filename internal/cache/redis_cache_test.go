package cache_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/cache"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/config"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quote struct {
	Service string `json:"service"`
	Days    int    `json:"days"`
}

func setup(t *testing.T) (cache.Cache, redismock.ClientMock, *config.CacheConfig) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	cfg := &config.CacheConfig{DefaultTTL: 10 * time.Minute}

	return cache.NewRedisCache(client, cfg), mock, cfg
}

func TestGet(t *testing.T) {
	key := cache.Key(cache.ShippingQuoteKeyPrefix, "01310100", "1500")
	value := quote{Service: "PAC", Days: 6}
	data, err := json.Marshal(value)
	require.NoError(t, err)

	t.Run("Success - Hit", func(t *testing.T) {
		// Arrange
		c, mock, _ := setup(t)
		mock.ExpectGet(key).SetVal(string(data))

		// Act
		var got quote
		found, err := c.Get(t.Context(), key, &got)

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, value, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Miss", func(t *testing.T) {
		// Arrange
		c, mock, _ := setup(t)
		mock.ExpectGet(key).RedisNil()

		// Act
		var got quote
		found, err := c.Get(t.Context(), key, &got)

		// Assert
		require.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		c, mock, _ := setup(t)
		redisErr := errors.New("connection refused")
		mock.ExpectGet(key).SetErr(redisErr)

		// Act
		var got quote
		found, err := c.Get(t.Context(), key, &got)

		// Assert
		assert.False(t, found)
		assert.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSet(t *testing.T) {
	key := cache.Key(cache.AddressKeyPrefix, "01310100")
	value := quote{Service: "SEDEX", Days: 2}
	data, err := json.Marshal(value)
	require.NoError(t, err)

	t.Run("Success - Default TTL", func(t *testing.T) {
		// Arrange
		c, mock, cfg := setup(t)
		mock.ExpectSet(key, data, cfg.DefaultTTL).SetVal("OK")

		// Act
		err := c.Set(t.Context(), key, value, 0)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Marshal Error", func(t *testing.T) {
		// Arrange
		c, mock, _ := setup(t)

		// Act
		err := c.Set(t.Context(), key, make(chan int), time.Minute)

		// Assert
		var jsonErr *json.UnsupportedTypeError
		require.ErrorAs(t, err, &jsonErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSetIfAbsent(t *testing.T) {
	key := cache.Key(cache.SubmitLockKeyPrefix, "session-1")

	t.Run("Success - Claimed", func(t *testing.T) {
		// Arrange
		c, mock, _ := setup(t)
		mock.ExpectSetNX(key, []byte(`"held"`), time.Minute).SetVal(true)

		// Act
		ok, err := c.SetIfAbsent(t.Context(), key, "held", time.Minute)

		// Assert
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Already Held", func(t *testing.T) {
		// Arrange
		c, mock, _ := setup(t)
		mock.ExpectSetNX(key, []byte(`"held"`), time.Minute).SetVal(false)

		// Act
		ok, err := c.SetIfAbsent(t.Context(), key, "held", time.Minute)

		// Assert
		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTake(t *testing.T) {
	key := cache.Key(cache.DeleteTokenKeyPrefix, "token-1")

	t.Run("Success - Consumed", func(t *testing.T) {
		// Arrange
		c, mock, _ := setup(t)
		mock.ExpectGetDel(key).SetVal(`"product:42"`)

		// Act
		var target string
		found, err := c.Take(t.Context(), key, &target)

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "product:42", target)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Missing", func(t *testing.T) {
		// Arrange
		c, mock, _ := setup(t)
		mock.ExpectGetDel(key).RedisNil()

		// Act
		found, err := c.Take(t.Context(), key, nil)

		// Assert
		require.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDelete(t *testing.T) {
	t.Run("Success - Several Keys", func(t *testing.T) {
		// Arrange
		c, mock, _ := setup(t)
		mock.ExpectDel("cart:a", "cart:b").SetVal(2)

		// Act
		err := c.Delete(t.Context(), "cart:a", "cart:b")

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		c, mock, _ := setup(t)
		redisErr := errors.New("redis DEL failed")
		mock.ExpectDel("cart:a").SetErr(redisErr)

		// Act
		err := c.Delete(t.Context(), "cart:a")

		// Assert
		assert.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestKey(t *testing.T) {
	assert.Equal(t, "product:abc", cache.Key(cache.ProductKeyPrefix, "abc"))
	assert.Equal(t, "shipping:quote:01310100:1500", cache.Key(cache.ShippingQuoteKeyPrefix, "01310100", "1500"))
	assert.Equal(t, "cart:", cache.Key(cache.CartKeyPrefix))
}
