package service_test

import (
	"context"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	service "github.com/aaravmahajanofficial/helmet-storefront/internal/services"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/helmet-storefront/pkg/viacep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddressService_Lookup(t *testing.T) {

	ctx := context.Background()

	t.Run("Success - Found And Cached", func(t *testing.T) {

		// Arrange
		client := mocks.NewMockPostalCodeLookup(t)
		addressService := service.NewAddressService(client, newMemCache(), time.Hour, time.Second)

		client.On("Lookup", mock.Anything, "01310100").Return(&viacep.Address{
			CEP:          "01310-100",
			Street:       "Avenida Paulista",
			Neighborhood: "Bela Vista",
			City:         "São Paulo",
			State:        "sp",
		}, nil).Once()

		// Act
		first, err := addressService.Lookup(ctx, "01310-100")
		require.NoError(t, err)

		second, err := addressService.Lookup(ctx, "01310100")

		// Assert
		require.NoError(t, err)
		assert.True(t, first.Found)
		assert.Equal(t, "SP", first.State)
		assert.Equal(t, first, second)
		client.AssertNumberOfCalls(t, "Lookup", 1)
	})

	t.Run("Success - Erro Flag Skips Autofill", func(t *testing.T) {

		// Arrange
		client := mocks.NewMockPostalCodeLookup(t)
		addressService := service.NewAddressService(client, newMemCache(), time.Hour, time.Second)

		client.On("Lookup", mock.Anything, "99999999").Return(&viacep.Address{NotFound: true}, nil).Once()

		// Act
		result, err := addressService.Lookup(ctx, "99999-999")

		// Assert
		require.NoError(t, err)
		assert.False(t, result.Found)
		assert.Empty(t, result.Street)
	})

	t.Run("Failure - Malformed Postal Code", func(t *testing.T) {

		// Arrange
		client := mocks.NewMockPostalCodeLookup(t)
		addressService := service.NewAddressService(client, newMemCache(), time.Hour, time.Second)

		// Act
		_, err := addressService.Lookup(ctx, "123")

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
	})
}
