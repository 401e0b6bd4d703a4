package utils_test

import (
	"testing"

	appErrors "github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddress() models.ShippingAddress {
	return models.ShippingAddress{
		Name:         "Ana Souza",
		Email:        "ana@example.com",
		Phone:        "+55 11 99999-9999",
		PostalCode:   "01310-100",
		Street:       "Av. Paulista",
		Number:       "1000",
		Neighborhood: "Bela Vista",
		City:         "Sao Paulo",
		State:        "SP",
	}
}

func TestValidateShippingAddress(t *testing.T) {
	v := utils.NewValidator()

	t.Run("Success - valid address", func(t *testing.T) {
		addr := validAddress()

		assert.NoError(t, utils.ValidateStruct(v, &addr))
	})

	t.Run("Failure - empty street reports street only", func(t *testing.T) {
		// Arrange
		addr := validAddress()
		addr.Street = ""

		// Act
		err := utils.ValidateStruct(v, &addr)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		require.Len(t, appErr.Fields, 1)
		assert.Equal(t, "street", appErr.Fields[0].Field)
		assert.Equal(t, "is required", appErr.Fields[0].Message)
	})

	t.Run("Failure - postal code with seven digits", func(t *testing.T) {
		addr := validAddress()
		addr.PostalCode = "0131-010"

		err := utils.ValidateStruct(v, &addr)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		require.Len(t, appErr.Fields, 1)
		assert.Equal(t, "postal_code", appErr.Fields[0].Field)
	})

	t.Run("Failure - bad email and phone", func(t *testing.T) {
		addr := validAddress()
		addr.Email = "not-an-email"
		addr.Phone = "123"

		err := utils.ValidateStruct(v, &addr)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		fields := []string{}
		for _, f := range appErr.Fields {
			fields = append(fields, f.Field)
		}
		assert.ElementsMatch(t, []string{"email", "phone"}, fields)
	})
}

func TestValidateCreateProduct(t *testing.T) {
	v := utils.NewValidator()
	stock := 5

	t.Run("Success", func(t *testing.T) {
		req := models.CreateProductRequest{Name: "Capacete", Price: decimal.RequireFromString("499.90"), StockQuantity: &stock}

		assert.NoError(t, utils.ValidateStruct(v, &req))
	})

	t.Run("Failure - zero price and missing stock", func(t *testing.T) {
		req := models.CreateProductRequest{Name: "Capacete", Price: decimal.Zero}

		err := utils.ValidateStruct(v, &req)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		fields := []string{}
		for _, f := range appErr.Fields {
			fields = append(fields, f.Field)
		}
		assert.ElementsMatch(t, []string{"price", "stock_quantity"}, fields)
	})

	t.Run("Failure - original price below price", func(t *testing.T) {
		req := models.CreateProductRequest{
			Name:          "Capacete",
			Price:         decimal.NewFromInt(500),
			OriginalPrice: decimal.NewNullDecimal(decimal.NewFromInt(400)),
			StockQuantity: &stock,
		}

		err := utils.ValidateStruct(v, &req)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		require.Len(t, appErr.Fields, 1)
		assert.Equal(t, "original_price", appErr.Fields[0].Field)
	})
}

func TestNormalizePostalCode(t *testing.T) {
	got, err := utils.NormalizePostalCode("01310-100")
	assert.NoError(t, err)
	assert.Equal(t, "01310100", got)

	_, err = utils.NormalizePostalCode("1234")
	assert.Error(t, err)

	assert.False(t, utils.IsValidPostalCode("abc"))
}
