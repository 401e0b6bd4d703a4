package mercadopago_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/helmet-storefront/pkg/mercadopago"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *mercadopago.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := mercadopago.NewClient("TEST-token", mercadopago.WithBaseURL(server.URL))
	require.NoError(t, err)

	return client
}

func TestNewClient_RequiresToken(t *testing.T) {
	client, err := mercadopago.NewClient("   ")

	assert.Nil(t, client)
	assert.Error(t, err)
}

func TestClient_CreatePayment_Pix(t *testing.T) {
	// Arrange
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payments", r.URL.Path)
		assert.Equal(t, "Bearer TEST-token", r.Header.Get("Authorization"))
		assert.Equal(t, "idem-1", r.Header.Get("X-Idempotency-Key"))

		body, _ := io.ReadAll(r.Body)
		var payload map[string]json.RawMessage
		assert.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "215.5", string(payload["transaction_amount"]))
		assert.Equal(t, `"pix"`, string(payload["payment_method_id"]))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1234567890,"status":"pending","status_detail":"pending_waiting_transfer",
			"point_of_interaction":{"transaction_data":{"qr_code":"000201...","qr_code_base64":"iVBORw0KGgo="}}}`))
	})

	// Act
	created, err := client.CreatePayment(t.Context(), payment.Request{
		TransactionAmount: 215.5,
		PaymentMethodID:   "pix",
		Payer:             &payment.PayerRequest{Email: "ana@example.com"},
	}, "idem-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1234567890, created.ID)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, "000201...", created.PointOfInteraction.TransactionData.QRCode)
}

func TestClient_CreatePayment_SameKeyOnRetry(t *testing.T) {
	// Arrange
	var keys []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("X-Idempotency-Key"))
		_, _ = w.Write([]byte(`{"id":7,"status":"approved"}`))
	})
	req := payment.Request{TransactionAmount: 10, PaymentMethodID: "visa", Token: "tok"}

	// Act
	_, err := client.CreatePayment(t.Context(), req, "order-1")
	require.NoError(t, err)
	_, err = client.CreatePayment(t.Context(), req, "order-1")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, []string{"order-1", "order-1"}, keys)
}

func TestClient_CreatePreference(t *testing.T) {
	backURLs := &preference.BackURLsRequest{
		Success: "https://store.example/checkout/success",
		Failure: "https://store.example/checkout/failure",
		Pending: "https://store.example/checkout/pending",
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/checkout/preferences", r.URL.Path)
			_, _ = w.Write([]byte(`{"id":"pref-1","init_point":"https://mp.example/init/pref-1"}`))
		})

		// Act
		pref, err := client.CreatePreference(t.Context(), preference.Request{BackURLs: backURLs}, "")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "https://mp.example/init/pref-1", pref.InitPoint)
	})

	t.Run("Failure - Missing back urls", func(t *testing.T) {
		// Arrange
		calls := 0
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { calls++ })

		// Act
		_, err := client.CreatePreference(t.Context(), preference.Request{}, "")

		// Assert
		require.Error(t, err)
		assert.Zero(t, calls)
	})

	t.Run("Failure - Missing redirect url", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"id":"pref-1"}`))
		})

		// Act
		_, err := client.CreatePreference(t.Context(), preference.Request{BackURLs: backURLs}, "")

		// Assert
		var apiErr *mercadopago.APIError
		require.ErrorAs(t, err, &apiErr)
	})
}

func TestClient_Errors(t *testing.T) {
	t.Run("Failure - Non 2xx with cause", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"invalid","error":"bad_request","status":400,"cause":[{"code":2067,"description":"Invalid user identification number"}]}`))
		})

		// Act
		_, err := client.GetPayment(t.Context(), "42")

		// Assert
		var apiErr *mercadopago.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "bad_request", apiErr.Code)
		assert.Equal(t, "Invalid user identification number", apiErr.Message)
	})

	t.Run("Failure - 200 with error field", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":"bad_request","message":"invalid bin"}`))
		})

		// Act
		_, err := client.GetInstallments(t.Context(), "215.00", "000000")

		// Assert
		var apiErr *mercadopago.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "invalid bin", apiErr.Message)
	})

	t.Run("Failure - Non numeric payment id", func(t *testing.T) {
		// Arrange
		calls := 0
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { calls++ })

		// Act
		_, err := client.GetPayment(t.Context(), "pref-1")

		// Assert
		require.Error(t, err)
		assert.Zero(t, calls)
	})

	t.Run("Failure - Transport error", func(t *testing.T) {
		// Arrange
		transportErr := errors.New("dial tcp: connection refused")
		httpClient := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return nil, transportErr
		})}
		client, err := mercadopago.NewClient("TEST-token", mercadopago.WithHTTPClient(httpClient))
		require.NoError(t, err)

		// Act
		_, err = client.GetPayment(t.Context(), "42")

		// Assert
		assert.ErrorIs(t, err, transportErr)
		var apiErr *mercadopago.APIError
		assert.False(t, errors.As(err, &apiErr))
	})
}

func TestClient_GetInstallments(t *testing.T) {
	// Arrange
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_methods/installments", r.URL.Path)
		assert.Equal(t, "215.00", r.URL.Query().Get("amount"))
		assert.Equal(t, "411111", r.URL.Query().Get("bin"))
		_, _ = w.Write([]byte(`[{"payment_method_id":"visa","payer_costs":[
			{"installments":1,"installment_amount":215,"total_amount":215,"recommended_message":"1x de R$ 215,00"},
			{"installments":3,"installment_amount":74.5,"total_amount":223.5,"recommended_message":"3x de R$ 74,50"}]}]`))
	})

	// Act
	options, err := client.GetInstallments(t.Context(), "215.00", "411111")

	// Assert
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "visa", options[0].PaymentMethodID)
	assert.Len(t, options[0].PayerCosts, 2)
}
