package stripe_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	storestripe "github.com/aaravmahajanofficial/helmet-storefront/pkg/stripe"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) storestripe.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return storestripe.NewStripeClient("sk_test_123", "whsec_test", storestripe.WithBaseURL(server.URL))
}

func TestCreatePixPayment(t *testing.T) {
	// Arrange
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "idem-pix", r.Header.Get("Idempotency-Key"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "21500", r.PostForm.Get("amount"))
		assert.Equal(t, "pix", r.PostForm.Get("payment_method_types[0]"))
		assert.Equal(t, "1800", r.PostForm.Get("payment_method_options[pix][expires_after_seconds]"))
		assert.Equal(t, "pix", r.PostForm.Get("payment_method_data[type]"))
		assert.Equal(t, "Ana Souza", r.PostForm.Get("payment_method_data[billing_details][name]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_123","object":"payment_intent","status":"requires_action",
			"next_action":{"type":"pix_display_qr_code","pix_display_qr_code":{"data":"00020126","image_url_png":"https://qr.example/pi_123.png","expires_at":1700000000}}}`))
	})

	// Act
	intent, err := client.CreatePixPayment(t.Context(), storestripe.IntentRequest{
		OrderID:         "order-1",
		Amount:          21500,
		Currency:        "brl",
		Email:           "ana@example.com",
		Name:            "Ana Souza",
		PixExpiresAfter: 30 * time.Minute,
		IdempotencyKey:  "idem-pix",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pi_123", intent.ID)
	require.NotNil(t, intent.NextAction)
	require.NotNil(t, intent.NextAction.PixDisplayQRCode)
	assert.Equal(t, "00020126", intent.NextAction.PixDisplayQRCode.Data)
}

func TestCreateCardPayment_RequiresPaymentMethod(t *testing.T) {
	// Arrange
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { calls++ })

	// Act
	_, err := client.CreateCardPayment(t.Context(), storestripe.IntentRequest{Amount: 100, Currency: "brl"})

	// Assert
	require.Error(t, err)
	assert.Zero(t, calls)
}

func TestCreateCheckoutSession_ApiError(t *testing.T) {
	// Arrange
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Not a valid URL"}}`))
	})

	// Act
	_, err := client.CreateCheckoutSession(t.Context(), storestripe.CheckoutRequest{
		OrderID:    "order-1",
		Currency:   "brl",
		Items:      []storestripe.LineItem{{Name: "Capacete", UnitAmount: 10000, Quantity: 2}},
		SuccessURL: "bad",
		CancelURL:  "bad",
	})

	// Assert
	var stripeErr *stripe.Error
	require.ErrorAs(t, err, &stripeErr)
	assert.Equal(t, http.StatusBadRequest, stripeErr.HTTPStatusCode)
}

func TestVerifyWebhookSignature(t *testing.T) {
	client := storestripe.NewStripeClient("sk_test_123", "whsec_test")
	payload := []byte(fmt.Sprintf(`{"id":"evt_1","object":"event","type":"payment_intent.succeeded","api_version":%q,"data":{"object":{"id":"pi_123","object":"payment_intent"}}}`, stripe.APIVersion))

	t.Run("Success", func(t *testing.T) {
		// Arrange
		signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: payload, Secret: "whsec_test"})

		// Act
		event, err := client.VerifyWebhookSignature(signed.Payload, signed.Header)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "payment_intent.succeeded", string(event.Type))
	})

	t.Run("Failure - Bad signature", func(t *testing.T) {
		// Act
		_, err := client.VerifyWebhookSignature(payload, "t=1,v1=deadbeef")

		// Assert
		assert.Error(t, err)
	})
}
