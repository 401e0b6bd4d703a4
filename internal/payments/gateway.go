package payments

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gateway is the server side of every payment operation. Implementations keep the provider
// credentials and never return raw provider errors: failures come back as AppErrors
// classified as THIRD_PARTY_ERROR or CONNECTIVITY_ERROR.
type Gateway interface {
	Provider() string
	CreatePreference(ctx context.Context, req CheckoutRequest) (*Result, error)
	CreateCardPayment(ctx context.Context, req ChargeRequest) (*Result, error)
	CreatePixPayment(ctx context.Context, req ChargeRequest) (*Result, error)
	CreateBoletoPayment(ctx context.Context, req ChargeRequest) (*Result, error)
	GetInstallments(ctx context.Context, amount decimal.Decimal, bin string) ([]models.Installment, error)
	GetPaymentStatus(ctx context.Context, gatewayPaymentID string) (*Result, error)
	// Ping checks the provider is reachable with the configured credentials.
	Ping(ctx context.Context) error
}

type Payer struct {
	Name           string
	Email          string
	DocumentType   string
	DocumentNumber string
	Address        models.ShippingAddress
}

// CheckoutRequest is a hosted (redirect) checkout for a whole order.
type CheckoutRequest struct {
	OrderID        uuid.UUID
	Items          []models.OrderItem
	Shipping       *models.ShippingSelection
	Total          decimal.Decimal
	Payer          Payer
	IdempotencyKey string
}

// ChargeRequest is a direct charge of Amount, which must already include shipping.
type ChargeRequest struct {
	OrderID        uuid.UUID
	Amount         decimal.Decimal
	Description    string
	Payer          Payer
	Card           *models.CardInput
	IdempotencyKey string
}

// Result is a gateway answer. OrderReference echoes the order id the payment was created for, when the provider returns it.
type Result struct {
	GatewayPaymentID string
	OrderReference   string
	Status           models.PaymentStatus
	Details          models.PaymentDetails
}

const (
	gatewayService        = "payment gateway"
	defaultGatewayTimeout = 20 * time.Second
)

// withGatewayTimeout bounds a single gateway call.
func withGatewayTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultGatewayTimeout
	}

	return context.WithTimeout(ctx, timeout)
}

// returnURL builds the absolute URL the hosted checkout sends the customer back to.
func returnURL(base string, orderID uuid.UUID, outcome string) string {
	q := url.Values{}
	q.Set("order_id", orderID.String())
	q.Set("status", outcome)

	return fmt.Sprintf("%s/checkout/return?%s", strings.TrimRight(base, "/"), q.Encode())
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}

	return parts[0], strings.Join(parts[1:], " ")
}
