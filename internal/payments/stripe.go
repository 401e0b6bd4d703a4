package payments

import (
	"context"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/config"
	appErrors "github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	storestripe "github.com/aaravmahajanofficial/helmet-storefront/pkg/stripe"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
)

type stripeGateway struct {
	client storestripe.Client
	cfg    *config.Payments
}

func NewStripeGateway(client storestripe.Client, cfg *config.Payments) Gateway {
	return &stripeGateway{client: client, cfg: cfg}
}

func (g *stripeGateway) Provider() string {
	return config.ProviderStripe
}

func (g *stripeGateway) CreatePreference(ctx context.Context, req CheckoutRequest) (*Result, error) {
	ctx, cancel := withGatewayTimeout(ctx, g.cfg.RequestTimeout)
	defer cancel()

	checkout := storestripe.CheckoutRequest{
		OrderID:        req.OrderID.String(),
		CustomerEmail:  req.Payer.Email,
		Currency:       g.currency(),
		SuccessURL:     returnURL(g.cfg.ReturnBaseURL, req.OrderID, "success"),
		CancelURL:      returnURL(g.cfg.ReturnBaseURL, req.OrderID, "failure"),
		IdempotencyKey: req.IdempotencyKey,
	}

	for _, item := range req.Items {
		checkout.Items = append(checkout.Items, storestripe.LineItem{
			Name:       itemTitle(item),
			UnitAmount: cents(item.UnitPrice),
			Quantity:   int64(item.Quantity),
		})
	}

	if req.Shipping != nil {
		checkout.ShippingName = req.Shipping.Name
		checkout.ShippingAmount = cents(req.Shipping.Price)
	}

	session, err := g.client.CreateCheckoutSession(ctx, checkout)
	if err != nil {
		return nil, appErrors.UpstreamError(gatewayService, err)
	}

	return &Result{
		GatewayPaymentID: session.ID,
		Status:           models.PaymentStatusPending,
		Details: models.PaymentDetails{
			Provider:         g.Provider(),
			GatewayPaymentID: session.ID,
			ProviderStatus:   string(session.Status),
			RedirectURL:      session.URL,
		},
	}, nil
}

// CreateCardPayment expects Card.Token to hold a PaymentMethod id created by Stripe.js.
func (g *stripeGateway) CreateCardPayment(ctx context.Context, req ChargeRequest) (*Result, error) {
	if req.Card == nil {
		return nil, appErrors.AddValidationError("card", "is required")
	}

	ctx, cancel := withGatewayTimeout(ctx, g.cfg.RequestTimeout)
	defer cancel()

	intent, err := g.client.CreateCardPayment(ctx, g.intentRequest(req, req.Card.Token))
	if err != nil {
		return nil, appErrors.UpstreamError(gatewayService, err)
	}

	result := g.result(intent)
	result.Status = CardOutcome(result.Status)
	result.Details.CardBrand = DetectBrand(req.Card.Number)
	result.Details.LastFour = LastFour(req.Card.Number)
	result.Details.Installments = 1

	return result, nil
}

func (g *stripeGateway) CreatePixPayment(ctx context.Context, req ChargeRequest) (*Result, error) {
	ctx, cancel := withGatewayTimeout(ctx, g.cfg.RequestTimeout)
	defer cancel()

	intentReq := g.intentRequest(req, "")
	intentReq.PixExpiresAfter = g.cfg.PixExpiry

	intent, err := g.client.CreatePixPayment(ctx, intentReq)
	if err != nil {
		return nil, appErrors.UpstreamError(gatewayService, err)
	}

	if intent.NextAction == nil || intent.NextAction.PixDisplayQRCode == nil || intent.NextAction.PixDisplayQRCode.Data == "" {
		return nil, appErrors.ThirdPartyError("Payment gateway returned no PIX code")
	}

	qr := intent.NextAction.PixDisplayQRCode
	expiresAt := time.Unix(qr.ExpiresAt, 0)

	result := g.result(intent)
	result.Details.PixQRCode = qr.Data
	result.Details.RedirectURL = qr.HostedInstructionsURL
	result.Details.PixExpiresAt = &expiresAt

	return result, nil
}

func (g *stripeGateway) CreateBoletoPayment(ctx context.Context, req ChargeRequest) (*Result, error) {
	if req.Payer.DocumentNumber == "" {
		return nil, appErrors.AddValidationError("document_number", "is required")
	}

	ctx, cancel := withGatewayTimeout(ctx, g.cfg.RequestTimeout)
	defer cancel()

	intent, err := g.client.CreateBoletoPayment(ctx, g.intentRequest(req, ""))
	if err != nil {
		return nil, appErrors.UpstreamError(gatewayService, err)
	}

	result := g.result(intent)

	if intent.NextAction != nil && intent.NextAction.BoletoDisplayDetails != nil {
		result.Details.BoletoURL = intent.NextAction.BoletoDisplayDetails.HostedVoucherURL
		result.Details.BoletoBarcode = intent.NextAction.BoletoDisplayDetails.Number
	}

	return result, nil
}

// GetInstallments offers a single installment; Stripe has no installment quote API for BRL cards.
func (g *stripeGateway) GetInstallments(_ context.Context, amount decimal.Decimal, _ string) ([]models.Installment, error) {
	total := amount.Round(2)

	return []models.Installment{{
		Installments:      1,
		InstallmentRate:   decimal.Zero,
		InstallmentAmount: total,
		TotalAmount:       total,
	}}, nil
}

func (g *stripeGateway) Ping(ctx context.Context) error {
	ctx, cancel := withGatewayTimeout(ctx, g.cfg.RequestTimeout)
	defer cancel()

	if err := g.client.Ping(ctx); err != nil {
		return appErrors.UpstreamError(gatewayService, err)
	}

	return nil
}

func (g *stripeGateway) GetPaymentStatus(ctx context.Context, gatewayPaymentID string) (*Result, error) {
	ctx, cancel := withGatewayTimeout(ctx, g.cfg.RequestTimeout)
	defer cancel()

	if strings.HasPrefix(gatewayPaymentID, "cs_") {
		session, err := g.client.GetCheckoutSession(ctx, gatewayPaymentID)
		if err != nil {
			return nil, appErrors.UpstreamError(gatewayService, err)
		}

		providerStatus := stripeSessionStatus(session)

		return &Result{
			GatewayPaymentID: session.ID,
			OrderReference:   session.ClientReferenceID,
			Status:           MapStatus(providerStatus),
			Details: models.PaymentDetails{
				Provider:         g.Provider(),
				GatewayPaymentID: session.ID,
				ProviderStatus:   providerStatus,
				RedirectURL:      session.URL,
			},
		}, nil
	}

	intent, err := g.client.GetPaymentIntent(ctx, gatewayPaymentID)
	if err != nil {
		return nil, appErrors.UpstreamError(gatewayService, err)
	}

	return g.result(intent), nil
}

func (g *stripeGateway) result(intent *stripe.PaymentIntent) *Result {
	providerStatus := stripeIntentStatus(intent.Status)

	details := models.PaymentDetails{
		Provider:         g.Provider(),
		GatewayPaymentID: intent.ID,
		ProviderStatus:   providerStatus,
	}

	if intent.LastPaymentError != nil {
		details.StatusDetail = intent.LastPaymentError.Msg
	}

	return &Result{
		GatewayPaymentID: intent.ID,
		OrderReference:   intent.Metadata["order_id"],
		Status:           MapStatus(providerStatus),
		Details:          details,
	}
}

func (g *stripeGateway) intentRequest(req ChargeRequest, paymentMethodID string) storestripe.IntentRequest {
	addr := req.Payer.Address

	intentReq := storestripe.IntentRequest{
		OrderID:         req.OrderID.String(),
		Amount:          cents(req.Amount),
		Currency:        g.currency(),
		Description:     req.Description,
		Email:           req.Payer.Email,
		Name:            req.Payer.Name,
		TaxID:           models.OnlyDigits(req.Payer.DocumentNumber),
		PaymentMethodID: paymentMethodID,
		IdempotencyKey:  req.IdempotencyKey,
		ReturnURL:       returnURL(g.cfg.ReturnBaseURL, req.OrderID, "success"),
	}

	if addr.Street != "" {
		intentReq.Address = &storestripe.BillingAddress{
			Line1:      strings.TrimSpace(addr.Street + ", " + addr.Number),
			City:       addr.City,
			State:      addr.State,
			PostalCode: addr.PostalCode,
			Country:    "BR",
		}
	}

	return intentReq
}

func (g *stripeGateway) currency() string {
	return strings.ToLower(g.cfg.Currency)
}

// cents converts a decimal amount to the smallest currency unit.
func cents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}
