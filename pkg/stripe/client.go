package stripe

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"
)

type Event = stripe.Event

type Client interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*stripe.CheckoutSession, error)
	CreateCardPayment(ctx context.Context, req IntentRequest) (*stripe.PaymentIntent, error)
	CreatePixPayment(ctx context.Context, req IntentRequest) (*stripe.PaymentIntent, error)
	CreateBoletoPayment(ctx context.Context, req IntentRequest) (*stripe.PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error)
	GetCheckoutSession(ctx context.Context, id string) (*stripe.CheckoutSession, error)
	VerifyWebhookSignature(payload []byte, signature string) (Event, error)
	Ping(ctx context.Context) error
}

type stripeClient struct {
	api           *client.API
	webhookSecret string
}

type Option func(*stripe.BackendConfig)

// WithBaseURL points the API backend at another host.
func WithBaseURL(baseURL string) Option {
	return func(cfg *stripe.BackendConfig) {
		cfg.URL = stripe.String(baseURL)
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(cfg *stripe.BackendConfig) {
		cfg.HTTPClient = httpClient
	}
}

func NewStripeClient(apiKey, webhookSecret string, opts ...Option) Client {
	cfg := &stripe.BackendConfig{MaxNetworkRetries: stripe.Int64(1)}

	for _, opt := range opts {
		opt(cfg)
	}

	backends := &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, cfg),
		Connect: stripe.GetBackend(stripe.ConnectBackend),
		Uploads: stripe.GetBackend(stripe.UploadsBackend),
	}

	return &stripeClient{api: client.New(apiKey, backends), webhookSecret: webhookSecret}
}

type LineItem struct {
	Name       string
	ImageURL   string
	UnitAmount int64
	Quantity   int64
}

// CheckoutRequest describes a hosted Checkout Session. Amounts are in cents.
type CheckoutRequest struct {
	OrderID        string
	CustomerEmail  string
	Currency       string
	Items          []LineItem
	ShippingName   string
	ShippingAmount int64
	SuccessURL     string
	CancelURL      string
	IdempotencyKey string
}

type BillingAddress struct {
	Line1      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// IntentRequest is the shared input of the PaymentIntent based methods. Amount is in cents.
type IntentRequest struct {
	OrderID         string
	Amount          int64
	Currency        string
	Description     string
	Email           string
	Name            string
	TaxID           string
	PaymentMethodID string
	Address         *BillingAddress
	PixExpiresAfter time.Duration
	ReturnURL       string
	IdempotencyKey  string
}

func (s *stripeClient) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(req.OrderID),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		Metadata:          map[string]string{"order_id": req.OrderID},
	}

	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}

	for _, item := range req.Items {
		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{Name: stripe.String(item.Name)}
		if item.ImageURL != "" {
			product.Images = []*string{stripe.String(item.ImageURL)}
		}

		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(item.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(req.Currency),
				UnitAmount:  stripe.Int64(item.UnitAmount),
				ProductData: product,
			},
		})
	}

	if req.ShippingAmount > 0 {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(req.Currency),
				UnitAmount:  stripe.Int64(req.ShippingAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{Name: stripe.String("Frete " + req.ShippingName)},
			},
		})
	}

	params.Context = ctx
	setIdempotency(&params.Params, req.IdempotencyKey)

	session, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}

	if session.URL == "" {
		return nil, errors.New("stripe: checkout session has no redirect url")
	}

	return session, nil
}

// CreateCardPayment confirms a PaymentIntent with a PaymentMethod tokenised on the client.
func (s *stripeClient) CreateCardPayment(ctx context.Context, req IntentRequest) (*stripe.PaymentIntent, error) {
	if req.PaymentMethodID == "" {
		return nil, errors.New("stripe: payment method id is required")
	}

	params := s.intentParams(ctx, req, "card")
	params.PaymentMethod = stripe.String(req.PaymentMethodID)

	if req.ReturnURL != "" {
		params.ReturnURL = stripe.String(req.ReturnURL)
	}

	return s.api.PaymentIntents.New(params)
}

func (s *stripeClient) CreatePixPayment(ctx context.Context, req IntentRequest) (*stripe.PaymentIntent, error) {
	params := s.intentParams(ctx, req, "pix")
	params.PaymentMethodData = &stripe.PaymentIntentPaymentMethodDataParams{
		Type:           stripe.String("pix"),
		Pix:            &stripe.PaymentMethodPixParams{},
		BillingDetails: billingDetails(req),
	}

	if req.PixExpiresAfter > 0 {
		params.PaymentMethodOptions = &stripe.PaymentIntentPaymentMethodOptionsParams{
			Pix: &stripe.PaymentIntentPaymentMethodOptionsPixParams{
				ExpiresAfterSeconds: stripe.Int64(int64(req.PixExpiresAfter.Seconds())),
			},
		}
	}

	return s.api.PaymentIntents.New(params)
}

func (s *stripeClient) CreateBoletoPayment(ctx context.Context, req IntentRequest) (*stripe.PaymentIntent, error) {
	if req.TaxID == "" {
		return nil, errors.New("stripe: boleto requires the payer tax id")
	}

	params := s.intentParams(ctx, req, "boleto")
	params.PaymentMethodData = &stripe.PaymentIntentPaymentMethodDataParams{
		Type:           stripe.String("boleto"),
		Boleto:         &stripe.PaymentMethodBoletoParams{TaxID: stripe.String(req.TaxID)},
		BillingDetails: billingDetails(req),
	}

	return s.api.PaymentIntents.New(params)
}

func (s *stripeClient) GetPaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	return s.api.PaymentIntents.Get(id, params)
}

func (s *stripeClient) GetCheckoutSession(ctx context.Context, id string) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	return s.api.CheckoutSessions.Get(id, params)
}

func (s *stripeClient) VerifyWebhookSignature(payload []byte, signature string) (Event, error) {
	if s.webhookSecret == "" {
		return Event{}, errors.New("webhook secret not configured")
	}

	return webhook.ConstructEvent(payload, signature, s.webhookSecret)
}

// Ping reads the account balance, which fails fast on a bad key or an unreachable API.
func (s *stripeClient) Ping(ctx context.Context) error {
	_, err := s.api.Balance.Get(&stripe.BalanceParams{Params: stripe.Params{Context: ctx}})

	return err
}

func (s *stripeClient) intentParams(ctx context.Context, req IntentRequest, method string) *stripe.PaymentIntentParams {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.Amount),
		Currency:           stripe.String(req.Currency),
		PaymentMethodTypes: []*string{stripe.String(method)},
		Confirm:            stripe.Bool(true),
		Metadata:           map[string]string{"order_id": req.OrderID},
	}

	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}

	if req.Email != "" {
		params.ReceiptEmail = stripe.String(req.Email)
	}

	params.Context = ctx
	setIdempotency(&params.Params, req.IdempotencyKey)

	return params
}

func billingDetails(req IntentRequest) *stripe.PaymentIntentPaymentMethodDataBillingDetailsParams {
	details := &stripe.PaymentIntentPaymentMethodDataBillingDetailsParams{
		Name:  stripe.String(req.Name),
		Email: stripe.String(req.Email),
	}

	if req.Address != nil {
		details.Address = &stripe.AddressParams{
			Line1:      stripe.String(req.Address.Line1),
			City:       stripe.String(req.Address.City),
			State:      stripe.String(req.Address.State),
			PostalCode: stripe.String(req.Address.PostalCode),
			Country:    stripe.String(req.Address.Country),
		}
	}

	return details
}

func setIdempotency(params *stripe.Params, key string) {
	if key != "" {
		params.SetIdempotencyKey(key)
	}
}
