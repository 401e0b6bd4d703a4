package payments

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/config"
	appErrors "github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/aaravmahajanofficial/helmet-storefront/pkg/mercadopago"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/shopspring/decimal"
)

var mpCardMethods = map[string]string{
	BrandVisa:       "visa",
	BrandMastercard: "master",
	BrandAmex:       "amex",
	BrandElo:        "elo",
	BrandHipercard:  "hipercard",
}

type mercadoPagoGateway struct {
	client *mercadopago.Client
	cfg    *config.Payments
	now    func() time.Time
}

func NewMercadoPagoGateway(client *mercadopago.Client, cfg *config.Payments) Gateway {
	return &mercadoPagoGateway{client: client, cfg: cfg, now: time.Now}
}

func (g *mercadoPagoGateway) Provider() string {
	return config.ProviderMercadoPago
}

func (g *mercadoPagoGateway) CreatePreference(ctx context.Context, req CheckoutRequest) (*Result, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	first, last := splitName(req.Payer.Name)

	pref := preference.Request{
		Payer: &preference.PayerRequest{Email: req.Payer.Email, Name: first, Surname: last},
		BackURLs: &preference.BackURLsRequest{
			Success: returnURL(g.cfg.ReturnBaseURL, req.OrderID, "success"),
			Failure: returnURL(g.cfg.ReturnBaseURL, req.OrderID, "failure"),
			Pending: returnURL(g.cfg.ReturnBaseURL, req.OrderID, "pending"),
		},
		AutoReturn:          "approved",
		ExternalReference:   req.OrderID.String(),
		NotificationURL:     g.notificationURL(),
		StatementDescriptor: g.cfg.StatementDescriptor,
	}

	for _, item := range req.Items {
		pref.Items = append(pref.Items, preference.ItemRequest{
			ID:         item.ProductID.String(),
			Title:      itemTitle(item),
			Quantity:   item.Quantity,
			UnitPrice:  money(item.UnitPrice),
			CurrencyID: g.cfg.Currency,
		})
	}

	if req.Shipping != nil && req.Shipping.Price.IsPositive() {
		pref.Shipments = &preference.ShipmentsRequest{Cost: money(req.Shipping.Price), Mode: "not_specified"}
	}

	created, err := g.client.CreatePreference(ctx, pref, req.IdempotencyKey)
	if err != nil {
		return nil, appErrors.UpstreamError(gatewayService, err)
	}

	redirect := created.InitPoint
	if !g.cfg.Production && created.SandboxInitPoint != "" {
		redirect = created.SandboxInitPoint
	}

	return &Result{
		GatewayPaymentID: created.ID,
		Status:           models.PaymentStatusPending,
		Details: models.PaymentDetails{
			Provider:         g.Provider(),
			GatewayPaymentID: created.ID,
			ProviderStatus:   "pending",
			RedirectURL:      redirect,
		},
	}, nil
}

func (g *mercadoPagoGateway) CreateCardPayment(ctx context.Context, req ChargeRequest) (*Result, error) {
	if req.Card == nil {
		return nil, appErrors.AddValidationError("card", "is required")
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	brand := DetectBrand(req.Card.Number)

	methodID := req.Card.PaymentMethodID
	if methodID == "" {
		methodID = mpCardMethods[brand]
	}

	installments := req.Card.Installments
	if installments < 1 {
		installments = 1
	}

	created, err := g.client.CreatePayment(ctx, payment.Request{
		TransactionAmount:   money(req.Amount),
		Description:         req.Description,
		PaymentMethodID:     methodID,
		Token:               req.Card.Token,
		Installments:        installments,
		IssuerID:            req.Card.IssuerID,
		Payer:               g.payer(req.Payer),
		ExternalReference:   req.OrderID.String(),
		NotificationURL:     g.notificationURL(),
		StatementDescriptor: g.cfg.StatementDescriptor,
	}, req.IdempotencyKey)
	if err != nil {
		return nil, appErrors.UpstreamError(gatewayService, err)
	}

	result := g.result(created)
	result.Status = CardOutcome(result.Status)
	result.Details.CardBrand = brand
	result.Details.LastFour = LastFour(req.Card.Number)
	result.Details.Installments = installments

	return result, nil
}

func (g *mercadoPagoGateway) CreatePixPayment(ctx context.Context, req ChargeRequest) (*Result, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	// the API keeps milliseconds at most
	expiresAt := g.now().Add(g.cfg.PixExpiry).Truncate(time.Millisecond)

	created, err := g.client.CreatePayment(ctx, payment.Request{
		TransactionAmount: money(req.Amount),
		Description:       req.Description,
		PaymentMethodID:   "pix",
		Payer:             g.payer(req.Payer),
		ExternalReference: req.OrderID.String(),
		NotificationURL:   g.notificationURL(),
		DateOfExpiration:  &expiresAt,
	}, req.IdempotencyKey)
	if err != nil {
		return nil, appErrors.UpstreamError(gatewayService, err)
	}

	data := created.PointOfInteraction.TransactionData
	if data.QRCode == "" {
		return nil, appErrors.ThirdPartyError("Payment gateway returned no PIX code")
	}

	if !created.DateOfExpiration.IsZero() {
		expiresAt = created.DateOfExpiration
	}

	result := g.result(created)
	result.Details.PixQRCode = data.QRCode
	result.Details.PixQRCodeBase64 = data.QRCodeBase64
	result.Details.PixExpiresAt = &expiresAt

	return result, nil
}

func (g *mercadoPagoGateway) CreateBoletoPayment(ctx context.Context, req ChargeRequest) (*Result, error) {
	if req.Payer.DocumentNumber == "" {
		return nil, appErrors.AddValidationError("document_number", "is required")
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	created, err := g.client.CreatePayment(ctx, payment.Request{
		TransactionAmount: money(req.Amount),
		Description:       req.Description,
		PaymentMethodID:   "bolbradesco",
		Payer:             g.payer(req.Payer),
		ExternalReference: req.OrderID.String(),
		NotificationURL:   g.notificationURL(),
	}, req.IdempotencyKey)
	if err != nil {
		return nil, appErrors.UpstreamError(gatewayService, err)
	}

	result := g.result(created)
	result.Details.BoletoURL = created.TransactionDetails.ExternalResourceURL
	result.Details.BoletoBarcode = created.TransactionDetails.Barcode.Content

	return result, nil
}

func (g *mercadoPagoGateway) GetInstallments(ctx context.Context, amount decimal.Decimal, bin string) ([]models.Installment, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	options, err := g.client.GetInstallments(ctx, amount.StringFixed(2), models.OnlyDigits(bin))
	if err != nil {
		return nil, appErrors.UpstreamError(gatewayService, err)
	}

	installments := []models.Installment{}
	if len(options) == 0 {
		return installments, nil
	}

	for _, cost := range options[0].PayerCosts {
		installments = append(installments, models.Installment{
			Installments:      cost.Installments,
			InstallmentRate:   decimal.NewFromFloat(cost.InstallmentRate),
			InstallmentAmount: decimal.NewFromFloat(cost.InstallmentAmount).Round(2),
			TotalAmount:       decimal.NewFromFloat(cost.TotalAmount).Round(2),
			RecommendedText:   cost.RecommendedMessage,
		})
	}

	return installments, nil
}

func (g *mercadoPagoGateway) GetPaymentStatus(ctx context.Context, gatewayPaymentID string) (*Result, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	found, err := g.client.GetPayment(ctx, gatewayPaymentID)
	if err != nil {
		return nil, appErrors.UpstreamError(gatewayService, err)
	}

	return g.result(found), nil
}

func (g *mercadoPagoGateway) Ping(ctx context.Context) error {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	if err := g.client.Ping(ctx); err != nil {
		return appErrors.UpstreamError(gatewayService, err)
	}

	return nil
}

func (g *mercadoPagoGateway) result(resp *payment.Response) *Result {
	id := strconv.Itoa(resp.ID)

	return &Result{
		GatewayPaymentID: id,
		OrderReference:   resp.ExternalReference,
		Status:           MapStatus(resp.Status),
		Details: models.PaymentDetails{
			Provider:         g.Provider(),
			GatewayPaymentID: id,
			ProviderStatus:   resp.Status,
			StatusDetail:     resp.StatusDetail,
			Installments:     resp.Installments,
			LastFour:         resp.Card.LastFourDigits,
		},
	}
}

func (g *mercadoPagoGateway) payer(p Payer) *payment.PayerRequest {
	first, last := splitName(p.Name)

	payer := &payment.PayerRequest{Email: p.Email, FirstName: first, LastName: last}

	if p.DocumentNumber != "" {
		docType := p.DocumentType
		if docType == "" {
			docType = "CPF"
			if len(models.OnlyDigits(p.DocumentNumber)) > 11 {
				docType = "CNPJ"
			}
		}

		payer.Identification = &payment.IdentificationRequest{Type: docType, Number: models.OnlyDigits(p.DocumentNumber)}
	}

	return payer
}

func (g *mercadoPagoGateway) notificationURL() string {
	if g.cfg.WebhookBaseURL == "" {
		return ""
	}

	return strings.TrimRight(g.cfg.WebhookBaseURL, "/") + "/api/v1/webhooks/mercadopago"
}

func (g *mercadoPagoGateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return withGatewayTimeout(ctx, g.cfg.RequestTimeout)
}

// money rounds to cents before handing the SDK its float amount.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func itemTitle(item models.OrderItem) string {
	if item.SelectedSize == "" {
		return item.ProductName
	}

	return item.ProductName + " (" + item.SelectedSize + ")"
}
