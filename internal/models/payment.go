package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodRedirect PaymentMethod = "redirect"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodPix      PaymentMethod = "pix"
	PaymentMethodBoleto   PaymentMethod = "boleto"
)

type Payment struct {
	ID               uuid.UUID       `json:"id"`
	OrderID          uuid.UUID       `json:"order_id"`
	CustomerID       uuid.UUID       `json:"customer_id"`
	Provider         string          `json:"provider"`
	GatewayPaymentID string          `json:"gateway_payment_id"`
	Method           PaymentMethod   `json:"payment_method"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	Status           PaymentStatus   `json:"payment_status"`
	ProviderStatus   string          `json:"provider_status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// CardInput carries the card form. Number and CVV are validated and then dropped; only Token reaches the gateway.
type CardInput struct {
	Token           string `json:"token,omitempty"`
	Number          string `json:"number"`
	HolderName      string `json:"holder_name"`
	ExpiryMonth     int    `json:"expiry_month"`
	ExpiryYear      int    `json:"expiry_year"`
	CVV             string `json:"cvv"`
	Installments    int    `json:"installments" validate:"omitempty,min=1,max=24"`
	IssuerID        string `json:"issuer_id,omitempty"`
	PaymentMethodID string `json:"payment_method_id,omitempty"`
}

type SubmitPaymentRequest struct {
	Method         PaymentMethod `json:"method"          validate:"required,oneof=redirect card pix boleto"`
	Card           *CardInput    `json:"card,omitempty"  validate:"required_if=Method card"`
	DocumentType   string        `json:"document_type,omitempty"   validate:"omitempty,oneof=CPF CNPJ"`
	DocumentNumber string        `json:"document_number,omitempty" validate:"required_if=Method boleto,omitempty,numeric,min=11,max=14"`
}

// PaymentStatusResponse is what the PIX screen polls.
type PaymentStatusResponse struct {
	OrderID          uuid.UUID     `json:"order_id"`
	GatewayPaymentID string        `json:"gateway_payment_id"`
	Status           PaymentStatus `json:"status"`
	ProviderStatus   string        `json:"provider_status"`
	SecondsRemaining int           `json:"seconds_remaining,omitempty"`
}

type Installment struct {
	Installments      int             `json:"installments"`
	InstallmentRate   decimal.Decimal `json:"installment_rate"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	RecommendedText   string          `json:"recommended_message,omitempty"`
}

// PaymentEvent is published to realtime subscribers when an order's payment moves.
type PaymentEvent struct {
	Type          string        `json:"type"`
	OrderID       uuid.UUID     `json:"order_id"`
	CustomerID    uuid.UUID     `json:"customer_id"`
	OrderStatus   OrderStatus   `json:"order_status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	OccurredAt    time.Time     `json:"occurred_at"`
}

// CheckoutReturnRequest is what the client forwards after the hosted checkout redirects back.
type CheckoutReturnRequest struct {
	OrderID   uuid.UUID `json:"order_id"   validate:"required"`
	Status    string    `json:"status"     validate:"required,oneof=success failure pending"`
	PaymentID string    `json:"payment_id,omitempty" validate:"omitempty,max=64"`
}
