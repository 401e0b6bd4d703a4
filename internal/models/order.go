package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

type PaymentStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusApproved  PaymentStatus = "approved"
	PaymentStatusRejected  PaymentStatus = "rejected"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

var orderStatusRank = map[OrderStatus]int{
	OrderStatusPending:   0,
	OrderStatusConfirmed: 1,
	OrderStatusShipped:   2,
	OrderStatusDelivered: 3,
	OrderStatusCancelled: 4,
}

func (s OrderStatus) IsValid() bool {
	_, ok := orderStatusRank[s]
	return ok
}

// IsBackwardTransition reports a move to an earlier fulfilment stage, e.g. delivered -> pending.
func IsBackwardTransition(from, to OrderStatus) bool {
	if from == OrderStatusCancelled || to == OrderStatusCancelled {
		return false
	}

	return orderStatusRank[to] < orderStatusRank[from]
}

// IsTerminal reports whether no further gateway updates are expected for the status.
func (s PaymentStatus) IsTerminal() bool {
	return s != PaymentStatusPending
}

// ShippingAddress is the checkout address form. PostalCode is stored as 8 digits.
type ShippingAddress struct {
	Name         string `json:"name"         validate:"required,min=3,max=120"`
	Email        string `json:"email"        validate:"required,email"`
	Phone        string `json:"phone"        validate:"required,phone"`
	PostalCode   string `json:"postal_code"  validate:"required,postalcode"`
	Street       string `json:"street"       validate:"required,max=200"`
	Number       string `json:"number"       validate:"required,max=20"`
	Complement   string `json:"complement,omitempty" validate:"omitempty,max=100"`
	Neighborhood string `json:"neighborhood" validate:"required,max=100"`
	City         string `json:"city"         validate:"required,max=100"`
	State        string `json:"state"        validate:"required,len=2,alpha"`
}

func (a *ShippingAddress) Normalize() {
	a.Name = strings.TrimSpace(a.Name)
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	a.Phone = strings.TrimSpace(a.Phone)
	a.PostalCode = OnlyDigits(a.PostalCode)
	a.Street = strings.TrimSpace(a.Street)
	a.Number = strings.TrimSpace(a.Number)
	a.Complement = strings.TrimSpace(a.Complement)
	a.Neighborhood = strings.TrimSpace(a.Neighborhood)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.ToUpper(strings.TrimSpace(a.State))
}

func (a ShippingAddress) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *ShippingAddress) Scan(src any) error {
	return scanJSON(src, a)
}

// ShippingSelection is the quoted service the customer picked.
type ShippingSelection struct {
	ServiceID    string          `json:"service_id"`
	Name         string          `json:"name"`
	Carrier      string          `json:"carrier"`
	Price        decimal.Decimal `json:"price"`
	DeliveryDays int             `json:"delivery_days"`
}

func (s ShippingSelection) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *ShippingSelection) Scan(src any) error {
	return scanJSON(src, s)
}

// PaymentDetails holds the method specific data returned by the gateway.
type PaymentDetails struct {
	Provider         string     `json:"provider,omitempty"`
	GatewayPaymentID string     `json:"gateway_payment_id,omitempty"`
	ProviderStatus   string     `json:"provider_status,omitempty"`
	StatusDetail     string     `json:"status_detail,omitempty"`
	Installments     int        `json:"installments,omitempty"`
	CardBrand        string     `json:"card_brand,omitempty"`
	LastFour         string     `json:"last_four,omitempty"`
	RedirectURL      string     `json:"redirect_url,omitempty"`
	PixQRCode        string     `json:"pix_qr_code,omitempty"`
	PixQRCodeBase64  string     `json:"pix_qr_code_base64,omitempty"`
	PixExpiresAt     *time.Time `json:"pix_expires_at,omitempty"`
	BoletoURL        string     `json:"boleto_url,omitempty"`
	BoletoBarcode    string     `json:"boleto_barcode,omitempty"`
}

func (d PaymentDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *PaymentDetails) Scan(src any) error {
	return scanJSON(src, d)
}

type OrderItem struct {
	ID           uuid.UUID        `json:"id"`
	OrderID      uuid.UUID        `json:"order_id"`
	ProductID    uuid.UUID        `json:"product_id"`
	ProductName  string           `json:"product_name"`
	SelectedSize string           `json:"selected_size,omitempty"`
	Quantity     int              `json:"quantity"`
	UnitPrice    decimal.Decimal  `json:"unit_price"`
	Snapshot     *ProductSnapshot `json:"product_snapshot,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

type Order struct {
	ID              uuid.UUID          `json:"id"`
	CustomerID      uuid.UUID          `json:"customer_id"`
	CustomerName    string             `json:"customer_name"`
	CustomerEmail   string             `json:"customer_email"`
	Status          OrderStatus        `json:"status"`
	PaymentStatus   PaymentStatus      `json:"payment_status"`
	PaymentMethod   PaymentMethod      `json:"payment_method"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	ShippingCost    decimal.Decimal    `json:"shipping_cost"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	Shipping        *ShippingSelection `json:"shipping,omitempty"`
	ShippingAddress ShippingAddress    `json:"shipping_address"`
	PaymentDetails  PaymentDetails     `json:"payment_details"`
	Items           []OrderItem        `json:"items"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending confirmed shipped delivered cancelled"`
}

// OrderFilter narrows admin order listings. Search matches customer name, email or order id.
type OrderFilter struct {
	Status     OrderStatus
	Search     string
	CustomerID *uuid.UUID
	Page       int
	PageSize   int
}

type OrderHistoryResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Size   int     `json:"size"`
}

type OrderStats struct {
	TotalOrders     int                 `json:"total_orders"`
	ByStatus        map[OrderStatus]int `json:"by_status"`
	ApprovedRevenue decimal.Decimal     `json:"approved_revenue"`
	PendingPayments int                 `json:"pending_payments"`
}

func scanJSON(src any, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return errors.New("unsupported json column type")
	}
}

// OnlyDigits strips every non digit character.
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}
