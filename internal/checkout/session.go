package checkout

import (
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Step string

const (
	StepAddress    Step = "address"
	StepShipping   Step = "shipping"
	StepPayment    Step = "payment"
	StepProcessing Step = "processing"
	StepSuccess    Step = "success"
)

// Session is the order draft of one customer. Only one is open per customer.
type Session struct {
	CustomerID    uuid.UUID                 `json:"customer_id"`
	Step          Step                      `json:"step"`
	Address       *models.ShippingAddress   `json:"address,omitempty"`
	Quotes        []models.ShippingOption   `json:"quotes,omitempty"`
	Shipping      *models.ShippingSelection `json:"shipping,omitempty"`
	Subtotal      decimal.Decimal           `json:"subtotal"`
	ShippingCost  decimal.Decimal           `json:"shipping_cost"`
	Total         decimal.Decimal           `json:"total"`
	OrderID       *uuid.UUID                `json:"order_id,omitempty"`
	PaymentMethod models.PaymentMethod      `json:"payment_method,omitempty"`
	PaymentStatus models.PaymentStatus      `json:"payment_status,omitempty"`
	Payment       *models.PaymentDetails    `json:"payment,omitempty"`
	Notice        string                    `json:"notice,omitempty"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

func newSession(customerID uuid.UUID, now time.Time) *Session {
	return &Session{
		CustomerID: customerID,
		Step:       StepAddress,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// previous is the step Back returns to. Only shipping and payment can go back.
func (s *Session) previous() (Step, bool) {
	switch s.Step {
	case StepShipping:
		return StepAddress, true
	case StepPayment:
		return StepShipping, true
	default:
		return "", false
	}
}

func (s *Session) selectedService() string {
	if s.Shipping == nil {
		return ""
	}

	return s.Shipping.ServiceID
}

func (s *Session) quote(serviceID string) (models.ShippingOption, bool) {
	for _, q := range s.Quotes {
		if q.ServiceID == serviceID {
			return q, true
		}
	}

	return models.ShippingOption{}, false
}

// ownsOrder reports whether the session is waiting on orderID.
func (s *Session) ownsOrder(orderID uuid.UUID) bool {
	return s.OrderID != nil && *s.OrderID == orderID
}

// restart sends the draft back to the address step after a failed payment. The address is kept for pre-fill.
func (s *Session) restart(notice string) {
	s.Step = StepAddress
	s.Quotes = nil
	s.Shipping = nil
	s.ShippingCost = decimal.Zero
	s.Total = decimal.Zero
	s.OrderID = nil
	s.PaymentMethod = ""
	s.PaymentStatus = ""
	s.Payment = nil
	s.Notice = notice
}

func (s *Session) succeed(status models.PaymentStatus) {
	s.Step = StepSuccess
	s.PaymentStatus = status
	s.Notice = ""
}
