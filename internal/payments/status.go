package payments

import (
	"strings"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/stripe/stripe-go/v81"
)

// MapStatus folds any provider status string into the order payment status. Unknown values are pending.
func MapStatus(providerStatus string) models.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(providerStatus)) {
	case "approved", "authorized":
		return models.PaymentStatusApproved
	case "rejected", "cancelled":
		return models.PaymentStatusRejected
	case "refunded", "charged_back":
		return models.PaymentStatusRefunded
	default:
		return models.PaymentStatusPending
	}
}

// CardOutcome collapses a card charge result into approved, rejected or pending.
func CardOutcome(status models.PaymentStatus) models.PaymentStatus {
	switch status {
	case models.PaymentStatusApproved:
		return models.PaymentStatusApproved
	case models.PaymentStatusRejected, models.PaymentStatusCancelled, models.PaymentStatusRefunded:
		return models.PaymentStatusRejected
	default:
		return models.PaymentStatusPending
	}
}

// stripeIntentStatus translates a PaymentIntent status into the vocabulary MapStatus understands.
func stripeIntentStatus(status stripe.PaymentIntentStatus) string {
	switch status {
	case stripe.PaymentIntentStatusSucceeded:
		return "approved"
	case stripe.PaymentIntentStatusRequiresCapture:
		return "authorized"
	case stripe.PaymentIntentStatusCanceled:
		return "cancelled"
	case stripe.PaymentIntentStatusRequiresPaymentMethod:
		return "rejected"
	default:
		return "pending"
	}
}

func stripeSessionStatus(session *stripe.CheckoutSession) string {
	switch {
	case session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid:
		return "approved"
	case session.Status == stripe.CheckoutSessionStatusExpired:
		return "cancelled"
	default:
		return "pending"
	}
}
