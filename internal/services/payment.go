package service

import (
	"context"
	"database/sql"
	"encoding/json"
	stdErrors "errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/payments"
	repository "github.com/aaravmahajanofficial/helmet-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/helmet-storefront/pkg/mercadopago"
	storestripe "github.com/aaravmahajanofficial/helmet-storefront/pkg/stripe"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sources of a payment status change.
const (
	SourceCheckout = "checkout"
	SourceWebhook  = "webhook"
	SourcePoller   = "poller"
	SourceReturn   = "return"
	SourceManual   = "manual"
)

const EventPaymentStatus = "payment.status"

// EventPublisher fans payment events out to realtime subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, event models.PaymentEvent) error
}

type PaymentService interface {
	RecordPayment(ctx context.Context, order *models.Order, result *payments.Result) (*models.Payment, error)
	ApplyStatus(ctx context.Context, orderID uuid.UUID, status models.PaymentStatus, details models.PaymentDetails, source string) (*models.Order, error)
	RefreshStatus(ctx context.Context, orderID uuid.UUID, gatewayPaymentID string, source string) (*models.PaymentStatusResponse, error)
	GetInstallments(ctx context.Context, amount decimal.Decimal, bin string) ([]models.Installment, error)
	ListCustomerPayments(ctx context.Context, customerID uuid.UUID, page, size int) ([]*models.Payment, int, error)
	HandleMercadoPagoNotification(ctx context.Context, notification mercadopago.Notification) error
	HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error
}

type paymentService struct {
	paymentRepo   repository.PaymentRepository
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	carts         CartService
	notifications NotificationService
	gateway       payments.Gateway
	stripeClient  storestripe.Client
	publisher     EventPublisher
	currency      string
}

type PaymentDeps struct {
	PaymentRepo   repository.PaymentRepository
	OrderRepo     repository.OrderRepository
	ProductRepo   repository.ProductRepository
	Carts         CartService
	Notifications NotificationService
	Gateway       payments.Gateway
	StripeClient  storestripe.Client
	Publisher     EventPublisher
	Currency      string
}

func NewPaymentService(deps PaymentDeps) PaymentService {
	currency := deps.Currency
	if currency == "" {
		currency = "BRL"
	}

	return &paymentService{
		paymentRepo:   deps.PaymentRepo,
		orderRepo:     deps.OrderRepo,
		productRepo:   deps.ProductRepo,
		carts:         deps.Carts,
		notifications: deps.Notifications,
		gateway:       deps.Gateway,
		stripeClient:  deps.StripeClient,
		publisher:     deps.Publisher,
		currency:      currency,
	}
}

// RecordPayment stores the gateway payment for an order and attaches its details to the order.
func (s *paymentService) RecordPayment(ctx context.Context, order *models.Order, result *payments.Result) (*models.Payment, error) {

	payment := &models.Payment{
		ID:               uuid.New(),
		OrderID:          order.ID,
		CustomerID:       order.CustomerID,
		Provider:         s.gateway.Provider(),
		GatewayPaymentID: result.GatewayPaymentID,
		Method:           order.PaymentMethod,
		Amount:           order.TotalAmount,
		Currency:         s.currency,
		Status:           result.Status,
		ProviderStatus:   result.Details.ProviderStatus,
	}

	if err := s.paymentRepo.CreatePayment(ctx, payment); err != nil {
		return nil, errors.DatabaseError("Failed to record payment").WithError(err)
	}

	details := result.Details
	details.Provider = payment.Provider
	details.GatewayPaymentID = result.GatewayPaymentID

	if err := s.orderRepo.UpdatePaymentState(ctx, order.ID, order.PaymentStatus, order.Status, details); err != nil {
		return nil, errors.DatabaseError("Failed to attach payment to order").WithError(err)
	}

	order.PaymentDetails = details

	return payment, nil
}

// ApplyStatus moves an order's payment to status. The first approval confirms the order, lowers stock,
// empties the customer's cart and sends the confirmation email. Repeated statuses are no-ops.
func (s *paymentService) ApplyStatus(ctx context.Context, orderID uuid.UUID, status models.PaymentStatus, details models.PaymentDetails, source string) (*models.Order, error) {

	logger := middleware.LoggerFromContext(ctx).With(slog.String("orderId", orderID.String()), slog.String("source", source))

	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, orderLookupError(err)
	}

	if order.PaymentStatus == status {
		return order, nil
	}

	if order.PaymentStatus.IsTerminal() && status == models.PaymentStatusPending {
		logger.Info("Ignoring stale pending status", slog.String("current", string(order.PaymentStatus)))
		return order, nil
	}

	previous := order.PaymentStatus
	orderStatus := nextOrderStatus(order.Status, status)
	merged := mergeDetails(order.PaymentDetails, details)

	if err := s.orderRepo.UpdatePaymentState(ctx, orderID, status, orderStatus, merged); err != nil {
		return nil, errors.DatabaseError("Failed to update payment status").WithError(err)
	}

	order.PaymentStatus = status
	order.Status = orderStatus
	order.PaymentDetails = merged

	if payment, err := s.paymentRepo.GetLatestPaymentForOrder(ctx, orderID); err == nil {
		if err := s.paymentRepo.UpdatePaymentStatus(ctx, payment.ID, status, merged.ProviderStatus); err != nil {
			logger.Warn("Payment row not updated", slog.Any("error", err))
		}
	} else if !stdErrors.Is(err, sql.ErrNoRows) {
		logger.Warn("Payment row lookup failed", slog.Any("error", err))
	}

	metrics.RecordPaymentStatus(source, string(status))

	logger.Info("Payment status changed",
		slog.String("from", string(previous)),
		slog.String("to", string(status)),
		slog.String("orderStatus", string(orderStatus)),
	)

	if status == models.PaymentStatusApproved {
		s.fulfil(ctx, logger, order)
	}

	s.publish(ctx, logger, order)

	return order, nil
}

// RefreshStatus asks the gateway for the current status and applies it.
func (s *paymentService) RefreshStatus(ctx context.Context, orderID uuid.UUID, gatewayPaymentID string, source string) (*models.PaymentStatusResponse, error) {

	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, orderLookupError(err)
	}

	if gatewayPaymentID == "" {
		gatewayPaymentID = order.PaymentDetails.GatewayPaymentID
	}

	if gatewayPaymentID == "" || order.PaymentStatus.IsTerminal() {
		return statusResponse(order, gatewayPaymentID), nil
	}

	result, err := s.gateway.GetPaymentStatus(ctx, gatewayPaymentID)
	metrics.RecordGatewayCall(s.gateway.Provider(), "get_payment_status", err)

	if err != nil {
		return nil, err
	}

	if result.Status != order.PaymentStatus {
		order, err = s.ApplyStatus(ctx, orderID, result.Status, result.Details, source)
		if err != nil {
			return nil, err
		}
	}

	return statusResponse(order, gatewayPaymentID), nil
}

func (s *paymentService) GetInstallments(ctx context.Context, amount decimal.Decimal, bin string) ([]models.Installment, error) {

	if !amount.IsPositive() {
		return nil, errors.AddValidationError("amount", "must be greater than 0")
	}

	bin = models.OnlyDigits(bin)
	if len(bin) < 6 {
		return nil, errors.AddValidationError("bin", "must have at least 6 digits")
	}

	installments, err := s.gateway.GetInstallments(ctx, amount, bin[:6])
	metrics.RecordGatewayCall(s.gateway.Provider(), "get_installments", err)

	return installments, err
}

func (s *paymentService) ListCustomerPayments(ctx context.Context, customerID uuid.UUID, page, size int) ([]*models.Payment, int, error) {

	list, total, err := s.paymentRepo.ListPaymentsOfCustomer(ctx, customerID, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch payments").WithError(err)
	}

	return list, total, nil
}

// HandleMercadoPagoNotification re-reads the payment from the gateway; the notification body is never trusted.
func (s *paymentService) HandleMercadoPagoNotification(ctx context.Context, notification mercadopago.Notification) error {

	logger := middleware.LoggerFromContext(ctx)

	if notification.Type != "" && notification.Type != "payment" {
		logger.Debug("Ignoring notification", slog.String("type", notification.Type))
		return nil
	}

	paymentID := notification.Data.ID.String()
	if paymentID == "" {
		return errors.BadRequestError("Notification without payment id")
	}

	result, err := s.gateway.GetPaymentStatus(ctx, paymentID)
	metrics.RecordGatewayCall(s.gateway.Provider(), "get_payment_status", err)

	if err != nil {
		return err
	}

	order, err := s.findOrder(ctx, result.OrderReference, paymentID)
	if err != nil {
		return err
	}

	_, err = s.ApplyStatus(ctx, order.ID, result.Status, result.Details, SourceWebhook)

	return err
}

func (s *paymentService) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) error {

	logger := middleware.LoggerFromContext(ctx)

	if s.stripeClient == nil {
		return errors.BadRequestError("Stripe webhooks are not enabled")
	}

	event, err := s.stripeClient.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return errors.BadRequestError("Webhook signature verification failed").WithError(err)
	}

	obj := event.Data.Object

	objectID, _ := obj["id"].(string)
	orderRef := stringField(obj, "client_reference_id")
	if meta, ok := obj["metadata"].(map[string]any); ok && orderRef == "" {
		orderRef, _ = meta["order_id"].(string)
	}

	var providerStatus string

	switch event.Type {
	case "payment_intent.succeeded":
		providerStatus = "approved"
	case "payment_intent.payment_failed":
		providerStatus = "rejected"
	case "payment_intent.canceled", "checkout.session.expired":
		providerStatus = "cancelled"
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		providerStatus = "pending"
		if stringField(obj, "payment_status") == "paid" {
			providerStatus = "approved"
		}
	case "checkout.session.async_payment_failed":
		providerStatus = "rejected"
	case "charge.refunded":
		providerStatus = "refunded"
		objectID = stringField(obj, "payment_intent")
	default:
		logger.Debug("Ignoring stripe event", slog.String("type", string(event.Type)))
		return nil
	}

	order, err := s.findOrder(ctx, orderRef, objectID)
	if err != nil {
		return err
	}

	details := models.PaymentDetails{ProviderStatus: providerStatus}

	_, err = s.ApplyStatus(ctx, order.ID, payments.MapStatus(providerStatus), details, SourceWebhook)

	return err
}

func (s *paymentService) findOrder(ctx context.Context, orderRef, gatewayPaymentID string) (*models.Order, error) {
	if id, err := uuid.Parse(orderRef); err == nil {
		order, err := s.orderRepo.GetOrderByID(ctx, id)
		if err == nil {
			return order, nil
		}

		if !stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
		}
	}

	if gatewayPaymentID == "" {
		return nil, errors.NotFoundError("Order not found for payment")
	}

	order, err := s.orderRepo.GetOrderByGatewayPaymentID(ctx, gatewayPaymentID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Order not found for payment").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	return order, nil
}

// fulfil runs the side effects of an approval. Each step is best effort; the payment itself already succeeded.
func (s *paymentService) fulfil(ctx context.Context, logger *slog.Logger, order *models.Order) {
	for _, item := range order.Items {
		if err := s.productRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			logger.Warn("Stock not decremented",
				slog.String("productId", item.ProductID.String()),
				slog.Int("quantity", item.Quantity),
				slog.Any("error", err),
			)
		}
	}

	if s.carts != nil {
		if err := s.carts.ClearCart(ctx, order.CustomerID); err != nil {
			logger.Warn("Cart not cleared after approval", slog.Any("error", err))
		}
	}

	if s.notifications != nil {
		if err := s.notifications.SendOrderConfirmation(ctx, order); err != nil {
			logger.Warn("Order confirmation not sent", slog.Any("error", err))
		}
	}
}

func (s *paymentService) publish(ctx context.Context, logger *slog.Logger, order *models.Order) {
	if s.publisher == nil {
		return
	}

	event := models.PaymentEvent{
		Type:          EventPaymentStatus,
		OrderID:       order.ID,
		CustomerID:    order.CustomerID,
		OrderStatus:   order.Status,
		PaymentStatus: order.PaymentStatus,
		OccurredAt:    time.Now().UTC(),
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn("Payment event not published", slog.Any("error", err))
	}
}

// nextOrderStatus only moves orders that are still waiting for payment.
func nextOrderStatus(current models.OrderStatus, payment models.PaymentStatus) models.OrderStatus {
	switch payment {
	case models.PaymentStatusApproved:
		if current == models.OrderStatusPending {
			return models.OrderStatusConfirmed
		}
	case models.PaymentStatusRejected, models.PaymentStatusCancelled:
		if current == models.OrderStatusPending {
			return models.OrderStatusCancelled
		}
	case models.PaymentStatusRefunded:
		return models.OrderStatusCancelled
	}

	return current
}

func mergeDetails(current, update models.PaymentDetails) models.PaymentDetails {
	raw, _ := json.Marshal(update)

	merged := current
	_ = json.Unmarshal(raw, &merged)

	return merged
}

func statusResponse(order *models.Order, gatewayPaymentID string) *models.PaymentStatusResponse {
	resp := &models.PaymentStatusResponse{
		OrderID:          order.ID,
		GatewayPaymentID: gatewayPaymentID,
		Status:           order.PaymentStatus,
		ProviderStatus:   order.PaymentDetails.ProviderStatus,
	}

	if exp := order.PaymentDetails.PixExpiresAt; exp != nil && !order.PaymentStatus.IsTerminal() {
		if remaining := time.Until(*exp); remaining > 0 {
			resp.SecondsRemaining = int(remaining.Seconds())
		}
	}

	return resp
}

func stringField(obj map[string]any, key string) string {
	v, _ := obj[key].(string)

	return strings.TrimSpace(v)
}
