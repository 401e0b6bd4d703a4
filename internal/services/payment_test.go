package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/payments"
	repoMocks "github.com/aaravmahajanofficial/helmet-storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/helmet-storefront/internal/services"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/helmet-storefront/pkg/mercadopago"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
)

type paymentFixture struct {
	payments      *repoMocks.MockPaymentRepository
	orders        *repoMocks.MockOrderRepository
	products      *repoMocks.MockProductRepository
	carts         *mocks.MockCartService
	notifications *mocks.MockNotificationService
	gateway       *mocks.MockGateway
	stripe        *mocks.MockStripeClient
	publisher     *mocks.MockEventPublisher
	service       service.PaymentService
}

func newPaymentFixture(t *testing.T, withStripe bool) *paymentFixture {
	f := &paymentFixture{
		payments:      repoMocks.NewMockPaymentRepository(t),
		orders:        repoMocks.NewMockOrderRepository(t),
		products:      repoMocks.NewMockProductRepository(t),
		carts:         mocks.NewMockCartService(t),
		notifications: mocks.NewMockNotificationService(t),
		gateway:       mocks.NewMockGateway(t),
		publisher:     mocks.NewMockEventPublisher(t),
	}

	f.gateway.On("Provider").Return("mercadopago").Maybe()

	deps := service.PaymentDeps{
		PaymentRepo:   f.payments,
		OrderRepo:     f.orders,
		ProductRepo:   f.products,
		Carts:         f.carts,
		Notifications: f.notifications,
		Gateway:       f.gateway,
		Publisher:     f.publisher,
	}

	if withStripe {
		f.stripe = mocks.NewMockStripeClient(t)
		deps.StripeClient = f.stripe
	}

	f.service = service.NewPaymentService(deps)

	return f
}

func pendingOrder() *models.Order {
	return &models.Order{
		ID:            uuid.New(),
		CustomerID:    uuid.New(),
		CustomerEmail: "cliente@example.com",
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		PaymentMethod: models.PaymentMethodPix,
		TotalAmount:   decimal.RequireFromString("215.00"),
		Items: []models.OrderItem{
			{ProductID: uuid.New(), Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.Zero},
		},
		PaymentDetails: models.PaymentDetails{GatewayPaymentID: "123", PixQRCode: "000201..."},
	}
}

func TestPaymentService_RecordPayment(t *testing.T) {

	ctx := context.Background()

	// Arrange
	f := newPaymentFixture(t, false)
	order := pendingOrder()
	result := &payments.Result{
		GatewayPaymentID: "987",
		Status:           models.PaymentStatusPending,
		Details:          models.PaymentDetails{ProviderStatus: "pending", PixQRCode: "qr"},
	}

	f.payments.On("CreatePayment", ctx, mock.MatchedBy(func(p *models.Payment) bool {
		return p.GatewayPaymentID == "987" && p.Amount.Equal(order.TotalAmount) && p.Currency == "BRL" && p.Provider == "mercadopago"
	})).Return(nil).Once()
	f.orders.On("UpdatePaymentState", ctx, order.ID, models.PaymentStatusPending, models.OrderStatusPending, mock.MatchedBy(func(d models.PaymentDetails) bool {
		return d.GatewayPaymentID == "987" && d.Provider == "mercadopago" && d.PixQRCode == "qr"
	})).Return(nil).Once()

	// Act
	payment, err := f.service.RecordPayment(ctx, order, result)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, order.ID, payment.OrderID)
	assert.Equal(t, "987", order.PaymentDetails.GatewayPaymentID)
}

func TestPaymentService_ApplyStatus(t *testing.T) {

	ctx := context.Background()

	t.Run("Success - Approval Confirms And Fulfils", func(t *testing.T) {

		// Arrange
		f := newPaymentFixture(t, false)
		order := pendingOrder()
		paymentID := uuid.New()

		f.orders.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()
		f.orders.On("UpdatePaymentState", ctx, order.ID, models.PaymentStatusApproved, models.OrderStatusConfirmed,
			mock.MatchedBy(func(d models.PaymentDetails) bool {
				return d.ProviderStatus == "approved" && d.PixQRCode == "000201..." && d.GatewayPaymentID == "123"
			})).Return(nil).Once()
		f.payments.On("GetLatestPaymentForOrder", ctx, order.ID).Return(&models.Payment{ID: paymentID}, nil).Once()
		f.payments.On("UpdatePaymentStatus", ctx, paymentID, models.PaymentStatusApproved, "approved").Return(nil).Once()
		f.products.On("DecrementStock", ctx, order.Items[0].ProductID, 2).Return(nil).Once()
		f.products.On("DecrementStock", ctx, order.Items[1].ProductID, 1).Return(errors.New("stock would go negative")).Once()
		f.carts.On("ClearCart", ctx, order.CustomerID).Return(nil).Once()
		f.notifications.On("SendOrderConfirmation", ctx, order).Return(nil).Once()
		f.publisher.On("Publish", ctx, mock.MatchedBy(func(e models.PaymentEvent) bool {
			return e.Type == service.EventPaymentStatus && e.OrderID == order.ID && e.CustomerID == order.CustomerID &&
				e.PaymentStatus == models.PaymentStatusApproved && e.OrderStatus == models.OrderStatusConfirmed
		})).Return(nil).Once()

		// Act
		updated, err := f.service.ApplyStatus(ctx, order.ID, models.PaymentStatusApproved,
			models.PaymentDetails{ProviderStatus: "approved"}, service.SourcePoller)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusConfirmed, updated.Status)
		assert.Equal(t, models.PaymentStatusApproved, updated.PaymentStatus)
	})

	t.Run("Success - Repeated Status Is A No-Op", func(t *testing.T) {

		// Arrange
		f := newPaymentFixture(t, false)
		order := pendingOrder()
		order.PaymentStatus = models.PaymentStatusApproved

		f.orders.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()

		// Act
		_, err := f.service.ApplyStatus(ctx, order.ID, models.PaymentStatusApproved, models.PaymentDetails{}, service.SourceWebhook)

		// Assert
		require.NoError(t, err)
		f.carts.AssertNotCalled(t, "ClearCart", mock.Anything, mock.Anything)
	})

	t.Run("Success - Late Pending After Approval Is Ignored", func(t *testing.T) {

		// Arrange
		f := newPaymentFixture(t, false)
		order := pendingOrder()
		order.PaymentStatus = models.PaymentStatusApproved
		order.Status = models.OrderStatusConfirmed

		f.orders.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()

		// Act
		updated, err := f.service.ApplyStatus(ctx, order.ID, models.PaymentStatusPending, models.PaymentDetails{}, service.SourceWebhook)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusApproved, updated.PaymentStatus)
	})

	t.Run("Success - Rejection Cancels Without Fulfilment", func(t *testing.T) {

		// Arrange
		f := newPaymentFixture(t, false)
		order := pendingOrder()

		f.orders.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()
		f.orders.On("UpdatePaymentState", ctx, order.ID, models.PaymentStatusRejected, models.OrderStatusCancelled, mock.Anything).Return(nil).Once()
		f.payments.On("GetLatestPaymentForOrder", ctx, order.ID).Return(nil, errors.New("timeout")).Once()
		f.publisher.On("Publish", ctx, mock.AnythingOfType("models.PaymentEvent")).Return(errors.New("redis down")).Once()

		// Act
		updated, err := f.service.ApplyStatus(ctx, order.ID, models.PaymentStatusRejected, models.PaymentDetails{}, service.SourceWebhook)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusCancelled, updated.Status)
		f.products.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPaymentService_RefreshStatus(t *testing.T) {

	ctx := context.Background()

	t.Run("Success - Pending PIX Reports Seconds Remaining", func(t *testing.T) {

		// Arrange
		f := newPaymentFixture(t, false)
		order := pendingOrder()
		expires := time.Now().Add(10 * time.Minute)
		order.PaymentDetails.PixExpiresAt = &expires

		f.orders.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()
		f.gateway.On("GetPaymentStatus", ctx, "123").Return(&payments.Result{GatewayPaymentID: "123", Status: models.PaymentStatusPending}, nil).Once()

		// Act
		resp, err := f.service.RefreshStatus(ctx, order.ID, "", service.SourcePoller)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPending, resp.Status)
		assert.Equal(t, "123", resp.GatewayPaymentID)
		assert.InDelta(t, 600, resp.SecondsRemaining, 2)
	})

	t.Run("Success - Terminal Order Makes No Gateway Call", func(t *testing.T) {

		// Arrange
		f := newPaymentFixture(t, false)
		order := pendingOrder()
		order.PaymentStatus = models.PaymentStatusApproved

		f.orders.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()

		// Act
		resp, err := f.service.RefreshStatus(ctx, order.ID, "", service.SourcePoller)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusApproved, resp.Status)
		f.gateway.AssertNotCalled(t, "GetPaymentStatus", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Gateway Unreachable", func(t *testing.T) {

		// Arrange
		f := newPaymentFixture(t, false)
		order := pendingOrder()

		f.orders.On("GetOrderByID", ctx, order.ID).Return(order, nil).Once()
		f.gateway.On("GetPaymentStatus", ctx, "123").Return(nil, appErrors.ConnectivityError("payment gateway is unreachable")).Once()

		// Act
		_, err := f.service.RefreshStatus(ctx, order.ID, "", service.SourcePoller)

		// Assert
		assert.Equal(t, appErrors.ErrCodeConnectivity, appErrors.ToResult(err).Code)
	})
}

func TestPaymentService_GetInstallments(t *testing.T) {

	ctx := context.Background()

	t.Run("Failure - Short Bin", func(t *testing.T) {

		// Arrange
		f := newPaymentFixture(t, false)

		// Act
		_, err := f.service.GetInstallments(ctx, decimal.NewFromInt(100), "4111")

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
	})

	t.Run("Success - Bin Is Trimmed To Six Digits", func(t *testing.T) {

		// Arrange
		f := newPaymentFixture(t, false)
		amount := decimal.NewFromInt(100)

		f.gateway.On("GetInstallments", ctx, amount, "411111").Return([]models.Installment{{Installments: 1}}, nil).Once()

		// Act
		list, err := f.service.GetInstallments(ctx, amount, "4111 1111 1111 1111")

		// Assert
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}

func TestPaymentService_HandleMercadoPagoNotification(t *testing.T) {

	ctx := context.Background()

	t.Run("Success - Status Re-Read From Gateway", func(t *testing.T) {

		// Arrange
		f := newPaymentFixture(t, false)
		order := pendingOrder()

		var n mercadopago.Notification
		n.Type = "payment"
		n.Data.ID = json.Number("123")

		f.gateway.On("GetPaymentStatus", ctx, "123").Return(&payments.Result{
			GatewayPaymentID: "123",
			OrderReference:   order.ID.String(),
			Status:           models.PaymentStatusRejected,
			Details:          models.PaymentDetails{ProviderStatus: "rejected"},
		}, nil).Once()
		f.orders.On("GetOrderByID", ctx, order.ID).Return(order, nil).Twice()
		f.orders.On("UpdatePaymentState", ctx, order.ID, models.PaymentStatusRejected, models.OrderStatusCancelled, mock.Anything).Return(nil).Once()
		f.payments.On("GetLatestPaymentForOrder", ctx, order.ID).Return(&models.Payment{ID: uuid.New()}, nil).Once()
		f.payments.On("UpdatePaymentStatus", ctx, mock.Anything, models.PaymentStatusRejected, "rejected").Return(nil).Once()
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

		// Act
		err := f.service.HandleMercadoPagoNotification(ctx, n)

		// Assert
		assert.NoError(t, err)
	})

	t.Run("Success - Other Topics Ignored", func(t *testing.T) {

		// Arrange
		f := newPaymentFixture(t, false)

		var n mercadopago.Notification
		n.Type = "merchant_order"

		// Act
		err := f.service.HandleMercadoPagoNotification(ctx, n)

		// Assert
		assert.NoError(t, err)
		f.gateway.AssertNotCalled(t, "GetPaymentStatus", mock.Anything, mock.Anything)
	})
}

func TestPaymentService_HandleStripeWebhook(t *testing.T) {

	ctx := context.Background()

	t.Run("Success - Intent Succeeded Approves Order", func(t *testing.T) {

		// Arrange
		f := newPaymentFixture(t, true)
		order := pendingOrder()
		order.Items = nil

		event := stripe.Event{
			Type: "payment_intent.succeeded",
			Data: &stripe.EventData{Object: map[string]any{
				"id":       "pi_123",
				"metadata": map[string]any{"order_id": order.ID.String()},
			}},
		}

		f.stripe.On("VerifyWebhookSignature", []byte("{}"), "t=1,v1=abc").Return(event, nil).Once()
		f.orders.On("GetOrderByID", ctx, order.ID).Return(order, nil).Twice()
		f.orders.On("UpdatePaymentState", ctx, order.ID, models.PaymentStatusApproved, models.OrderStatusConfirmed, mock.Anything).Return(nil).Once()
		f.payments.On("GetLatestPaymentForOrder", ctx, order.ID).Return(&models.Payment{ID: uuid.New()}, nil).Once()
		f.payments.On("UpdatePaymentStatus", ctx, mock.Anything, models.PaymentStatusApproved, "approved").Return(nil).Once()
		f.carts.On("ClearCart", ctx, order.CustomerID).Return(nil).Once()
		f.notifications.On("SendOrderConfirmation", ctx, order).Return(nil).Once()
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

		// Act
		err := f.service.HandleStripeWebhook(ctx, []byte("{}"), "t=1,v1=abc")

		// Assert
		assert.NoError(t, err)
	})

	t.Run("Failure - Bad Signature", func(t *testing.T) {

		// Arrange
		f := newPaymentFixture(t, true)

		f.stripe.On("VerifyWebhookSignature", []byte("{}"), "bogus").Return(stripe.Event{}, errors.New("invalid signature")).Once()

		// Act
		err := f.service.HandleStripeWebhook(ctx, []byte("{}"), "bogus")

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
	})

	t.Run("Failure - Stripe Not Configured", func(t *testing.T) {

		// Arrange
		f := newPaymentFixture(t, false)

		// Act
		err := f.service.HandleStripeWebhook(ctx, []byte("{}"), "sig")

		// Assert
		assert.Error(t, err)
	})
}
