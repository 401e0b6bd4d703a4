package checkout

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/payments"
	repository "github.com/aaravmahajanofficial/helmet-storefront/internal/repositories"
	service "github.com/aaravmahajanofficial/helmet-storefront/internal/services"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	noticePaymentFailed = "Payment was not approved. Please review your details and try again."
	noticePixExpired    = "The PIX code expired before payment was confirmed."
	noticeNoShipping    = "No shipping service is available for this postal code."

	stockLookupLimit = 8
)

// ReturnRequest is the query string the hosted checkout redirects back with.
type ReturnRequest struct {
	OrderID   uuid.UUID
	Outcome   string
	PaymentID string
}

// Service drives a customer through address, shipping, payment and the payment outcome.
// It also implements service.EventPublisher so gateway updates settle waiting sessions.
type Service interface {
	Start(ctx context.Context, customerID uuid.UUID) (*Session, error)
	Get(ctx context.Context, customerID uuid.UUID) (*Session, error)
	SubmitAddress(ctx context.Context, customerID uuid.UUID, address models.ShippingAddress) (*Session, error)
	SelectShipping(ctx context.Context, customerID uuid.UUID, serviceID string) (*Session, error)
	Back(ctx context.Context, customerID uuid.UUID) (*Session, error)
	SubmitPayment(ctx context.Context, customerID uuid.UUID, req *models.SubmitPaymentRequest) (*Session, error)
	HandleReturn(ctx context.Context, customerID uuid.UUID, ret ReturnRequest) (*Session, error)
	RefreshPayment(ctx context.Context, customerID uuid.UUID) (*models.PaymentStatusResponse, error)
	Close(ctx context.Context, customerID uuid.UUID) error
	Publish(ctx context.Context, event models.PaymentEvent) error
}

type Deps struct {
	Store     Store
	Carts     service.CartService
	Products  repository.ProductRepository
	Shipping  service.ShippingService
	Orders    service.OrderService
	Payments  service.PaymentService
	Gateway   payments.Gateway
	Pollers   *payments.Registry
	Validator *validator.Validate
	Now       func() time.Time
}

type orchestrator struct {
	store     Store
	carts     service.CartService
	products  repository.ProductRepository
	shipping  service.ShippingService
	orders    service.OrderService
	payments  service.PaymentService
	gateway   payments.Gateway
	pollers   *payments.Registry
	validator *validator.Validate
	now       func() time.Time
}

func NewService(deps Deps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &orchestrator{
		store:     deps.Store,
		carts:     deps.Carts,
		products:  deps.Products,
		shipping:  deps.Shipping,
		orders:    deps.Orders,
		payments:  deps.Payments,
		gateway:   deps.Gateway,
		pollers:   deps.Pollers,
		validator: deps.Validator,
		now:       now,
	}
}

// Start opens a draft for a non-empty cart. A draft waiting on a payment is returned untouched.
func (o *orchestrator) Start(ctx context.Context, customerID uuid.UUID) (*Session, error) {

	existing, err := o.load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if existing != nil && existing.Step == StepProcessing {
		return existing, nil
	}

	cart, err := o.carts.GetCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if cart.IsEmpty() {
		return nil, errors.BadRequestError("Your cart is empty")
	}

	session := newSession(customerID, o.now().UTC())
	session.Subtotal = cart.Subtotal()
	session.Total = session.Subtotal

	if existing != nil && existing.Address != nil {
		session.Address = existing.Address
	}

	if err := o.save(ctx, session); err != nil {
		return nil, err
	}

	middleware.LoggerFromContext(ctx).Info("Checkout started", slog.String("customerId", customerID.String()))

	return session, nil
}

func (o *orchestrator) Get(ctx context.Context, customerID uuid.UUID) (*Session, error) {
	return o.mustLoad(ctx, customerID)
}

// SubmitAddress validates the form, stores it and quotes shipping for the cart.
func (o *orchestrator) SubmitAddress(ctx context.Context, customerID uuid.UUID, address models.ShippingAddress) (*Session, error) {

	logger := middleware.LoggerFromContext(ctx)

	session, err := o.mustLoad(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if session.Step != StepAddress {
		return nil, errors.StepConflictError(fmt.Sprintf("Address cannot be submitted during the %s step", session.Step))
	}

	address.Normalize()

	if err := utils.ValidateStruct(o.validator, address); err != nil {
		return nil, err
	}

	cart, err := o.carts.GetCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if cart.IsEmpty() {
		return nil, errors.BadRequestError("Your cart is empty")
	}

	session.Address = &address
	session.Subtotal = cart.Subtotal()
	session.Notice = ""

	quotes, err := o.shipping.QuoteCart(ctx, address.PostalCode, cart)
	if err != nil {
		appErr, ok := errors.IsAppError(err)
		if !ok || appErr.Code != errors.ErrCodeNoShipping {
			// keep the typed address so the form is not lost
			if err := o.save(ctx, session); err != nil {
				logger.Warn("Checkout address not kept", slog.Any("error", err))
			}

			return nil, err
		}

		logger.Info("No shipping service for postal code", slog.String("postalCode", address.PostalCode))

		quotes = nil
		session.Notice = noticeNoShipping
	}

	session.Quotes = quotes
	session.Shipping = nil
	session.ShippingCost = decimal.Zero
	session.Total = session.Subtotal
	session.Step = StepShipping

	if err := o.save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// SelectShipping picks one of the quoted services. Picking the current one again changes nothing.
func (o *orchestrator) SelectShipping(ctx context.Context, customerID uuid.UUID, serviceID string) (*Session, error) {

	session, err := o.mustLoad(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if session.Step != StepShipping && session.Step != StepPayment {
		return nil, errors.StepConflictError(fmt.Sprintf("Shipping cannot be selected during the %s step", session.Step))
	}

	if len(session.Quotes) == 0 {
		return nil, errors.NoShippingServiceError(noticeNoShipping)
	}

	if session.Step == StepPayment && session.selectedService() == serviceID {
		return session, nil
	}

	option, ok := session.quote(serviceID)
	if !ok {
		return nil, errors.AddValidationError("service_id", "is not one of the quoted services")
	}

	selection := option.Selection()
	session.Shipping = &selection
	session.ShippingCost = option.Price
	session.Total = session.Subtotal.Add(option.Price)
	session.Step = StepPayment

	if err := o.save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (o *orchestrator) Back(ctx context.Context, customerID uuid.UUID) (*Session, error) {

	session, err := o.mustLoad(ctx, customerID)
	if err != nil {
		return nil, err
	}

	prev, ok := session.previous()
	if !ok {
		return nil, errors.StepConflictError(fmt.Sprintf("Cannot go back from the %s step", session.Step))
	}

	session.Step = prev

	if err := o.save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// SubmitPayment creates the order for exactly subtotal plus shipping and charges it.
// Only one submission per customer runs at a time.
func (o *orchestrator) SubmitPayment(ctx context.Context, customerID uuid.UUID, req *models.SubmitPaymentRequest) (*Session, error) {

	logger := middleware.LoggerFromContext(ctx).With(slog.String("customerId", customerID.String()))

	acquired, err := o.store.AcquireSubmit(ctx, customerID)
	if err != nil {
		return nil, errors.ThirdPartyError("Checkout is temporarily unavailable").WithError(err)
	}

	if !acquired {
		return nil, errors.InFlightError("A payment is already being processed")
	}

	defer func() {
		if err := o.store.ReleaseSubmit(context.WithoutCancel(ctx), customerID); err != nil {
			logger.Warn("Submit lock not released", slog.Any("error", err))
		}
	}()

	// read under the lock: a submission that finished while we waited has already moved the draft on
	session, err := o.mustLoad(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if session.Step != StepPayment {
		return nil, errors.StepConflictError(fmt.Sprintf("Payment cannot be submitted during the %s step", session.Step))
	}

	if err := o.validatePayment(req); err != nil {
		return nil, err
	}

	cart, err := o.carts.GetCart(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if cart.IsEmpty() {
		return nil, errors.BadRequestError("Your cart is empty")
	}

	if session.Shipping == nil || session.Address == nil {
		return nil, errors.StepConflictError("Address and shipping must be completed first")
	}

	products, err := o.checkStock(ctx, cart)
	if err != nil {
		return nil, err
	}

	order := o.buildOrder(session, cart, products, req.Method)

	if err := o.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	logger = logger.With(slog.String("orderId", order.ID.String()), slog.String("method", string(req.Method)))

	session.OrderID = &order.ID
	session.PaymentMethod = req.Method
	session.PaymentStatus = models.PaymentStatusPending
	session.Subtotal = order.Subtotal
	session.ShippingCost = order.ShippingCost
	session.Total = order.TotalAmount
	session.Step = StepProcessing

	if err := o.save(ctx, session); err != nil {
		return nil, err
	}

	result, err := o.charge(ctx, order, req)
	if err != nil {
		logger.Error("Gateway charge failed", slog.Any("error", err))
		metrics.RecordCheckout(string(req.Method), "error")

		o.abandon(ctx, logger, session, order.ID, errors.ToResult(err).Message)

		return nil, err
	}

	if _, err := o.payments.RecordPayment(ctx, order, result); err != nil {
		logger.Error("Payment not recorded", slog.Any("error", err))
	}

	details := result.Details
	session.Payment = &details

	switch req.Method {
	case models.PaymentMethodCard:
		return o.settleCard(ctx, logger, session, order, result)

	case models.PaymentMethodPix:
		// watched only once the draft below is stored, so an early approval is not overwritten

	case models.PaymentMethodBoleto:
		// settles days later through the webhook; the customer leaves with the slip
		if err := o.carts.ClearCart(ctx, customerID); err != nil {
			logger.Warn("Cart not cleared after boleto", slog.Any("error", err))
		}

		session.succeed(models.PaymentStatusPending)
	}

	metrics.RecordCheckout(string(req.Method), string(session.Step))

	if err := o.save(ctx, session); err != nil {
		return nil, err
	}

	if req.Method == models.PaymentMethodPix {
		o.watchPix(ctx, logger, session, order.ID)
	}

	logger.Info("Payment submitted", slog.String("step", string(session.Step)))

	return session, nil
}

func (o *orchestrator) validatePayment(req *models.SubmitPaymentRequest) error {
	if req == nil {
		return errors.BadRequestError("Payment details are required")
	}

	if err := utils.ValidateStruct(o.validator, req); err != nil {
		return err
	}

	if req.Method == models.PaymentMethodCard {
		return payments.ValidateCard(req.Card, o.now())
	}

	return nil
}

// checkStock loads every product in the cart concurrently and rejects the submission when any of
// them is gone, inactive or short on stock. The error names every offending product.
func (o *orchestrator) checkStock(ctx context.Context, cart *models.Cart) (map[uuid.UUID]*models.Product, error) {

	wanted := make(map[uuid.UUID]int)
	names := make(map[uuid.UUID]string)
	var ids []uuid.UUID

	for _, item := range cart.Items {
		if _, seen := wanted[item.ProductID]; !seen {
			ids = append(ids, item.ProductID)
			names[item.ProductID] = item.ProductName
		}

		wanted[item.ProductID] += item.Quantity
	}

	found := make([]*models.Product, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(stockLookupLimit)

	for i, id := range ids {
		g.Go(func() error {
			product, err := o.products.GetProductByID(gctx, id)
			if err != nil {
				if stdErrors.Is(err, sql.ErrNoRows) {
					return nil
				}

				return err
			}

			found[i] = product

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.DatabaseError("Failed to verify stock").WithError(err)
	}

	products := make(map[uuid.UUID]*models.Product, len(ids))
	var offending []string

	for i, id := range ids {
		product := found[i]
		if product == nil || !product.Active || product.StockQuantity < wanted[id] {
			offending = append(offending, names[id])

			continue
		}

		products[id] = product
	}

	if len(offending) > 0 {
		return nil, errors.StockConflictError("Some items are no longer available in the requested quantity: " + strings.Join(offending, ", "))
	}

	return products, nil
}

func (o *orchestrator) buildOrder(session *Session, cart *models.Cart, products map[uuid.UUID]*models.Product, method models.PaymentMethod) *models.Order {

	orderID := uuid.New()
	items := make([]models.OrderItem, 0, len(cart.Items))

	for _, item := range cart.Items {
		line := models.OrderItem{
			ID:           uuid.New(),
			OrderID:      orderID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			SelectedSize: item.SelectedSize,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
		}

		if product, ok := products[item.ProductID]; ok {
			snapshot := models.NewProductSnapshot(product, item.SelectedSize)
			snapshot.Price = item.UnitPrice
			line.Snapshot = &snapshot
		}

		items = append(items, line)
	}

	subtotal := cart.Subtotal()
	shippingCost := session.Shipping.Price
	selection := *session.Shipping

	return &models.Order{
		ID:              orderID,
		CustomerID:      session.CustomerID,
		CustomerName:    session.Address.Name,
		CustomerEmail:   session.Address.Email,
		PaymentMethod:   method,
		Subtotal:        subtotal,
		ShippingCost:    shippingCost,
		TotalAmount:     subtotal.Add(shippingCost),
		Shipping:        &selection,
		ShippingAddress: *session.Address,
		Items:           items,
	}
}

func (o *orchestrator) charge(ctx context.Context, order *models.Order, req *models.SubmitPaymentRequest) (*payments.Result, error) {

	payer := payments.Payer{
		Name:           order.CustomerName,
		Email:          order.CustomerEmail,
		DocumentType:   req.DocumentType,
		DocumentNumber: models.OnlyDigits(req.DocumentNumber),
		Address:        order.ShippingAddress,
	}

	if req.Method == models.PaymentMethodRedirect {
		return o.gateway.CreatePreference(ctx, payments.CheckoutRequest{
			OrderID:        order.ID,
			Items:          order.Items,
			Shipping:       order.Shipping,
			Total:          order.TotalAmount,
			Payer:          payer,
			IdempotencyKey: order.ID.String(),
		})
	}

	charge := payments.ChargeRequest{
		OrderID:        order.ID,
		Amount:         order.TotalAmount,
		Description:    "Pedido " + shortID(order.ID),
		Payer:          payer,
		Card:           req.Card,
		IdempotencyKey: order.ID.String(),
	}

	switch req.Method {
	case models.PaymentMethodCard:
		return o.gateway.CreateCardPayment(ctx, charge)
	case models.PaymentMethodPix:
		return o.gateway.CreatePixPayment(ctx, charge)
	case models.PaymentMethodBoleto:
		return o.gateway.CreateBoletoPayment(ctx, charge)
	default:
		return nil, errors.AddValidationError("method", "is not supported")
	}
}

func (o *orchestrator) settleCard(ctx context.Context, logger *slog.Logger, session *Session, order *models.Order, result *payments.Result) (*Session, error) {

	outcome := payments.CardOutcome(result.Status)
	metrics.RecordCheckout(string(models.PaymentMethodCard), string(outcome))

	switch outcome {
	case models.PaymentStatusApproved:
		if _, err := o.payments.ApplyStatus(ctx, order.ID, outcome, result.Details, service.SourceCheckout); err != nil {
			logger.Error("Approved card payment not applied", slog.Any("error", err))
		}

		if err := o.carts.ClearCart(ctx, session.CustomerID); err != nil {
			logger.Warn("Cart not cleared after approved card", slog.Any("error", err))
		}

		session.succeed(outcome)

	case models.PaymentStatusRejected:
		o.abandon(ctx, logger, session, order.ID, noticePaymentFailed)

		return nil, errors.PaymentRejectedError(noticePaymentFailed).WithDetail(result.Details.StatusDetail)

	default:
		// in review at the issuer; the webhook decides later
		if err := o.carts.ClearCart(ctx, session.CustomerID); err != nil {
			logger.Warn("Cart not cleared after pending card", slog.Any("error", err))
		}

		session.succeed(models.PaymentStatusPending)
	}

	if err := o.save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// watchPix polls the charge until the gateway settles it or the QR code expires.
func (o *orchestrator) watchPix(ctx context.Context, logger *slog.Logger, session *Session, orderID uuid.UUID) {

	if o.pollers == nil {
		return
	}

	customerID := session.CustomerID

	check := func(ctx context.Context) (models.PaymentStatus, error) {
		resp, err := o.payments.RefreshStatus(ctx, orderID, "", service.SourcePoller)
		if err != nil {
			return models.PaymentStatusPending, err
		}

		return resp.Status, nil
	}

	onUpdate := func(update payments.Update) {
		if !update.Final {
			return
		}

		metrics.SetActivePixPollers(o.pollers.Len())

		if update.Reason != payments.StopExpired && update.Reason != payments.StopMaxAttempts {
			return
		}

		bg, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := o.payments.ApplyStatus(bg, orderID, models.PaymentStatusCancelled, models.PaymentDetails{StatusDetail: "expired"}, service.SourcePoller); err != nil {
			slog.Warn("Expired PIX not cancelled", slog.String("orderId", orderID.String()), slog.Any("error", err))
		}

		o.settle(bg, customerID, orderID, models.PaymentStatusCancelled, noticePixExpired)
	}

	if _, err := o.pollers.Start(orderID.String(), check, onUpdate); err != nil {
		logger.Warn("PIX poller not started", slog.Any("error", err))

		return
	}

	metrics.SetActivePixPollers(o.pollers.Len())
}

// HandleReturn resolves a hosted checkout once the customer is sent back.
func (o *orchestrator) HandleReturn(ctx context.Context, customerID uuid.UUID, ret ReturnRequest) (*Session, error) {

	logger := middleware.LoggerFromContext(ctx).With(slog.String("orderId", ret.OrderID.String()), slog.String("outcome", ret.Outcome))

	session, err := o.mustLoad(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if !session.ownsOrder(ret.OrderID) {
		return nil, errors.NotFoundError("No checkout is waiting for this order")
	}

	if session.Step != StepProcessing {
		return session, nil
	}

	status := models.PaymentStatusPending

	switch {
	case ret.Outcome == "failure":
		status = models.PaymentStatusRejected

		if _, err := o.payments.ApplyStatus(ctx, ret.OrderID, status, models.PaymentDetails{}, service.SourceReturn); err != nil {
			return nil, err
		}

	default:
		// the outcome in the URL is never trusted for approval; the gateway is asked instead
		resp, err := o.payments.RefreshStatus(ctx, ret.OrderID, ret.PaymentID, service.SourceReturn)
		if err != nil {
			logger.Warn("Returned payment not verified, leaving it pending", slog.Any("error", err))
		} else {
			status = resp.Status
		}
	}

	logger.Info("Hosted checkout returned", slog.String("status", string(status)))

	// reload: applying a status publishes an event that may already have moved the session
	if session, err = o.mustLoad(ctx, customerID); err != nil {
		return nil, err
	}

	if session.Step == StepProcessing {
		o.resolve(session, status, noticePaymentFailed)

		if status == models.PaymentStatusPending {
			if err := o.carts.ClearCart(ctx, customerID); err != nil {
				logger.Warn("Cart not cleared after pending return", slog.Any("error", err))
			}

			session.succeed(models.PaymentStatusPending)
		}

		if err := o.save(ctx, session); err != nil {
			return nil, err
		}
	}

	return session, nil
}

// RefreshPayment re-reads the payment the session is waiting on.
func (o *orchestrator) RefreshPayment(ctx context.Context, customerID uuid.UUID) (*models.PaymentStatusResponse, error) {

	session, err := o.mustLoad(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if session.OrderID == nil {
		return nil, errors.StepConflictError("No payment has been submitted")
	}

	resp, err := o.payments.RefreshStatus(ctx, *session.OrderID, "", service.SourcePoller)
	if err != nil {
		return nil, err
	}

	if o.pollers != nil {
		if poller, ok := o.pollers.Get(session.OrderID.String()); ok {
			resp.SecondsRemaining = poller.Snapshot().SecondsRemaining
		}
	}

	return resp, nil
}

// Close discards the draft. A draft waiting on a payment cannot be closed.
func (o *orchestrator) Close(ctx context.Context, customerID uuid.UUID) error {

	session, err := o.load(ctx, customerID)
	if err != nil {
		return err
	}

	if session == nil {
		return nil
	}

	if session.Step == StepProcessing {
		return errors.StepConflictError("Checkout cannot be closed while a payment is processing")
	}

	if err := o.store.Delete(ctx, customerID); err != nil {
		return errors.ThirdPartyError("Failed to close checkout").WithError(err)
	}

	return nil
}

// Publish settles the session waiting on the event's order, if any.
func (o *orchestrator) Publish(ctx context.Context, event models.PaymentEvent) error {

	if !event.PaymentStatus.IsTerminal() {
		return nil
	}

	// the event may come from the poller's own check, whose context dies with Stop
	o.settle(context.WithoutCancel(ctx), event.CustomerID, event.OrderID, event.PaymentStatus, noticePaymentFailed)

	if o.pollers != nil {
		o.pollers.Stop(event.OrderID.String())
	}

	return nil
}

func (o *orchestrator) settle(ctx context.Context, customerID, orderID uuid.UUID, status models.PaymentStatus, notice string) {

	logger := middleware.LoggerFromContext(ctx).With(slog.String("orderId", orderID.String()))

	session, err := o.load(ctx, customerID)
	if err != nil {
		logger.Warn("Checkout session not loaded for settlement", slog.Any("error", err))
		return
	}

	if session == nil {
		return
	}

	if !session.ownsOrder(orderID) || session.Step != StepProcessing {
		return
	}

	o.resolve(session, status, notice)

	if err := o.save(ctx, session); err != nil {
		logger.Warn("Checkout session not settled", slog.Any("error", err))
	}
}

// resolve applies a terminal payment status to a processing session.
func (o *orchestrator) resolve(session *Session, status models.PaymentStatus, notice string) {
	switch status {
	case models.PaymentStatusApproved:
		session.succeed(status)
	case models.PaymentStatusPending:
	default:
		session.restart(notice)
	}
}

// abandon cancels the order of a failed attempt and sends the draft back to the address step.
func (o *orchestrator) abandon(ctx context.Context, logger *slog.Logger, session *Session, orderID uuid.UUID, notice string) {

	ctx = context.WithoutCancel(ctx)

	if _, err := o.payments.ApplyStatus(ctx, orderID, models.PaymentStatusRejected, models.PaymentDetails{}, service.SourceCheckout); err != nil {
		logger.Warn("Failed order not cancelled", slog.Any("error", err))
	}

	session.restart(notice)

	if err := o.save(ctx, session); err != nil {
		logger.Warn("Checkout session not reset", slog.Any("error", err))
	}
}

func (o *orchestrator) load(ctx context.Context, customerID uuid.UUID) (*Session, error) {
	session, found, err := o.store.Load(ctx, customerID)
	if err != nil {
		return nil, errors.ThirdPartyError("Checkout is temporarily unavailable").WithError(err)
	}

	if !found {
		return nil, nil
	}

	return session, nil
}

func (o *orchestrator) mustLoad(ctx context.Context, customerID uuid.UUID) (*Session, error) {
	session, err := o.load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if session == nil {
		return nil, errors.NotFoundError("No checkout in progress")
	}

	return session, nil
}

func (o *orchestrator) save(ctx context.Context, session *Session) error {
	if err := o.store.Save(ctx, session); err != nil {
		return errors.ThirdPartyError("Failed to save checkout").WithError(err)
	}

	return nil
}

func shortID(id uuid.UUID) string {
	return strings.ToUpper(id.String()[:8])
}
