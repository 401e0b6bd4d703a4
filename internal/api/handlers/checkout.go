package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/checkout"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	checkoutService checkout.Service
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: utils.NewValidator()}
}

// step is the shape shared by every checkout step handler: it runs one orchestrator call for the
// authenticated customer and answers with the resulting session.
func (h *CheckoutHandler) step(name string, status int, run func(w http.ResponseWriter, r *http.Request, customerID uuid.UUID) (*checkout.Session, bool, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized checkout attempt", slog.String("step", name))
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		logger = logger.With(slog.String("userID", claims.UserID.String()), slog.String("step", name))

		session, handled, err := run(w, r, claims.UserID)
		if handled {
			return
		}

		if err != nil {
			logger.Warn("Checkout step failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Debug("Checkout step done", slog.String("checkoutStep", string(session.Step)))
		response.Success(w, status, session)
	}
}

// Start godoc
//
//	@Summary		Start checkout
//	@Description	Opens a checkout for a non-empty cart. A checkout already waiting on a payment is returned unchanged.
//	@Tags			Checkout
//	@Produce		json
//	@Success		201	{object}	checkout.Session		"Checkout at the address step"
//	@Failure		400	{object}	response.ErrorResponse	"Empty cart"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/checkout [post]
func (h *CheckoutHandler) Start() http.HandlerFunc {
	return h.step("start", http.StatusCreated, func(w http.ResponseWriter, r *http.Request, customerID uuid.UUID) (*checkout.Session, bool, error) {
		session, err := h.checkoutService.Start(r.Context(), customerID)
		return session, false, err
	})
}

// Get godoc
//
//	@Summary	Get the current checkout
//	@Tags		Checkout
//	@Produce	json
//	@Success	200	{object}	checkout.Session		"Checkout"
//	@Failure	404	{object}	response.ErrorResponse	"No checkout in progress"
//	@Security	BearerAuth
//	@Router		/checkout [get]
func (h *CheckoutHandler) Get() http.HandlerFunc {
	return h.step("get", http.StatusOK, func(w http.ResponseWriter, r *http.Request, customerID uuid.UUID) (*checkout.Session, bool, error) {
		session, err := h.checkoutService.Get(r.Context(), customerID)
		return session, false, err
	})
}

// SubmitAddress godoc
//
//	@Summary		Submit the delivery address
//	@Description	Validates the address, then quotes shipping for the cart. Every failing field is reported.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			address	body		models.ShippingAddress	true	"Delivery address"
//	@Success		200		{object}	checkout.Session		"Checkout at the shipping step"
//	@Failure		400		{object}	response.ErrorResponse	"Field errors"
//	@Failure		409		{object}	response.ErrorResponse	"Not at the address step"
//	@Failure		502		{object}	response.ErrorResponse	"Shipping provider error"
//	@Security		BearerAuth
//	@Router			/checkout/address [put]
func (h *CheckoutHandler) SubmitAddress() http.HandlerFunc {
	return h.step("address", http.StatusOK, func(w http.ResponseWriter, r *http.Request, customerID uuid.UUID) (*checkout.Session, bool, error) {
		var address models.ShippingAddress
		if err := utils.DecodeJSONBody(r, &address); err != nil {
			response.Error(w, err)
			return nil, true, nil
		}

		// validation runs after normalization inside the orchestrator
		session, err := h.checkoutService.SubmitAddress(r.Context(), customerID, address)
		return session, false, err
	})
}

// SelectShipping godoc
//
//	@Summary		Select a shipping service
//	@Description	The service must be one of the quotes of the current checkout. Selecting the current service again changes nothing.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			shipping	body		models.SelectShippingRequest	true	"Quoted service"
//	@Success		200			{object}	checkout.Session				"Checkout at the payment step"
//	@Failure		400			{object}	response.ErrorResponse			"Unknown service"
//	@Failure		409			{object}	response.ErrorResponse			"Not at the shipping or payment step"
//	@Failure		422			{object}	response.ErrorResponse			"No shipping service available"
//	@Security		BearerAuth
//	@Router			/checkout/shipping [put]
func (h *CheckoutHandler) SelectShipping() http.HandlerFunc {
	return h.step("shipping", http.StatusOK, func(w http.ResponseWriter, r *http.Request, customerID uuid.UUID) (*checkout.Session, bool, error) {
		var req models.SelectShippingRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return nil, true, nil
		}

		session, err := h.checkoutService.SelectShipping(r.Context(), customerID, req.ServiceID)
		return session, false, err
	})
}

// Back godoc
//
//	@Summary	Go back one step
//	@Tags		Checkout
//	@Produce	json
//	@Success	200	{object}	checkout.Session		"Checkout one step back"
//	@Failure	409	{object}	response.ErrorResponse	"No previous step"
//	@Security	BearerAuth
//	@Router		/checkout/back [post]
func (h *CheckoutHandler) Back() http.HandlerFunc {
	return h.step("back", http.StatusOK, func(w http.ResponseWriter, r *http.Request, customerID uuid.UUID) (*checkout.Session, bool, error) {
		session, err := h.checkoutService.Back(r.Context(), customerID)
		return session, false, err
	})
}

// SubmitPayment godoc
//
//	@Summary		Pay
//	@Description	Checks stock, creates the order and charges subtotal plus shipping. Card results settle immediately,
//	@Description	PIX and hosted checkout leave the checkout processing until the gateway confirms.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			payment	body		models.SubmitPaymentRequest	true	"Method and method details"
//	@Success		200		{object}	checkout.Session			"Checkout after the charge"
//	@Failure		400		{object}	response.ErrorResponse		"Field errors"
//	@Failure		402		{object}	response.ErrorResponse		"Card declined"
//	@Failure		409		{object}	response.ErrorResponse		"Stock conflict, wrong step or a payment already in flight"
//	@Failure		502		{object}	response.ErrorResponse		"Gateway error"
//	@Failure		503		{object}	response.ErrorResponse		"Gateway unreachable"
//	@Security		BearerAuth
//	@Router			/checkout/payment [post]
func (h *CheckoutHandler) SubmitPayment() http.HandlerFunc {
	return h.step("payment", http.StatusOK, func(w http.ResponseWriter, r *http.Request, customerID uuid.UUID) (*checkout.Session, bool, error) {
		var req models.SubmitPaymentRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, err)
			return nil, true, nil
		}

		session, err := h.checkoutService.SubmitPayment(r.Context(), customerID, &req)
		return session, false, err
	})
}

// Return godoc
//
//	@Summary		Hosted checkout return
//	@Description	Forwarded by the client after the gateway redirects back. Approval is always confirmed with the gateway.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			return	body		models.CheckoutReturnRequest	true	"Query parameters of the return URL"
//	@Success		200		{object}	checkout.Session				"Settled checkout"
//	@Failure		404		{object}	response.ErrorResponse			"Order does not belong to this checkout"
//	@Security		BearerAuth
//	@Router			/checkout/return [post]
func (h *CheckoutHandler) Return() http.HandlerFunc {
	return h.step("return", http.StatusOK, func(w http.ResponseWriter, r *http.Request, customerID uuid.UUID) (*checkout.Session, bool, error) {
		var req models.CheckoutReturnRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return nil, true, nil
		}

		session, err := h.checkoutService.HandleReturn(r.Context(), customerID, checkout.ReturnRequest{
			OrderID:   req.OrderID,
			Outcome:   req.Status,
			PaymentID: req.PaymentID,
		})
		return session, false, err
	})
}

// PaymentStatus godoc
//
//	@Summary		Check the payment now
//	@Description	Asks the gateway for the current status of the checkout's payment. Used by the PIX screen.
//	@Tags			Checkout
//	@Produce		json
//	@Success		200	{object}	models.PaymentStatusResponse	"Status and remaining PIX validity"
//	@Failure		404	{object}	response.ErrorResponse			"No payment to check"
//	@Security		BearerAuth
//	@Router			/checkout/payment/status [get]
func (h *CheckoutHandler) PaymentStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		status, err := h.checkoutService.RefreshPayment(r.Context(), claims.UserID)
		if err != nil {
			logger.Warn("Payment status check failed", slog.String("userID", claims.UserID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, status)
	}
}

// Close godoc
//
//	@Summary	Discard the checkout
//	@Tags		Checkout
//	@Produce	json
//	@Success	200	{object}	map[string]bool
//	@Failure	409	{object}	response.ErrorResponse	"A payment is being processed"
//	@Security	BearerAuth
//	@Router		/checkout [delete]
func (h *CheckoutHandler) Close() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		if err := h.checkoutService.Close(r.Context(), claims.UserID); err != nil {
			logger.Warn("Checkout not closed", slog.String("userID", claims.UserID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"closed": true})
	}
}
