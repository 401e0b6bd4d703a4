package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	service "github.com/aaravmahajanofficial/helmet-storefront/internal/services"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils/response"
	"github.com/aaravmahajanofficial/helmet-storefront/pkg/mercadopago"
	"github.com/shopspring/decimal"
)

const maxWebhookBytes = 64 << 10

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// ListPayments godoc
//
//	@Summary		List the customer's payments
//	@Tags			Payments
//	@Produce		json
//	@Param			page		query		int												false	"Page number (default: 1)"
//	@Param			pageSize	query		int												false	"Items per page (default: 20, max: 100)"
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Payment}	"Payments"
//	@Failure		401			{object}	response.ErrorResponse							"Authentication required"
//	@Failure		500			{object}	response.ErrorResponse							"Internal server error"
//	@Security		BearerAuth
//	@Router			/payments [get]
func (h *PaymentHandler) ListPayments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized payment list attempt: missing user claims")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		page, pageSize := utils.ParsePagination(r)

		payments, total, err := h.paymentService.ListCustomerPayments(r.Context(), claims.UserID, page, pageSize)
		if err != nil {
			logger.Error("Failed to list payments", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     payments,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

// Installments godoc
//
//	@Summary		Card installment options
//	@Description	Asks the gateway for installment plans for an amount and the first digits of a card.
//	@Tags			Payments
//	@Produce		json
//	@Param			amount	query		string	true	"Amount to split, e.g. 215.00"
//	@Param			bin		query		string	true	"First 6 to 8 card digits"
//	@Success		200		{array}		models.Installment
//	@Failure		400		{object}	response.ErrorResponse	"Invalid amount or card prefix"
//	@Failure		502		{object}	response.ErrorResponse	"Gateway error"
//	@Security		BearerAuth
//	@Router			/payments/installments [get]
func (h *PaymentHandler) Installments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		amount, err := decimal.NewFromString(r.URL.Query().Get("amount"))
		if err != nil {
			response.Error(w, errors.AddValidationError("amount", "must be a decimal number"))
			return
		}

		installments, err := h.paymentService.GetInstallments(r.Context(), amount, r.URL.Query().Get("bin"))
		if err != nil {
			logger.Warn("Failed to get installments", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, installments)
	}
}

// MercadoPagoWebhook godoc
//
//	@Summary		Mercado Pago notification
//	@Description	Accepts the JSON body or the legacy query form (?type=payment&data.id=... or ?topic=payment&id=...).
//	@Description	The payment is always re-read from the gateway before the order changes.
//	@Tags			Webhooks
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	map[string]bool
//	@Failure		400	{object}	response.ErrorResponse	"Malformed notification"
//	@Failure		404	{object}	response.ErrorResponse	"Unknown payment"
//	@Router			/webhooks/mercadopago [post]
func (h *PaymentHandler) MercadoPagoWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBytes))
		if err != nil {
			logger.Error("Error reading webhook body", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Failed to read request body"))
			return
		}

		var notification mercadopago.Notification
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &notification); err != nil {
				logger.Warn("Malformed Mercado Pago notification", slog.String("error", err.Error()))
				response.Error(w, errors.BadRequestError("Invalid JSON format").WithError(err))
				return
			}
		}

		q := r.URL.Query()
		if notification.Type == "" {
			notification.Type = firstNonEmpty(q.Get("type"), q.Get("topic"))
		}
		if notification.Data.ID == "" {
			notification.Data.ID = json.Number(firstNonEmpty(q.Get("data.id"), q.Get("id")))
		}

		logger = logger.With(slog.String("type", notification.Type), slog.String("paymentId", notification.Data.ID.String()))

		if err := h.paymentService.HandleMercadoPagoNotification(r.Context(), notification); err != nil {
			logger.Error("Failed to process Mercado Pago notification", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Mercado Pago notification processed")
		response.Success(w, http.StatusOK, map[string]bool{"received": true})
	}
}

// StripeWebhook godoc
//
//	@Summary	Stripe event
//	@Tags		Webhooks
//	@Accept		json
//	@Produce	json
//	@Param		Stripe-Signature	header		string	true	"Stripe webhook signature"
//	@Success	200					{object}	map[string]bool
//	@Failure	400					{object}	response.ErrorResponse	"Missing or invalid signature"
//	@Router		/webhooks/stripe [post]
func (h *PaymentHandler) StripeWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBytes))
		if err != nil {
			logger.Error("Error reading webhook body", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Failed to read request body"))
			return
		}

		signature := r.Header.Get("Stripe-Signature")
		if signature == "" {
			logger.Warn("Missing Stripe signature")
			response.Error(w, errors.BadRequestError("Stripe Signature is required"))
			return
		}

		if err := h.paymentService.HandleStripeWebhook(r.Context(), payload, signature); err != nil {
			logger.Error("Failed to process Stripe webhook", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Stripe webhook processed")
		response.Success(w, http.StatusOK, map[string]bool{"received": true})
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
