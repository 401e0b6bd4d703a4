package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	service "github.com/aaravmahajanofficial/helmet-storefront/internal/services"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: utils.NewValidator()}
}

// GetOrder godoc
//
//	@Summary		Get an order by ID
//	@Description	Retrieves one of the authenticated customer's orders, with its item snapshots and payment details.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string					true	"Order ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Order			"Successfully retrieved order"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid order ID format"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized order access attempt: missing user claims")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		logger = logger.With(slog.String("userID", claims.UserID.String()))

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		// another customer's order is reported as missing
		order, err := h.orderService.GetCustomerOrder(r.Context(), claims.UserID, id)
		if err != nil {
			logger.Warn("Failed to get order", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order retrieved successfully", slog.String("orderId", id.String()))
		response.Success(w, http.StatusOK, order)
	}
}

// ListOrders godoc
//
//	@Summary		List the customer's orders
//	@Description	Retrieves a paginated list of orders placed by the authenticated customer, newest first.
//	@Tags			Orders
//	@Produce		json
//	@Param			page		query		int							false	"Page number for pagination (default: 1)"			minimum(1)
//	@Param			pageSize	query		int							false	"Number of items per page (default: 20, max: 100)"	minimum(1)	maximum(100)
//	@Success		200			{object}	models.OrderHistoryResponse	"Successfully retrieved list of orders"
//	@Failure		401			{object}	response.ErrorResponse		"Authentication required"
//	@Failure		500			{object}	response.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized order list attempt: missing user claims")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		page, pageSize := utils.ParsePagination(r)

		logger = logger.With(
			slog.String("userID", claims.UserID.String()),
			slog.Int("page", page),
			slog.Int("pageSize", pageSize))

		history, err := h.orderService.ListCustomerOrders(r.Context(), claims.UserID, page, pageSize)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Orders listed successfully", slog.Int("count", len(history.Orders)), slog.Int("total", history.Total))
		response.Success(w, http.StatusOK, history)
	}
}

// AdminListOrders godoc
//
//	@Summary		List all orders (Admin)
//	@Description	Filters by status and searches customer name, email or order id.
//	@Tags			Admin
//	@Produce		json
//	@Param			status		query		string						false	"Order status"	Enums(pending, confirmed, shipped, delivered, cancelled)
//	@Param			search		query		string						false	"Customer name, email or order id"
//	@Param			page		query		int							false	"Page number"
//	@Param			pageSize	query		int							false	"Items per page"
//	@Success		200			{object}	models.OrderHistoryResponse	"Orders"
//	@Failure		400			{object}	response.ErrorResponse		"Unknown status"
//	@Failure		403			{object}	response.ErrorResponse		"Admin only"
//	@Security		BearerAuth
//	@Router			/admin/orders [get]
func (h *OrderHandler) AdminListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, pageSize := utils.ParsePagination(r)
		status := models.OrderStatus(r.URL.Query().Get("status"))

		if status != "" && !status.IsValid() {
			response.Error(w, errors.BadRequestError("Unknown order status").WithDetail(string(status)))
			return
		}

		history, err := h.orderService.ListOrders(r.Context(), models.OrderFilter{
			Status:   status,
			Search:   r.URL.Query().Get("search"),
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, history)
	}
}

// AdminGetOrder godoc
//
//	@Summary	Get any order (Admin)
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path		string					true	"Order ID (UUID)"	Format(uuid)
//	@Success	200	{object}	models.Order			"Order"
//	@Failure	404	{object}	response.ErrorResponse	"Order not found"
//	@Security	BearerAuth
//	@Router		/admin/orders/{id} [get]
func (h *OrderHandler) AdminGetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := h.orderService.GetOrderByID(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get order", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// UpdateOrderStatus godoc
//
//	@Summary		Update order status (Admin)
//	@Description	Writes the new status directly. Any status may follow any other; moving backwards is logged.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Order ID (UUID)"	Format(uuid)
//	@Param			status	body		models.UpdateOrderStatusRequest	true	"New Order Status"
//	@Success		200		{object}	models.Order					"Successfully updated order status"
//	@Failure		400		{object}	response.ErrorResponse			"Invalid order ID format or invalid status value"
//	@Failure		401		{object}	response.ErrorResponse			"Authentication required"
//	@Failure		403		{object}	response.ErrorResponse			"Admin only"
//	@Failure		404		{object}	response.ErrorResponse			"Order not found"
//	@Failure		500		{object}	response.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized order status update attempt: missing user claims")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		logger = logger.With(slog.String("updaterUserID", claims.UserID.String()))

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.String("orderId", id.String()))

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update order status input")
			return
		}

		logger = logger.With(slog.String("newStatus", string(req.Status)))

		order, err := h.orderService.UpdateOrderStatus(r.Context(), id, req.Status)
		if err != nil {
			logger.Error("Failed to update order status", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order status updated successfully")
		response.Success(w, http.StatusOK, order)
	}
}

// Stats godoc
//
//	@Summary	Dashboard numbers (Admin)
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{object}	models.OrderStats		"Order counts per status and approved revenue"
//	@Failure	500	{object}	response.ErrorResponse	"Internal server error"
//	@Security	BearerAuth
//	@Router		/admin/stats [get]
func (h *OrderHandler) Stats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		stats, err := h.orderService.GetStats(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to load stats", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, stats)
	}
}
