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

type NotificationHandler struct {
	notificationService service.NotificationService
	validator           *validator.Validate
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		validator:           utils.NewValidator(),
	}
}

// SendEmail godoc
//
//	@Summary		Send an email (Admin)
//	@Description	Sends an ad-hoc email through the email provider and records it.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			email	body		models.EmailNotificationRequest	true	"Email"
//	@Success		201		{object}	models.NotificationResponse		"Recorded notification"
//	@Failure		400		{object}	response.ErrorResponse			"Validation error"
//	@Failure		502		{object}	response.ErrorResponse			"Email provider error"
//	@Security		BearerAuth
//	@Router			/admin/notifications/email [post]
func (h *NotificationHandler) SendEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized notification creation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		logger = logger.With(slog.String("userID", claims.UserID.String()))

		var req models.EmailNotificationRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid notification input")
			return
		}

		notification, err := h.notificationService.SendEmail(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to send email notification", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Notification created successfully", slog.String("notificationId", notification.ID.String()))
		response.Success(w, http.StatusCreated, notification)
	}
}

// GetNotification godoc
//
//	@Summary	Get a notification (Admin)
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path		string	true	"Notification ID"	Format(uuid)
//	@Success	200	{object}	models.Notification
//	@Failure	404	{object}	response.ErrorResponse	"Notification not found"
//	@Security	BearerAuth
//	@Router		/admin/notifications/{id} [get]
func (h *NotificationHandler) GetNotification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		notification, err := h.notificationService.GetNotification(r.Context(), id)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to get notification",
				slog.String("notificationId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, notification)
	}
}

// ListNotifications godoc
//
//	@Summary	List sent notifications (Admin)
//	@Tags		Admin
//	@Produce	json
//	@Param		page		query		int													false	"Page number"
//	@Param		pageSize	query		int													false	"Items per page"
//	@Success	200			{object}	models.PaginatedResponse{Data=[]models.Notification}	"Notifications"
//	@Security	BearerAuth
//	@Router		/admin/notifications [get]
func (h *NotificationHandler) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, pageSize := utils.ParsePagination(r)
		logger = logger.With(slog.Int("page", page), slog.Int("pageSize", pageSize))

		notifications, total, err := h.notificationService.ListNotifications(r.Context(), page, pageSize)
		if err != nil {
			logger.Error("Failed to list notifications", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Notifications listed successfully", slog.Int("count", len(notifications)), slog.Int("total", total))
		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     notifications,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}
