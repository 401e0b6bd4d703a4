package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	service "github.com/aaravmahajanofficial/helmet-storefront/internal/services"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type MessageHandler struct {
	messageService service.MessageService
	validator      *validator.Validate
}

func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService, validator: utils.NewValidator()}
}

// Submit godoc
//
//	@Summary		Contact form
//	@Description	Public. Markup is stripped before the message is stored and the store is alerted by email.
//	@Tags			Contact
//	@Accept			json
//	@Produce		json
//	@Param			message	body		models.CreateContactMessageRequest	true	"Message"
//	@Success		201		{object}	models.ContactMessage
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Router			/contact [post]
func (h *MessageHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateContactMessageRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid contact message")
			return
		}

		message, err := h.messageService.Submit(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to store contact message", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Contact message received", slog.String("messageId", message.ID.String()))
		response.Success(w, http.StatusCreated, message)
	}
}

// ListMessages godoc
//
//	@Summary	List contact messages (Admin)
//	@Tags		Admin
//	@Produce	json
//	@Param		search		query		string													false	"Name, email, subject or body"
//	@Param		unread		query		bool													false	"Only unread messages"
//	@Param		page		query		int														false	"Page number"
//	@Param		pageSize	query		int														false	"Items per page"
//	@Success	200			{object}	models.PaginatedResponse{Data=[]models.ContactMessage}	"Messages"
//	@Security	BearerAuth
//	@Router		/admin/messages [get]
func (h *MessageHandler) ListMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page, pageSize := utils.ParsePagination(r)

		messages, total, err := h.messageService.ListMessages(r.Context(), models.MessageFilter{
			Search:     r.URL.Query().Get("search"),
			UnreadOnly: queryBool(r, "unread"),
			Page:       page,
			PageSize:   pageSize,
		})
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list messages", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     messages,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

// GetMessage godoc
//
//	@Summary	Get a contact message (Admin)
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path		string	true	"Message ID"	Format(uuid)
//	@Success	200	{object}	models.ContactMessage
//	@Failure	404	{object}	response.ErrorResponse	"Message not found"
//	@Security	BearerAuth
//	@Router		/admin/messages/{id} [get]
func (h *MessageHandler) GetMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		message, err := h.messageService.GetMessage(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, message)
	}
}

// MarkRead godoc
//
//	@Summary	Mark a message read or unread (Admin)
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Message ID"	Format(uuid)
//	@Param		read	body		models.MarkReadRequest	true	"Read flag"
//	@Success	200		{object}	map[string]bool
//	@Failure	404		{object}	response.ErrorResponse	"Message not found"
//	@Security	BearerAuth
//	@Router		/admin/messages/{id}/read [patch]
func (h *MessageHandler) MarkRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.MarkReadRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.messageService.MarkRead(r.Context(), id, *req.Read); err != nil {
			logger.Warn("Failed to mark message", slog.String("messageId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"read": *req.Read})
	}
}

// RequestDeleteMessage godoc
//
//	@Summary	Ask to delete a message (Admin)
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path		string	true	"Message ID"	Format(uuid)
//	@Success	202	{object}	models.DeleteConfirmation
//	@Failure	404	{object}	response.ErrorResponse	"Message not found"
//	@Security	BearerAuth
//	@Router		/admin/messages/{id} [delete]
func (h *MessageHandler) RequestDeleteMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		confirmation, err := h.messageService.RequestDelete(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusAccepted, confirmation)
	}
}

// ConfirmDeleteMessage godoc
//
//	@Summary	Confirm a message delete (Admin)
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Message ID"	Format(uuid)
//	@Param		token	body		models.ConfirmDeleteRequest	true	"Token from the delete request"
//	@Success	200		{object}	map[string]bool
//	@Failure	400		{object}	response.ErrorResponse	"Missing or expired token"
//	@Security	BearerAuth
//	@Router		/admin/messages/{id}/confirm-delete [post]
func (h *MessageHandler) ConfirmDeleteMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.ConfirmDeleteRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.messageService.ConfirmDelete(r.Context(), id, req.Token); err != nil {
			logger.Warn("Message delete not confirmed", slog.String("messageId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Message deleted", slog.String("messageId", id.String()))
		response.Success(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}
