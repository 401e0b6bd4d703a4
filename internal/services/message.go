package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/cache"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/helmet-storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

const messageResource = "message"

type MessageService interface {
	Submit(ctx context.Context, req *models.CreateContactMessageRequest) (*models.ContactMessage, error)
	GetMessage(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error)
	ListMessages(ctx context.Context, filter models.MessageFilter) ([]*models.ContactMessage, int, error)
	MarkRead(ctx context.Context, id uuid.UUID, read bool) error
	RequestDelete(ctx context.Context, id uuid.UUID) (*models.DeleteConfirmation, error)
	ConfirmDelete(ctx context.Context, id uuid.UUID, token string) error
}

type messageService struct {
	repo          repository.MessageRepository
	notifications NotificationService
	gate          *deleteGate
	policy        *bluemonday.Policy
}

func NewMessageService(repo repository.MessageRepository, notifications NotificationService, c cache.Cache, deleteTokenTTL time.Duration) MessageService {
	return &messageService{
		repo:          repo,
		notifications: notifications,
		gate:          newDeleteGate(c, deleteTokenTTL),
		policy:        bluemonday.StrictPolicy(),
	}
}

// Submit stores a public contact message with every HTML tag stripped.
func (s *messageService) Submit(ctx context.Context, req *models.CreateContactMessageRequest) (*models.ContactMessage, error) {

	logger := middleware.LoggerFromContext(ctx)

	message := &models.ContactMessage{
		Name:    s.clean(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   s.clean(req.Phone),
		Subject: s.clean(req.Subject),
		Message: s.clean(req.Message),
	}

	if message.Message == "" {
		return nil, errors.AddValidationError("message", "is required")
	}

	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, errors.DatabaseError("Failed to save message").WithError(err)
	}

	logger.Info("Contact message received", slog.String("messageId", message.ID.String()))

	if s.notifications != nil {
		if err := s.notifications.NotifyContactMessage(ctx, message); err != nil {
			logger.Warn("Contact message alert not delivered", slog.String("messageId", message.ID.String()), slog.Any("error", err))
		}
	}

	return message, nil
}

func (s *messageService) GetMessage(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {

	message, err := s.repo.GetMessageByID(ctx, id)
	if err != nil {
		return nil, messageError(err, "Failed to fetch message")
	}

	return message, nil
}

func (s *messageService) ListMessages(ctx context.Context, filter models.MessageFilter) ([]*models.ContactMessage, int, error) {

	messages, total, err := s.repo.ListMessages(ctx, filter)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch messages").WithError(err)
	}

	return messages, total, nil
}

func (s *messageService) MarkRead(ctx context.Context, id uuid.UUID, read bool) error {

	if err := s.repo.MarkRead(ctx, id, read); err != nil {
		return messageError(err, "Failed to update message")
	}

	return nil
}

func (s *messageService) RequestDelete(ctx context.Context, id uuid.UUID) (*models.DeleteConfirmation, error) {

	if _, err := s.repo.GetMessageByID(ctx, id); err != nil {
		return nil, messageError(err, "Failed to fetch message")
	}

	return s.gate.issue(ctx, messageResource, id)
}

func (s *messageService) ConfirmDelete(ctx context.Context, id uuid.UUID, token string) error {

	if err := s.gate.consume(ctx, messageResource, id, token); err != nil {
		return err
	}

	if err := s.repo.DeleteMessage(ctx, id); err != nil {
		return messageError(err, "Failed to delete message")
	}

	return nil
}

// clean strips markup and stores the remaining text unescaped.
func (s *messageService) clean(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
}

func messageError(err error, msg string) error {
	if stdErrors.Is(err, sql.ErrNoRows) {
		return errors.NotFoundError("Message not found").WithError(err)
	}

	return errors.DatabaseError(msg).WithError(err)
}
