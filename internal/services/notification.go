package service

import (
	"context"
	"database/sql"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/helmet-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/helmet-storefront/pkg/sendgrid"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type NotificationService interface {
	SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.NotificationResponse, error)
	GetNotification(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	ListNotifications(ctx context.Context, page int, size int) ([]*models.Notification, int, error)
	SendOrderConfirmation(ctx context.Context, order *models.Order) error
	NotifyContactMessage(ctx context.Context, message *models.ContactMessage) error
}

type notificationService struct {
	repo         repository.NotificationRepository
	emailService sendgrid.EmailService
	adminEmail   string
}

// NewNotificationService accepts a nil emailService; notifications are then recorded as failed.
func NewNotificationService(repo repository.NotificationRepository, emailService sendgrid.EmailService, adminEmail string) NotificationService {
	return &notificationService{repo: repo, emailService: emailService, adminEmail: adminEmail}
}

func (n *notificationService) SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.NotificationResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	var metadataJSON json.RawMessage

	if req.Metadata != nil {
		metadataBytes, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, errors.BadRequestError("Invalid notification metadata").WithError(err)
		}

		metadataJSON = metadataBytes
	}

	notification := &models.Notification{
		ID:        uuid.New(),
		Type:      models.NotificationTypeEmail,
		Recipient: req.Recipient,
		Subject:   req.Subject,
		Content:   req.Content,
		Status:    models.StatusPending,
		Metadata:  metadataJSON,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		return nil, errors.DatabaseError("Failed to create notification record").WithError(err)
	}

	var err error
	if n.emailService == nil {
		err = stdErrors.New("email delivery is not configured")
	} else {
		err = n.emailService.Send(ctx, req)
		metrics.RecordGatewayCall("sendgrid", "send", err)
	}

	if err != nil {
		logger.Error("Failed to send email", slog.String("notificationId", notification.ID.String()), slog.Any("error", err))

		if updateErr := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusFailed, err.Error()); updateErr != nil {
			logger.Error("Failed to record notification failure", slog.Any("error", updateErr))
		}

		return nil, errors.ThirdPartyError("Failed to send email").WithError(err)
	}

	sentAt := time.Now()
	notification.Status = models.StatusSent
	notification.SentAt = &sentAt

	if err := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusSent, ""); err != nil {
		return nil, errors.DatabaseError("Notification sent but its status could not be updated").WithError(err)
	}

	return &models.NotificationResponse{
		ID:        notification.ID,
		Type:      notification.Type,
		Status:    notification.Status,
		CreatedAt: notification.CreatedAt,
		SentAt:    notification.SentAt,
	}, nil
}

func (n *notificationService) GetNotification(ctx context.Context, id uuid.UUID) (*models.Notification, error) {

	notification, err := n.repo.GetNotificationById(ctx, id)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Notification not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch notification").WithError(err)
	}

	return notification, nil
}

func (n *notificationService) ListNotifications(ctx context.Context, page int, size int) ([]*models.Notification, int, error) {

	page, size = models.NormalizePage(page, size)

	notifications, total, err := n.repo.ListNotifications(ctx, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list notifications").WithError(err)
	}

	return notifications, total, nil
}

func (n *notificationService) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	if order.CustomerEmail == "" {
		return nil
	}

	_, err := n.SendEmail(ctx, &models.EmailNotificationRequest{
		Recipient:   order.CustomerEmail,
		Subject:     fmt.Sprintf("Pedido %s confirmado", shortID(order.ID)),
		Content:     orderConfirmationText(order),
		HTMLContent: orderConfirmationHTML(order),
		Metadata: map[string]string{
			"order_id": order.ID.String(),
			"kind":     "order_confirmation",
		},
	})

	return err
}

func (n *notificationService) NotifyContactMessage(ctx context.Context, message *models.ContactMessage) error {
	if n.adminEmail == "" {
		return nil
	}

	_, err := n.SendEmail(ctx, &models.EmailNotificationRequest{
		Recipient: n.adminEmail,
		Subject:   "Nova mensagem de contato: " + message.Subject,
		Content: fmt.Sprintf("De: %s <%s>\nTelefone: %s\n\n%s",
			message.Name, message.Email, message.Phone, message.Message),
		Metadata: map[string]string{
			"message_id": message.ID.String(),
			"kind":       "contact_message",
		},
	})

	return err
}

func shortID(id uuid.UUID) string {
	return strings.ToUpper(id.String()[:8])
}

func orderConfirmationText(order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Olá %s,\n\nRecebemos o pagamento do pedido %s.\n\n", order.CustomerName, shortID(order.ID))

	for _, item := range order.Items {
		fmt.Fprintf(&b, "%dx %s", item.Quantity, item.ProductName)
		if item.SelectedSize != "" {
			fmt.Fprintf(&b, " (%s)", item.SelectedSize)
		}
		fmt.Fprintf(&b, " - R$ %s\n", item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).StringFixed(2))
	}

	fmt.Fprintf(&b, "\nFrete: R$ %s\nTotal: R$ %s\n", order.ShippingCost.StringFixed(2), order.TotalAmount.StringFixed(2))

	return b.String()
}

func orderConfirmationHTML(order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<p>Olá %s,</p><p>Recebemos o pagamento do pedido <strong>%s</strong>.</p><ul>",
		html.EscapeString(order.CustomerName), shortID(order.ID))

	for _, item := range order.Items {
		fmt.Fprintf(&b, "<li>%dx %s - R$ %s</li>", item.Quantity, html.EscapeString(item.ProductName),
			item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).StringFixed(2))
	}

	fmt.Fprintf(&b, "</ul><p>Frete: R$ %s<br>Total: <strong>R$ %s</strong></p>",
		order.ShippingCost.StringFixed(2), order.TotalAmount.StringFixed(2))

	return b.String()
}
