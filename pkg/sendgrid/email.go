package sendgrid

import (
	"context"
	"fmt"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	sg "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService interface {
	Send(ctx context.Context, req *models.EmailNotificationRequest) error
}

type emailService struct {
	client    *sg.Client
	fromEmail string
	fromName  string
}

// Option configures optional client behavior.
type Option func(*emailService)

// WithBaseURL points the client at another SendGrid-compatible host.
func WithBaseURL(baseURL string) Option {
	return func(e *emailService) {
		if baseURL != "" {
			e.client.Request.BaseURL = baseURL
		}
	}
}

func NewEmailService(apiKey, fromEmail, fromName string, opts ...Option) EmailService {
	svc := &emailService{client: sg.NewSendClient(apiKey), fromEmail: fromEmail, fromName: fromName}

	for _, opt := range opts {
		opt(svc)
	}

	return svc
}

func (e *emailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(e.fromName, e.fromEmail))

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", req.Recipient))

	for _, cc := range req.CC {
		personalization.AddCCs(mail.NewEmail("", cc))
	}

	for _, bcc := range req.BCC {
		personalization.AddBCCs(mail.NewEmail("", bcc))
	}

	personalization.Subject = req.Subject
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", req.Content))

	if req.HTMLContent != "" {
		message.AddContent(mail.NewContent("text/html", req.HTMLContent))
	}

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to reach sendgrid: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}
