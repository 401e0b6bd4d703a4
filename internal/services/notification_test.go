package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	appErrors "github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	repoMocks "github.com/aaravmahajanofficial/helmet-storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/helmet-storefront/internal/services"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/services/mocks"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_SendEmail(t *testing.T) {

	ctx := context.Background()
	req := &models.EmailNotificationRequest{
		Recipient: "cliente@example.com",
		Subject:   "Teste",
		Content:   "Olá",
		Metadata:  map[string]string{"kind": "test"},
	}

	t.Run("Success - Sent And Recorded", func(t *testing.T) {

		// Arrange
		repo := repoMocks.NewMockNotificationRepository(t)
		email := mocks.NewMockEmailService(t)
		notificationService := service.NewNotificationService(repo, email, "")

		repo.On("CreateNotification", ctx, mock.AnythingOfType("*models.Notification")).Return(nil).Once()
		email.On("Send", ctx, req).Return(nil).Once()
		repo.On("UpdateNotificationStatus", ctx, mock.AnythingOfType("uuid.UUID"), models.StatusSent, "").Return(nil).Once()

		// Act
		resp, err := notificationService.SendEmail(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.StatusSent, resp.Status)
		assert.NotNil(t, resp.SentAt)
	})

	t.Run("Failure - Provider Error Marks Notification Failed", func(t *testing.T) {

		// Arrange
		repo := repoMocks.NewMockNotificationRepository(t)
		email := mocks.NewMockEmailService(t)
		notificationService := service.NewNotificationService(repo, email, "")

		repo.On("CreateNotification", ctx, mock.AnythingOfType("*models.Notification")).Return(nil).Once()
		email.On("Send", ctx, req).Return(errors.New("401 unauthorized")).Once()
		repo.On("UpdateNotificationStatus", ctx, mock.AnythingOfType("uuid.UUID"), models.StatusFailed, "401 unauthorized").Return(nil).Once()

		// Act
		resp, err := notificationService.SendEmail(ctx, req)

		// Assert
		assert.Nil(t, resp)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeThirdPartyError, appErr.Code)
	})

	t.Run("Failure - No Email Provider Configured", func(t *testing.T) {

		// Arrange
		repo := repoMocks.NewMockNotificationRepository(t)
		notificationService := service.NewNotificationService(repo, nil, "")

		repo.On("CreateNotification", ctx, mock.AnythingOfType("*models.Notification")).Return(nil).Once()
		repo.On("UpdateNotificationStatus", ctx, mock.AnythingOfType("uuid.UUID"), models.StatusFailed, mock.Anything).Return(nil).Once()

		// Act
		_, err := notificationService.SendEmail(ctx, req)

		// Assert
		assert.Error(t, err)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {

		// Arrange
		repo := repoMocks.NewMockNotificationRepository(t)
		email := mocks.NewMockEmailService(t)
		notificationService := service.NewNotificationService(repo, email, "")

		repo.On("CreateNotification", ctx, mock.AnythingOfType("*models.Notification")).Return(errors.New("db down")).Once()

		// Act
		_, err := notificationService.SendEmail(ctx, req)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
		email.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

func TestNotificationService_SendOrderConfirmation(t *testing.T) {

	ctx := context.Background()

	// Arrange
	repo := repoMocks.NewMockNotificationRepository(t)
	email := mocks.NewMockEmailService(t)
	notificationService := service.NewNotificationService(repo, email, "")

	order := &models.Order{
		ID:            uuid.MustParse("3f2a9c1e-0000-4000-8000-000000000001"),
		CustomerName:  "Rafa <Dev>",
		CustomerEmail: "rafa@example.com",
		ShippingCost:  decimal.NewFromInt(15),
		TotalAmount:   decimal.NewFromInt(215),
		Items: []models.OrderItem{
			{ProductName: "Capacete", SelectedSize: "58", Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
		},
	}

	repo.On("CreateNotification", ctx, mock.AnythingOfType("*models.Notification")).Return(nil).Once()
	email.On("Send", ctx, mock.MatchedBy(func(r *models.EmailNotificationRequest) bool {
		return r.Recipient == "rafa@example.com" &&
			r.Subject == "Pedido 3F2A9C1E confirmado" &&
			contains(r.Content, "2x Capacete (58) - R$ 200.00") &&
			contains(r.Content, "Total: R$ 215.00") &&
			contains(r.HTMLContent, "Rafa &lt;Dev&gt;")
	})).Return(nil).Once()
	repo.On("UpdateNotificationStatus", ctx, mock.AnythingOfType("uuid.UUID"), models.StatusSent, "").Return(nil).Once()

	// Act
	err := notificationService.SendOrderConfirmation(ctx, order)

	// Assert
	assert.NoError(t, err)
}

func TestNotificationService_GetNotification(t *testing.T) {

	ctx := context.Background()

	// Arrange
	repo := repoMocks.NewMockNotificationRepository(t)
	notificationService := service.NewNotificationService(repo, nil, "")
	id := uuid.New()

	repo.On("GetNotificationById", ctx, id).Return(nil, sql.ErrNoRows).Once()

	// Act
	_, err := notificationService.GetNotification(ctx, id)

	// Assert
	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
}
