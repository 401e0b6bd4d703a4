package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSubmitMessage(t *testing.T) {

	t.Run("Success - Public Contact Form", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockMessageService(t)
		handler := handlers.NewMessageHandler(mockService)

		input := &models.CreateContactMessageRequest{
			Name:    "Carlos Lima",
			Email:   "carlos@example.com",
			Subject: "Troca de tamanho",
			Message: "Gostaria de trocar o capacete pelo tamanho 60.",
		}

		mockService.On("Submit", mock.Anything, input).Return(&models.ContactMessage{
			ID:        uuid.New(),
			Name:      input.Name,
			Email:     input.Email,
			Subject:   input.Subject,
			Message:   input.Message,
			CreatedAt: time.Now(),
		}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/contact", jsonBody(t, input), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Submit().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.False(t, decodeData[models.ContactMessage](t, rr).Read)
	})

	t.Run("Failure - Message Too Short", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockMessageService(t)
		handler := handlers.NewMessageHandler(mockService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/contact",
			strings.NewReader(`{"name":"Carlos","email":"carlos@example.com","subject":"Oi","message":"oi"}`), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Submit().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "message", decodeError(t, rr).Fields[0].Field)
		mockService.AssertNotCalled(t, "Submit")
	})
}

func TestListMessages(t *testing.T) {

	// Arrange
	mockService := mocks.NewMockMessageService(t)
	handler := handlers.NewMessageHandler(mockService)

	mockService.On("ListMessages", mock.Anything, models.MessageFilter{
		Search:     "troca",
		UnreadOnly: true,
		Page:       1,
		PageSize:   models.DefaultPageSize,
	}).Return([]*models.ContactMessage{{ID: uuid.New(), Subject: "Troca de tamanho"}}, 1, nil).Once()

	req := testutils.CreateTestRequestWithRole(http.MethodGet, "/api/v1/admin/messages?search=troca&unread=true", nil,
		uuid.New(), models.RoleAdmin, nil)
	rr := httptest.NewRecorder()

	// Act
	handler.ListMessages().ServeHTTP(rr, req)

	// Assert
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeData[page[models.ContactMessage]](t, rr).Data, 1)
}

func TestMarkRead(t *testing.T) {

	messageID := uuid.New()
	params := map[string]string{"id": messageID.String()}

	t.Run("Success - Mark Unread", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockMessageService(t)
		handler := handlers.NewMessageHandler(mockService)

		mockService.On("MarkRead", mock.Anything, messageID, false).Return(nil).Once()

		req := testutils.CreateTestRequestWithRole(http.MethodPatch, "/api/v1/admin/messages/"+messageID.String(),
			strings.NewReader(`{"read":false}`), uuid.New(), models.RoleAdmin, params)
		rr := httptest.NewRecorder()

		// Act
		handler.MarkRead().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, map[string]bool{"read": false}, decodeData[map[string]bool](t, rr))
	})

	t.Run("Failure - Missing Flag", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockMessageService(t)
		handler := handlers.NewMessageHandler(mockService)

		req := testutils.CreateTestRequestWithRole(http.MethodPatch, "/api/v1/admin/messages/"+messageID.String(),
			strings.NewReader(`{}`), uuid.New(), models.RoleAdmin, params)
		rr := httptest.NewRecorder()

		// Act
		handler.MarkRead().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "read", decodeError(t, rr).Fields[0].Field)
		mockService.AssertNotCalled(t, "MarkRead")
	})
}

func TestDeleteMessage(t *testing.T) {

	messageID := uuid.New()
	params := map[string]string{"id": messageID.String()}
	token := uuid.NewString()

	t.Run("Success - Request", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockMessageService(t)
		handler := handlers.NewMessageHandler(mockService)

		mockService.On("RequestDelete", mock.Anything, messageID).Return(&models.DeleteConfirmation{
			ResourceID: messageID,
			Resource:   "message",
			Token:      token,
			ExpiresAt:  time.Now().Add(5 * time.Minute),
		}, nil).Once()

		req := testutils.CreateTestRequestWithRole(http.MethodDelete, "/api/v1/admin/messages/"+messageID.String(), nil,
			uuid.New(), models.RoleAdmin, params)
		rr := httptest.NewRecorder()

		// Act
		handler.RequestDeleteMessage().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusAccepted, rr.Code)
		assert.Equal(t, messageID, decodeData[models.DeleteConfirmation](t, rr).ResourceID)
	})

	t.Run("Failure - Confirm With Unknown Token", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockMessageService(t)
		handler := handlers.NewMessageHandler(mockService)

		mockService.On("ConfirmDelete", mock.Anything, messageID, token).
			Return(appErrors.BadRequestError("Delete confirmation expired or invalid")).Once()

		req := testutils.CreateTestRequestWithRole(http.MethodPost, "/api/v1/admin/messages/"+messageID.String()+"/confirm-delete",
			jsonBody(t, models.ConfirmDeleteRequest{Token: token}), uuid.New(), models.RoleAdmin, params)
		rr := httptest.NewRecorder()

		// Act
		handler.ConfirmDeleteMessage().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
