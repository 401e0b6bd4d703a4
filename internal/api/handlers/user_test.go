package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {

	t.Run("Success", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(mockService)

		input := &models.RegisterRequest{Email: "ana@example.com", Password: "segredo123", Name: "Ana Souza"}
		mockService.On("Register", mock.Anything, input).Return(&models.User{
			ID:    uuid.New(),
			Email: input.Email,
			Name:  input.Name,
			Role:  models.RoleCustomer,
		}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/register", jsonBody(t, input), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Register().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.NotContains(t, rr.Body.String(), "segredo123")

		user := decodeData[models.User](t, rr)
		assert.Equal(t, models.RoleCustomer, user.Role)
	})

	t.Run("Failure - Email Taken", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(mockService)

		mockService.On("Register", mock.Anything, mock.Anything).Return(nil, appErrors.DuplicateEntryError("User already exists")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/register",
			strings.NewReader(`{"email":"ana@example.com","password":"segredo123","name":"Ana"}`), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Register().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Failure - Short Password", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(mockService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/register",
			strings.NewReader(`{"email":"ana@example.com","password":"123","name":"Ana"}`), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Register().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "password", decodeError(t, rr).Fields[0].Field)
		mockService.AssertNotCalled(t, "Register")
	})
}

func decodeLogin(t *testing.T, rr *httptest.ResponseRecorder) models.LoginResponse {
	t.Helper()

	var envelope struct {
		Success bool                 `json:"success"`
		Data    models.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))

	return envelope.Data
}

func TestLogin(t *testing.T) {

	input := &models.LoginRequest{Email: "ana@example.com", Password: "segredo123"}

	t.Run("Success", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(mockService)

		mockService.On("Login", mock.Anything, input).Return(&models.LoginResponse{
			Success:   true,
			Token:     "jwt-token",
			ExpiresIn: 86400,
		}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/login", jsonBody(t, input), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "jwt-token", decodeLogin(t, rr).Token)
	})

	t.Run("Failure - Wrong Password", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(mockService)

		mockService.On("Login", mock.Anything, input).Return(&models.LoginResponse{
			Success:        false,
			RemainingTries: 4,
			Message:        "Invalid email or password",
		}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/login", jsonBody(t, input), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, 4, decodeLogin(t, rr).RemainingTries)
	})

	t.Run("Failure - Locked Out", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(mockService)

		mockService.On("Login", mock.Anything, input).Return(&models.LoginResponse{
			Success:    false,
			RetryAfter: 900,
			Message:    "Too many failed attempts",
		}, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/login", jsonBody(t, input), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Login().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, 900, decodeLogin(t, rr).RetryAfter)
	})
}

func TestProfile(t *testing.T) {

	t.Run("Success", func(t *testing.T) {

		// Arrange
		userID := uuid.New()
		mockService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(mockService)

		mockService.On("GetUserByID", mock.Anything, userID).Return(&models.User{ID: userID, Name: "Ana Souza"}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/users/profile", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Profile().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Ana Souza", decodeData[models.User](t, rr).Name)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {

		// Arrange
		mockService := mocks.NewMockUserService(t)
		handler := handlers.NewUserHandler(mockService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/users/profile", nil, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Profile().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
