package sendgrid_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/aaravmahajanofficial/helmet-storefront/pkg/sendgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mailPayload struct {
	Personalizations []struct {
		To      []map[string]string `json:"to"`
		Bcc     []map[string]string `json:"bcc,omitempty"`
		Subject string              `json:"subject"`
	} `json:"personalizations"`
	From    map[string]string `json:"from"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func TestEmailService_Send(t *testing.T) {
	const apiKey = "SG.test-key"

	tests := []struct {
		name          string
		req           *models.EmailNotificationRequest
		status        int
		expectedError string
		check         func(t *testing.T, p mailPayload)
	}{
		{
			name: "Success - Order confirmation",
			req: &models.EmailNotificationRequest{
				Recipient:   "ana@example.com",
				BCC:         []string{"loja@example.com"},
				Subject:     "Pedido confirmado",
				Content:     "Seu pedido foi confirmado",
				HTMLContent: "<p>Seu pedido foi confirmado</p>",
			},
			status: http.StatusAccepted,
			check: func(t *testing.T, p mailPayload) {
				require.Len(t, p.Personalizations, 1)
				assert.Equal(t, "ana@example.com", p.Personalizations[0].To[0]["email"])
				require.Len(t, p.Personalizations[0].Bcc, 1)
				assert.Equal(t, "Pedido confirmado", p.Personalizations[0].Subject)
				assert.Equal(t, "no-reply@example.com", p.From["email"])
				require.Len(t, p.Content, 2)
				assert.Equal(t, "text/html", p.Content[1].Type)
			},
		},
		{
			name: "Success - Plain text only",
			req: &models.EmailNotificationRequest{
				Recipient: "admin@example.com",
				Subject:   "Nova mensagem",
				Content:   "Cliente enviou uma mensagem",
			},
			status: http.StatusAccepted,
			check: func(t *testing.T, p mailPayload) {
				require.Len(t, p.Content, 1)
				assert.Equal(t, "text/plain", p.Content[0].Type)
			},
		},
		{
			name:          "Failure - API error",
			req:           &models.EmailNotificationRequest{Recipient: "bad@example.com", Subject: "x", Content: "y"},
			status:        http.StatusBadRequest,
			expectedError: "failed to send email, status code: 400",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var payload mailPayload

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer "+apiKey, r.Header.Get("Authorization"))

				body, err := io.ReadAll(r.Body)
				assert.NoError(t, err)
				assert.NoError(t, json.Unmarshal(body, &payload))

				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			svc := sendgrid.NewEmailService(apiKey, "no-reply@example.com", "Moto Store", sendgrid.WithBaseURL(server.URL))

			// Act
			err := svc.Send(t.Context(), tc.req)

			// Assert
			if tc.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedError)

				return
			}

			require.NoError(t, err)

			if tc.check != nil {
				tc.check(t, payload)
			}
		})
	}
}
