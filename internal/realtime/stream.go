package realtime

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils/response"
)

const defaultHeartbeat = 25 * time.Second

type StreamHandler struct {
	broker    *Broker
	heartbeat time.Duration
}

func NewStreamHandler(broker *Broker, heartbeat time.Duration) *StreamHandler {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}

	return &StreamHandler{broker: broker, heartbeat: heartbeat}
}

// Events godoc
//
//	@Summary		Stream payment and order status events
//	@Description	Server-Sent Events. Customers receive events for their own orders, admins receive every event.
//	@Tags			Events
//	@Produce		text/event-stream
//	@Success		200
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/events [get]
func (h *StreamHandler) Events() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			response.Error(w, errors.InternalError("Streaming is not supported"))
			return
		}

		events, unsubscribe := h.broker.Subscribe(ForClaims(claims))
		defer unsubscribe()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		fmt.Fprint(w, ": connected\n\n")
		flusher.Flush()

		logger.Info("Event stream opened", slog.Bool("admin", claims.IsAdmin()))

		heartbeat := time.NewTicker(h.heartbeat)
		defer heartbeat.Stop()

		for {
			select {
			case <-r.Context().Done():
				logger.Info("Event stream closed")
				return

			case <-heartbeat.C:
				fmt.Fprint(w, ": ping\n\n")
				flusher.Flush()

			case event, open := <-events:
				if !open {
					return
				}

				if err := writeEvent(w, event); err != nil {
					logger.Warn("Event not written", slog.Any("error", err))
					return
				}

				flusher.Flush()
			}
		}
	}
}

// ForClaims lets admins see every event and customers only their own.
func ForClaims(claims *models.Claims) func(models.PaymentEvent) bool {
	if claims.IsAdmin() {
		return nil
	}

	customerID := claims.UserID

	return func(event models.PaymentEvent) bool {
		return event.CustomerID == customerID
	}
}

func writeEvent(w http.ResponseWriter, event models.PaymentEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", event.OrderID, event.Type, data)

	return err
}
