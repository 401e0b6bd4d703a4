package models

import (
	"time"

	"github.com/google/uuid"
)

// DeleteConfirmation is the first half of a two-step delete. The token must be echoed back before it expires.
type DeleteConfirmation struct {
	ResourceID uuid.UUID `json:"resource_id"`
	Resource   string    `json:"resource"`
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type ConfirmDeleteRequest struct {
	Token string `json:"token" validate:"required,uuid4"`
}
