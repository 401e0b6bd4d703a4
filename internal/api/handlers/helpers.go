package handlers

import (
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/google/uuid"
)

// queryUUID reads an optional uuid query param. An empty value is not an error.
func queryUUID(r *http.Request, key string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errors.BadRequestError("Invalid " + key + " format").WithError(err)
	}

	return &id, nil
}

func queryBool(r *http.Request, key string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return v
}
