package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSnapshot freezes the product as it was sold.
type ProductSnapshot struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url,omitempty"`
	Size     string          `json:"size,omitempty"`
	Brand    string          `json:"brand,omitempty"`
	Category string          `json:"category,omitempty"`
}

type DecodeError struct {
	Reason string
	Raw    string
}

func (e *DecodeError) Error() string {
	return "product snapshot: " + e.Reason
}

func NewProductSnapshot(p *Product, size string) ProductSnapshot {
	s := ProductSnapshot{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		ImageURL: p.MainImage(),
		Size:     size,
	}
	if p.Brand != nil {
		s.Brand = p.Brand.Name
	}

	if p.Category != nil {
		s.Category = p.Category.Name
	}

	return s
}

// ParseProductSnapshot accepts either a JSON object or a JSON string whose content is an object.
func ParseProductSnapshot(raw []byte) (ProductSnapshot, error) {
	var snap ProductSnapshot

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return snap, &DecodeError{Reason: "empty value"}
	}

	switch trimmed[0] {
	case '{':
		if err := json.Unmarshal(trimmed, &snap); err != nil {
			return snap, &DecodeError{Reason: err.Error(), Raw: string(trimmed)}
		}

		return snap, nil
	case '"':
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return snap, &DecodeError{Reason: err.Error(), Raw: string(trimmed)}
		}

		innerTrimmed := bytes.TrimSpace([]byte(inner))
		if len(innerTrimmed) == 0 || innerTrimmed[0] != '{' {
			return snap, &DecodeError{Reason: "string does not hold an object", Raw: inner}
		}

		if err := json.Unmarshal(innerTrimmed, &snap); err != nil {
			return snap, &DecodeError{Reason: err.Error(), Raw: inner}
		}

		return snap, nil
	default:
		return snap, &DecodeError{Reason: fmt.Sprintf("unexpected json token %q", trimmed[0]), Raw: string(trimmed)}
	}
}

