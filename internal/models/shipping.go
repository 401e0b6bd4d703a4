package models

import (
	"github.com/shopspring/decimal"
)

// ShippingOption is one quoted carrier service, ranked by price then delivery days.
type ShippingOption struct {
	ServiceID    string          `json:"service_id"`
	Name         string          `json:"name"`
	Carrier      string          `json:"carrier"`
	Price        decimal.Decimal `json:"price"`
	DeliveryDays int             `json:"delivery_days"`
}

func (o ShippingOption) Selection() ShippingSelection {
	return ShippingSelection{
		ServiceID:    o.ServiceID,
		Name:         o.Name,
		Carrier:      o.Carrier,
		Price:        o.Price,
		DeliveryDays: o.DeliveryDays,
	}
}

type ShippingQuoteRequest struct {
	PostalCode  string `json:"postal_code" validate:"required,postalcode"`
	WeightGrams int    `json:"weight_grams" validate:"required,gt=0"`
}

type SelectShippingRequest struct {
	ServiceID string `json:"service_id" validate:"required,max=50"`
}
