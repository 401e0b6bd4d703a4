package mercadopago

import "encoding/json"

type PayerCost struct {
	Installments       int     `json:"installments"`
	InstallmentRate    float64 `json:"installment_rate"`
	InstallmentAmount  float64 `json:"installment_amount"`
	TotalAmount        float64 `json:"total_amount"`
	RecommendedMessage string  `json:"recommended_message"`
}

type InstallmentOption struct {
	PaymentMethodID string `json:"payment_method_id"`
	Issuer          struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"issuer"`
	PayerCosts []PayerCost `json:"payer_costs"`
}

// Notification is the webhook body Mercado Pago posts for payment updates. Data.ID arrives as a string or a number.
type Notification struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID json.Number `json:"id"`
	} `json:"data"`
}
