package models

// AddressLookup is the autofill result for a postal code. Found is false when the code is unknown.
type AddressLookup struct {
	PostalCode   string `json:"postal_code"`
	Street       string `json:"street"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Found        bool   `json:"found"`
}
