package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	service "github.com/aaravmahajanofficial/helmet-storefront/internal/services"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// ShippingHandler serves the product page freight estimate and postal code autofill.
type ShippingHandler struct {
	shippingService service.ShippingService
	addressService  service.AddressService
	validator       *validator.Validate
}

func NewShippingHandler(shippingService service.ShippingService, addressService service.AddressService) *ShippingHandler {
	return &ShippingHandler{
		shippingService: shippingService,
		addressService:  addressService,
		validator:       utils.NewValidator(),
	}
}

// Quote godoc
//
//	@Summary		Estimate shipping
//	@Description	Quotes every carrier service for a postal code and package weight, cheapest first.
//	@Tags			Shipping
//	@Accept			json
//	@Produce		json
//	@Param			quote	body		models.ShippingQuoteRequest	true	"Destination and weight"
//	@Success		200		{array}		models.ShippingOption
//	@Failure		400		{object}	response.ErrorResponse	"Malformed postal code"
//	@Failure		422		{object}	response.ErrorResponse	"No shipping service available"
//	@Failure		502		{object}	response.ErrorResponse	"Shipping provider error"
//	@Router			/shipping/quote [post]
func (h *ShippingHandler) Quote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.ShippingQuoteRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		options, err := h.shippingService.Quote(r.Context(), req.PostalCode, req.WeightGrams)
		if err != nil {
			logger.Warn("Shipping quote failed", slog.String("postalCode", req.PostalCode), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, options)
	}
}

// LookupAddress godoc
//
//	@Summary		Autofill an address
//	@Description	An unknown postal code is not an error; the response has found=false and the form stays manual.
//	@Tags			Shipping
//	@Produce		json
//	@Param			postalCode	path		string	true	"Postal code, 8 digits with or without dash"
//	@Success		200			{object}	models.AddressLookup
//	@Failure		400			{object}	response.ErrorResponse	"Malformed postal code"
//	@Router			/address/{postalCode} [get]
func (h *ShippingHandler) LookupAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		postalCode := r.PathValue("postalCode")

		address, err := h.addressService.Lookup(r.Context(), postalCode)
		if err != nil {
			logger.Warn("Address lookup failed", slog.String("postalCode", postalCode), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, address)
	}
}
