package payments

import (
	"strconv"
	"strings"
	"time"

	appErrors "github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
)

const (
	BrandVisa       = "visa"
	BrandMastercard = "mastercard"
	BrandAmex       = "amex"
	BrandElo        = "elo"
	BrandHipercard  = "hipercard"
)

type binRange struct {
	from, to int
}

// Elo BINs outside the 4 prefix; every number starting with 4 is reported as Visa.
var eloRanges = []binRange{
	{504175, 504175}, {506699, 506778}, {509000, 509999}, {627780, 627780},
	{636297, 636297}, {636368, 636368}, {650031, 650033}, {650035, 650051}, {650405, 650439},
	{650485, 650538}, {650541, 650598}, {650700, 650718}, {650720, 650727}, {650901, 650920},
	{651652, 651679}, {655000, 655019}, {655021, 655058},
}

// DetectBrand guesses the card network from its leading digits. Unknown numbers return "".
func DetectBrand(number string) string {
	digits := models.OnlyDigits(number)
	if len(digits) < 2 {
		return ""
	}

	if digits[0] == '4' {
		return BrandVisa
	}

	if len(digits) >= 6 {
		bin, _ := strconv.Atoi(digits[:6])

		for _, r := range eloRanges {
			if bin >= r.from && bin <= r.to {
				return BrandElo
			}
		}

		if digits[:6] == "606282" {
			return BrandHipercard
		}
	}

	if strings.HasPrefix(digits, "3841") {
		return BrandHipercard
	}

	prefix2, _ := strconv.Atoi(digits[:2])

	switch {
	case prefix2 >= 51 && prefix2 <= 55:
		return BrandMastercard
	case prefix2 == 34 || prefix2 == 37:
		return BrandAmex
	}

	if len(digits) >= 4 {
		prefix4, _ := strconv.Atoi(digits[:4])
		if prefix4 >= 2221 && prefix4 <= 2720 {
			return BrandMastercard
		}
	}

	return ""
}

// ValidateCard checks the card form before anything is sent to the gateway. Every failing
// field is reported.
func ValidateCard(card *models.CardInput, now time.Time) error {
	if card == nil {
		return appErrors.AddValidationError("card", "is required")
	}

	var fields []appErrors.FieldError

	if len(models.OnlyDigits(card.Number)) < 13 {
		fields = append(fields, appErrors.FieldError{Field: "card.number", Message: "must have at least 13 digits"})
	}

	if len([]rune(strings.TrimSpace(card.HolderName))) < 3 {
		fields = append(fields, appErrors.FieldError{Field: "card.holder_name", Message: "must have at least 3 characters"})
	}

	if card.ExpiryMonth < 1 || card.ExpiryMonth > 12 {
		fields = append(fields, appErrors.FieldError{Field: "card.expiry_month", Message: "must be between 1 and 12"})
	} else if expired(card.ExpiryMonth, card.ExpiryYear, now) {
		fields = append(fields, appErrors.FieldError{Field: "card.expiry_year", Message: "card is expired"})
	}

	cvv := strings.TrimSpace(card.CVV)
	if len(cvv) < 3 || len(cvv) > 4 || models.OnlyDigits(cvv) != cvv {
		fields = append(fields, appErrors.FieldError{Field: "card.cvv", Message: "must have 3 or 4 digits"})
	}

	if len(fields) > 0 {
		return appErrors.FieldValidationError(fields)
	}

	return nil
}

// expired treats a card as valid through the last day of its expiry month. Two digit years are 20xx.
func expired(month, year int, now time.Time) bool {
	if year < 100 {
		year += 2000
	}

	firstOfNext := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, now.Location())

	return !now.Before(firstOfNext)
}

// LastFour returns the trailing four digits for display.
func LastFour(number string) string {
	digits := models.OnlyDigits(number)
	if len(digits) < 4 {
		return digits
	}

	return digits[len(digits)-4:]
}
