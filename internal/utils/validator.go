package utils

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	appErrors "github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9 ()\-]{10,20}$`)

// NewValidator returns the validator shared by every form, with the storefront tags registered.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})

	_ = v.RegisterValidation("postalcode", func(fl validator.FieldLevel) bool {
		return IsValidPostalCode(fl.Field().String())
	})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		phone := fl.Field().String()

		return phonePattern.MatchString(phone) && len(models.OnlyDigits(phone)) >= 10
	})

	v.RegisterStructValidation(createProductRules, models.CreateProductRequest{})

	return v
}

func decimalValue(field reflect.Value) any {
	switch d := field.Interface().(type) {
	case decimal.Decimal:
		f, _ := d.Float64()

		return f
	case decimal.NullDecimal:
		if !d.Valid {
			return nil
		}

		f, _ := d.Decimal.Float64()

		return f
	}

	return nil
}

func createProductRules(sl validator.StructLevel) {
	req := sl.Current().Interface().(models.CreateProductRequest)

	if req.OriginalPrice.Valid && req.OriginalPrice.Decimal.LessThan(req.Price) {
		sl.ReportError(req.OriginalPrice, "original_price", "OriginalPrice", "gtefield", "price")
	}
}

// IsValidPostalCode reports whether s normalizes to exactly 8 digits.
func IsValidPostalCode(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}

	return len(models.OnlyDigits(s)) == 8
}

// NormalizePostalCode strips non digits and fails unless exactly 8 remain.
func NormalizePostalCode(s string) (string, error) {
	digits := models.OnlyDigits(s)
	if len(digits) != 8 {
		return "", appErrors.AddValidationError("postal_code", "must have exactly 8 digits")
	}

	return digits, nil
}

func FieldErrors(errs validator.ValidationErrors) []appErrors.FieldError {
	fields := make([]appErrors.FieldError, 0, len(errs))

	for _, err := range errs {
		fields = append(fields, appErrors.FieldError{
			Field:   fieldPath(err),
			Message: fieldMessage(err),
		})
	}

	return fields
}

func fieldPath(err validator.FieldError) string {
	ns := err.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}

	return err.Field()
}

func fieldMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required", "required_if":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "postalcode":
		return "must have exactly 8 digits"
	case "phone":
		return "must be a valid phone number"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "len":
		return fmt.Sprintf("must have length %s", err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", err.Param())
	case "gtefield":
		return fmt.Sprintf("must be greater than or equal to %s", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", err.Param())
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("is invalid (%s)", err.Tag())
	}
}
