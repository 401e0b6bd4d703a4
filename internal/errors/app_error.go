package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Fields     []FieldError
	Err        error
}

// FieldError is one failing form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

func (e *AppError) WithFields(fields []FieldError) *AppError {
	e.Fields = fields

	return e
}

const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
	ErrCodeDuplicateEntry    = "DUPLICATE_ENTRY"
	ErrCodeThirdPartyError   = "THIRD_PARTY_ERROR"
	ErrCodeConnectivity      = "CONNECTIVITY_ERROR"
	ErrCodeTooManyRequests   = "TOO_MANY_REQUESTS"
	ErrCodeResourceExhausted = "RESOURCE_EXHAUSTED"
	ErrCodeStockConflict     = "STOCK_CONFLICT"
	ErrCodeNoShipping        = "NO_SHIPPING_SERVICE"
	ErrCodeStepConflict      = "STEP_CONFLICT"
	ErrCodeInFlight          = "REQUEST_IN_FLIGHT"
	ErrCodePaymentRejected   = "PAYMENT_REJECTED"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func DatabaseError(message string) *AppError {
	return NewAppError(ErrCodeDatabaseError, message, http.StatusInternalServerError)
}

func DuplicateEntryError(message string) *AppError {
	return NewAppError(ErrCodeDuplicateEntry, message, http.StatusConflict)
}

func ThirdPartyError(message string) *AppError {
	return NewAppError(ErrCodeThirdPartyError, message, http.StatusBadGateway)
}

// ConnectivityError covers network failures and timeouts talking to a collaborator.
func ConnectivityError(message string) *AppError {
	return NewAppError(ErrCodeConnectivity, message, http.StatusServiceUnavailable)
}

// UpstreamError classifies a failed call to an external service. Transport failures and
// timeouts become CONNECTIVITY_ERROR, everything else THIRD_PARTY_ERROR.
func UpstreamError(service string, err error) *AppError {
	if appErr, ok := IsAppError(err); ok {
		return appErr
	}

	var netErr net.Error
	var urlErr *url.Error

	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return ConnectivityError(fmt.Sprintf("%s is unreachable", service)).WithError(err)
	}

	return ThirdPartyError(fmt.Sprintf("%s rejected the request", service)).WithError(err).WithDetail(err.Error())
}

func TooManyRequestsError(message string) *AppError {
	return NewAppError(ErrCodeTooManyRequests, message, http.StatusTooManyRequests)
}

func ResourceExhaustedError(message string) *AppError {
	return NewAppError(ErrCodeResourceExhausted, message, http.StatusTooManyRequests)
}

func StockConflictError(message string) *AppError {
	return NewAppError(ErrCodeStockConflict, message, http.StatusConflict)
}

func NoShippingServiceError(message string) *AppError {
	return NewAppError(ErrCodeNoShipping, message, http.StatusUnprocessableEntity)
}

func StepConflictError(message string) *AppError {
	return NewAppError(ErrCodeStepConflict, message, http.StatusConflict)
}

func InFlightError(message string) *AppError {
	return NewAppError(ErrCodeInFlight, message, http.StatusConflict)
}

func PaymentRejectedError(message string) *AppError {
	return NewAppError(ErrCodePaymentRejected, message, http.StatusPaymentRequired)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason)).
		WithFields([]FieldError{{Field: field, Message: reason}})
}

// FieldValidationError bundles every failing field of one form.
func FieldValidationError(fields []FieldError) *AppError {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}

	return ValidationError("Validation failed: " + strings.Join(names, ", ")).WithFields(fields)
}

// Result is the {success, message} shape callers branch on instead of raw errors.
type Result struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

const retryPrompt = "We could not reach the service. Please check your connection and try again."

func ToResult(err error) Result {
	if err == nil {
		return Result{Success: true, Message: "OK"}
	}

	appErr, ok := IsAppError(err)
	if !ok {
		return Result{Success: false, Code: ErrCodeInternal, Message: "An unexpected error occurred"}
	}

	if appErr.Code == ErrCodeConnectivity {
		return Result{Success: false, Code: appErr.Code, Message: retryPrompt}
	}

	return Result{Success: false, Code: appErr.Code, Message: appErr.Message}
}
