package dto

import (
	"net/http"

	"github.com/invoiceme/backend/internal/domain/shared"
)

// Transport-level error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:           http.StatusBadRequest,
	shared.CodeValidationFailed: http.StatusBadRequest,
	shared.CodeInvalidLineItems: http.StatusBadRequest,

	// Resource errors
	shared.CodeNotFound:            http.StatusNotFound,
	shared.CodeAlreadyExists:       http.StatusConflict,
	shared.CodeConcurrencyConflict: http.StatusConflict,

	// Business rule violations -> 422 Unprocessable Entity
	shared.CodeInvalidStateTransition: http.StatusUnprocessableEntity,
	shared.CodeInvoiceNotEditable:     http.StatusUnprocessableEntity,
	shared.CodeInvalidPaymentAmount:   http.StatusUnprocessableEntity,
	shared.CodePaymentExceedsBalance:  http.StatusUnprocessableEntity,

	// Delivery errors -> 502 Bad Gateway, the upstream mail or render
	// service failed
	shared.CodeDeliveryFailed: http.StatusBadGateway,

	ErrCodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
