package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes used across the billing domain
const (
	CodeNotFound               = "NOT_FOUND"
	CodeAlreadyExists          = "ALREADY_EXISTS"
	CodeValidationFailed       = "VALIDATION_FAILED"
	CodeInvalidStateTransition = "INVALID_STATE_TRANSITION"
	CodeInvoiceNotEditable     = "INVOICE_NOT_EDITABLE"
	CodeInvalidLineItems       = "INVALID_LINE_ITEMS"
	CodeInvalidPaymentAmount   = "INVALID_PAYMENT_AMOUNT"
	CodePaymentExceedsBalance  = "PAYMENT_EXCEEDS_BALANCE"
	CodeDeliveryFailed         = "DELIVERY_FAILED"
	CodeConcurrencyConflict    = "CONCURRENCY_CONFLICT"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists       = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
)
