package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeUnauthenticated   = "UNAUTHENTICATED"
	ErrCodeEmptyCart         = "EMPTY_CART"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeRemoteWriteFailed = "REMOTE_WRITE_FAILED"
	ErrCodeSideEffectFailed  = "SIDE_EFFECT_FAILED"
	ErrCodeInvalidMode       = "INVALID_MODE"
	ErrCodeKYCRequired       = "KYC_REQUIRED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a tagged business-logic failure.
type DomainError struct {
	Code    string
	Message string
}

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

// Common domain errors
var (
	ErrUnauthenticated   = NewDomainError(ErrCodeUnauthenticated, "Operation requires a signed-in customer")
	ErrEmptyCart         = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrInvalidTransition = NewDomainError(ErrCodeInvalidTransition, "Illegal order status change")
	ErrNotFound          = NewDomainError(ErrCodeNotFound, "Record not found")
	ErrRemoteWriteFailed = NewDomainError(ErrCodeRemoteWriteFailed, "Remote write failed, local changes kept; retry")
	ErrSideEffectFailed  = NewDomainError(ErrCodeSideEffectFailed, "Best-effort side effect failed")
	ErrInvalidMode       = NewDomainError(ErrCodeInvalidMode, "Product is not available in the requested mode")
	ErrKYCRequired       = NewDomainError(ErrCodeKYCRequired, "Identity verification required before rental checkout")
)
