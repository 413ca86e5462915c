package orders

import (
	"errors"
	"fmt"
)

// Provider error codes.
const (
	CodeMissingCredentials = "MISSING_CREDENTIALS"
	CodeTransport          = "TRANSPORT"
	CodeTimeout            = "TIMEOUT"
	CodeQuery              = "QUERY_ERROR"
	CodeDecode             = "DECODE"
)

// ProviderError represents a failure talking to the order data provider.
type ProviderError struct {
	Provider   string
	Code       string
	Message    string
	StatusCode int
	Cause      error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error (%s): %s: %v", e.Provider, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error (%s): %s", e.Provider, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for ProviderError.
func (e *ProviderError) Is(target error) bool {
	t, ok := target.(*ProviderError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewProviderError creates a new ProviderError.
func NewProviderError(provider, code, message string) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Code:     code,
		Message:  message,
	}
}

// WithCause adds a cause to the error.
func (e *ProviderError) WithCause(err error) *ProviderError {
	e.Cause = err
	return e
}

// WithStatusCode adds an HTTP status code to the error.
func (e *ProviderError) WithStatusCode(code int) *ProviderError {
	e.StatusCode = code
	return e
}

var (
	// ErrOrderNotFound indicates no order matched the identifier.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidInput indicates neither a usable order name nor email was given.
	ErrInvalidInput = errors.New("orderName or email required")

	// ErrMissingCredentials indicates the provider has no store domain or token.
	ErrMissingCredentials = errors.New("missing provider credentials")

	// ErrProviderTimeout indicates the provider call exceeded its deadline.
	ErrProviderTimeout = errors.New("provider request timed out")
)

// IsProviderError reports whether err came from the order data provider.
func IsProviderError(err error) bool {
	var providerErr *ProviderError
	return errors.As(err, &providerErr)
}

// ProviderErrorCode returns the code of the ProviderError in err's chain, or "".
func ProviderErrorCode(err error) string {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Code
	}
	return ""
}
