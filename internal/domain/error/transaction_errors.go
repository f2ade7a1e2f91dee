// Package error defines domain-specific errors for the household tracker.
package error

import "errors"

// Transaction store errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the store.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// StoreErrorCode defines error codes for transaction store errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type StoreErrorCode string

const (
	ErrCodeTransactionNotFound StoreErrorCode = "TXN-010001"
	ErrCodeStoreUnavailable    StoreErrorCode = "TXN-020001"
	ErrCodeTransactionRead     StoreErrorCode = "TXN-020002"
	ErrCodeTransactionWrite    StoreErrorCode = "TXN-020003"
)

// StoreError represents a transaction store error with code and message.
type StoreError struct {
	Code    StoreErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given code and message.
func NewStoreError(code StoreErrorCode, message string, err error) *StoreError {
	return &StoreError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
