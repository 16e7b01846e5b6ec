// Package domain contains the core business entities and interfaces for the backend.
package domain

import "errors"

// Domain errors represent business rule violations.
// These are used to communicate specific error conditions from the domain layer.
var (
	// ErrValidation is returned when input data is malformed or inconsistent.
	// It is always detected locally, before any external call.
	ErrValidation = errors.New("validation failed")

	// ErrStateConflict is returned when a mutation is requested on a payment
	// intent that is already in a final state.
	ErrStateConflict = errors.New("payment intent is in a final state")

	// ErrProviderProcessing is returned when the payment provider fails
	// (network, auth, provider-side rejection).
	ErrProviderProcessing = errors.New("payment provider processing error")

	// ErrProductNotFound is returned by repositories when a product id does
	// not exist. Services translate it into an absent result at the boundary.
	ErrProductNotFound = errors.New("product not found")
)

// PaymentError wraps a domain error with additional context.
type PaymentError struct {
	Err     error
	Message string
	Code    string
}

// Error implements the error interface.
func (e *PaymentError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// Unwrap allows errors.Is and errors.As to work with PaymentError.
func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError creates a new PaymentError with the given error and message.
func NewPaymentError(err error, message, code string) *PaymentError {
	return &PaymentError{
		Err:     err,
		Message: message,
		Code:    code,
	}
}

// NewValidationError creates a PaymentError for a locally detected input problem.
func NewValidationError(message string) *PaymentError {
	return NewPaymentError(ErrValidation, message, "VALIDATION_ERROR")
}
