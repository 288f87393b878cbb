package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found or not visible to the caller
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrImmutable is returned when a predefined entity is modified or deleted
	ErrImmutable = errors.New("predefined resource cannot be modified")
	// ErrInsufficientBalance is returned when a debit would drive a balance negative
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrExchangeRateMissing is returned when a required exchange rate is absent
	ErrExchangeRateMissing = errors.New("exchange rate missing")
	// ErrUnauthorized is returned when a request is not authenticated
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when a user is not allowed to perform an action
	ErrForbidden = errors.New("forbidden")
	// ErrUnavailable is returned when the store times out or cannot be reached
	ErrUnavailable = errors.New("service unavailable")
	// ErrInUse is returned when a referenced resource is deleted
	ErrInUse = fmt.Errorf("%w: resource is in use", ErrValidation)
)

// ValidationError reports a constraint violation on a single field.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Reason
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError returns a ValidationError for field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ExchangeRateMissingError names the currency pair that could not be resolved.
type ExchangeRateMissingError struct {
	From string
	To   string
}

func (e *ExchangeRateMissingError) Error() string {
	return fmt.Sprintf("exchange rate missing: %s -> %s", e.From, e.To)
}

func (e *ExchangeRateMissingError) Unwrap() error { return ErrExchangeRateMissing }

// RegistrationRollbackError is returned when the user row was removed
// because its summary could not be created. It unwraps to the cause.
type RegistrationRollbackError struct {
	Cause error
}

func (e *RegistrationRollbackError) Error() string {
	return "registration rolled back: " + e.Cause.Error()
}

func (e *RegistrationRollbackError) Unwrap() error { return e.Cause }
