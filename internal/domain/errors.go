package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is wrapped by ValidationError, which carries the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPassword is returned when a password doesn't meet requirements.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidCondition is returned for a product condition outside the allowed set.
	ErrInvalidCondition = errors.New("invalid product condition")

	// ErrInvalidPrice is returned when a product price is not positive, exceeds
	// MaxPrice or carries fractions of a cent.
	ErrInvalidPrice = errors.New("invalid price")
)

// ValidationError reports which field failed validation and why.
// Field is the JSON name of the field so it can be returned to clients as-is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError. A nil err defaults to ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Is lets errors.Is(err, ErrValidation) match every ValidationError,
// whatever more specific error it wraps.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
