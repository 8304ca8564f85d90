package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Store and domain errors are wrapped with %w so their identity survives
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrForbidden indicates the caller is authenticated but may not act on the resource.
	// API layer should map this to HTTP 403 Forbidden.
	ErrForbidden = errors.New("forbidden")

	// ErrNotOwned indicates a resource is owned by a different user than the one making the request.
	// This is typically returned when a user attempts to modify a product they don't own.
	ErrNotOwned = fmt.Errorf("%w: resource is owned by another user", ErrForbidden)

	// ErrInvalidCredentials is returned for a failed login, whether the email
	// is unknown or the password is wrong. API layer maps it to 401.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnknownCategory is returned when a product names a category that is
	// not in the registry. API layer maps it to 400.
	ErrUnknownCategory = errors.New("unknown category")
)
