package auth

import (
	"errors"
	"fmt"
)

// Common authentication service errors.
// Every rejection reason wraps ErrInvalidToken so callers can treat them
// uniformly while logs and tests can still tell them apart.
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = fmt.Errorf("%w: token has expired", ErrInvalidToken)

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf or iat in the future)
	ErrTokenNotYetValid = fmt.Errorf("%w: token not yet valid", ErrInvalidToken)

	// ErrRevokedToken indicates the token was explicitly revoked (logout)
	ErrRevokedToken = fmt.Errorf("%w: token has been revoked", ErrInvalidToken)

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")
)
