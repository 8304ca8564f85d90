package api

import (
	"errors"
	"net/http"

	"github.com/ecofinds/ecofinds-api/internal/api/shared"
	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/service"
	"github.com/ecofinds/ecofinds-api/internal/service/auth"
	"github.com/ecofinds/ecofinds-api/internal/store"
)

// Conflict messages shown next to the offending registration field.
const (
	emailTakenMessage    = "This email address is already in use. Please use a different email or try logging in."
	usernameTakenMessage = "This username is already taken. Please choose a different username."
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Registration conflicts are reported as bad input on a field
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrUsernameExists):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrCategoryExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Could not validate credentials"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, service.ErrNotOwned):
		return "Not authorized to modify this product"

	case errors.Is(err, service.ErrForbidden):
		return "Not authorized"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrProductNotFound):
		return "Product not found"

	case errors.Is(err, store.ErrCategoryNotFound):
		return "Category not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already registered"

	case errors.Is(err, store.ErrUsernameExists):
		return "Username already taken"

	case errors.Is(err, store.ErrCategoryExists):
		return "Category already exists"

	case errors.Is(err, service.ErrUnknownCategory):
		return "Unknown category"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Validation error"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the error response for err. Validation failures and
// registration conflicts carry the offending field. fallback replaces the
// generic message for unexpected (500) errors when non-empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		opts = append(opts, shared.WithField(verr.Field, verr.Error()))
	case errors.Is(err, store.ErrEmailExists):
		opts = append(opts, shared.WithField("email", emailTakenMessage))
	case errors.Is(err, store.ErrUsernameExists):
		opts = append(opts, shared.WithField("username", usernameTakenMessage))
	case errors.Is(err, service.ErrUnknownCategory):
		opts = append(opts, shared.WithField("category", "is not a known category"))
	case status == http.StatusForbidden:
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
