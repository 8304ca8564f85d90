package domain

import (
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// checkLength validates the rune length of value against [minLen, maxLen].
func checkLength(field, value string, minLen, maxLen int) error {
	n := utf8.RuneCountInString(value)
	if n < minLen {
		if minLen == 1 {
			return NewValidationError(field, "is required", nil)
		}
		return NewValidationError(field, "is too short", nil)
	}
	if maxLen > 0 && n > maxLen {
		return NewValidationError(field, "is too long", nil)
	}
	return nil
}

// checkOptionalLength validates an optional field; nil is always valid.
func checkOptionalLength(field string, value *string, maxLen int) error {
	if value == nil {
		return nil
	}
	return checkLength(field, *value, 0, maxLen)
}

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}
