package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/accounts/pkg/authsdk"
)

var (
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrDuplicateEmail         = errors.New("email already registered")
	ErrDuplicateUsername      = errors.New("username already in use")
	ErrTokenInvalid           = errors.New("token invalid")
	ErrTokenExpired           = errors.New("token expired")
	ErrConfirmationFailed     = errors.New("confirmation link is invalid or has expired")
	ErrConfirmationRequired   = errors.New("account confirmation required")
	ErrUserNotFound           = errors.New("user not found")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrValidation             = errors.New("validation failed")
)

// validationError wraps field errors so callers can match ErrValidation and
// still pull the fields out with errors.As.
func validationError(fields authsdk.ValidationErrors) error {
	return fmt.Errorf("%w: %w", ErrValidation, fields)
}

// ValidationFields extracts field errors from err, if any.
func ValidationFields(err error) (authsdk.ValidationErrors, bool) {
	var fields authsdk.ValidationErrors
	if errors.As(err, &fields) {
		return fields, true
	}
	return nil, false
}
