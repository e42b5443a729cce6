package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/auth/service"
	"github.com/aussiebroadwan/accounts/pkg/authsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// writeServiceError maps service sentinels onto API errors. Anything it does
// not recognise is logged and reported as a server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if fields, ok := service.ValidationFields(err); ok && errors.Is(err, service.ErrValidation) {
		authsdk.WriteValidationError(w, fields)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		authsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrDuplicateEmail):
		authsdk.ErrEmailTaken.WriteError(w)
	case errors.Is(err, service.ErrDuplicateUsername):
		authsdk.ErrUsernameTaken.WriteError(w)
	case errors.Is(err, service.ErrConfirmationFailed),
		errors.Is(err, service.ErrTokenInvalid),
		errors.Is(err, service.ErrTokenExpired):
		authsdk.ErrConfirmationFailed.WriteError(w)
	case errors.Is(err, service.ErrConfirmationRequired):
		authsdk.ErrConfirmationRequired.WriteError(w)
	case errors.Is(err, service.ErrAuthenticationRequired):
		authsdk.ErrAuthenticationRequired.WriteError(w)
	case errors.Is(err, service.ErrUserNotFound):
		authsdk.ErrNotFound.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", slogx.Err(err))
		authsdk.ErrServerError.WriteError(w)
	}
}

// decodeBody decodes a JSON body, writing 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.DecodeJSON(w, r, v); err != nil {
		slogx.FromContext(r.Context()).Debug("bad request body", slogx.Err(err))
		authsdk.ErrInvalidRequest.WriteError(w)
		return false
	}
	return true
}
