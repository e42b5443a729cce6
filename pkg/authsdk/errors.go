package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

const (
	ErrorCodeInvalidRequest          = "invalid_request"
	ErrorCodeValidation              = "validation_error"
	ErrorCodeInvalidCredentials      = "invalid_credentials"
	ErrorCodeEmailTaken              = "email_taken"
	ErrorCodeUsernameTaken           = "username_taken"
	ErrorCodeInvalidToken            = "invalid_token"
	ErrorCodeConfirmationFailed      = "confirmation_failed"
	ErrorCodeConfirmationRequired    = "confirmation_required"
	ErrorCodeAuthenticationRequired  = "authentication_required"
	ErrorCodeNotFound                = "not_found"
	ErrorCodeServerError             = "server_error"
)

// APIError is the error shape of every non-2xx response. It implements the
// error interface so the server can write it and the SDK can return it.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine readable error code (e.g. "invalid_credentials")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`

	// Details holds per-field messages for validation errors
	Details map[string]string `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrInvalidRequest is returned when the body is malformed.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidCredentials is the single answer for every failed login,
	// whether the email is unknown or the password is wrong.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid email or password",
	}

	ErrEmailTaken = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeEmailTaken,
		Description: "email already registered",
	}

	ErrUsernameTaken = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeUsernameTaken,
		Description: "username already in use",
	}

	// ErrConfirmationFailed covers invalid, expired and mismatched links.
	ErrConfirmationFailed = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeConfirmationFailed,
		Description: "the confirmation link is invalid or has expired",
	}

	ErrConfirmationRequired = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeConfirmationRequired,
		Description: "the account must be confirmed before using this endpoint",
	}

	ErrAuthenticationRequired = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeAuthenticationRequired,
		Description: "a valid session is required",
	}

	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "resource not found",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// WriteValidationError writes a 400 with per-field details.
func WriteValidationError(w http.ResponseWriter, errs ValidationErrors) {
	httpx.WriteJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Code:    ErrorCodeValidation,
		Message: "validation failed for some fields",
		Details: errs,
	})
}

// parseErrorResponse turns a non-2xx response into *APIError. It returns nil
// for 2xx responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// Validation errors carry "code" rather than "error".
	var valErr ValidationErrorResponse
	if err := json.Unmarshal(body, &valErr); err == nil && valErr.Code != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        valErr.Code,
			Description: valErr.Message,
			Details:     valErr.Details,
		}
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
