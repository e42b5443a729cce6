package authsdk

import "time"

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the JSON body of every non-validation error.
type ErrorResponse struct {
	// Error is the machine readable error code (e.g. "invalid_credentials")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse represents a validation error response.
type ValidationErrorResponse struct {
	// Code is always "validation_error"
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details contains field-specific validation errors (field name: error message)
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Account Types
// ============================================================================

// RegisterRequest creates a new, unconfirmed account.
type RegisterRequest struct {
	// Email address, also the login identifier (max 64 chars)
	Email string `json:"email" example:"ada@example.com"`

	// Username must start with a letter and only contain letters, digits, dots
	// or underscores (max 64 chars)
	Username string `json:"username" example:"ada"`

	// Password in plaintext (8-128 chars). Never stored.
	Password string `json:"password" example:"correct horse battery"`
}

// LoginRequest exchanges credentials for a session.
type LoginRequest struct {
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"correct horse battery"`

	// Remember requests a persistent session with the extended lifetime
	Remember bool `json:"remember_me"`
}

// LoginResponse is returned on successful login. The same token is also set
// as the session cookie.
type LoginResponse struct {
	// SessionToken is sent as "Authorization: Bearer <token>" by API clients
	SessionToken string `json:"session_token"`

	// ExpiresAt is when the session stops being accepted
	ExpiresAt time.Time `json:"expires_at"`

	// Persistent reports whether the session cookie survives browser restarts
	Persistent bool `json:"persistent"`

	// Next is the local path the caller should continue to
	Next string `json:"next"`

	User UserResponse `json:"user"`
}

// ChangePasswordRequest changes the password of the logged-in user.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// UpdateProfileRequest is a partial update; omitted fields are left as they
// are. An empty string clears location or about_me.
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty"`
	Location *string `json:"location,omitempty"`
	AboutMe  *string `json:"about_me,omitempty"`
}

// ResetPasswordRequest starts the reset flow for an email address.
type ResetPasswordRequest struct {
	Email string `json:"email"`
}

// NewPasswordRequest completes the reset flow.
type NewPasswordRequest struct {
	Password string `json:"password"`
}

// ============================================================================
// User Types
// ============================================================================

// UserResponse is the private view of an account, only returned to its owner.
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	Confirmed   bool      `json:"confirmed"`
	Location    string    `json:"location,omitempty"`
	AboutMe     string    `json:"about_me,omitempty"`
	MemberSince time.Time `json:"member_since"`
	LastSeen    time.Time `json:"last_seen"`
}

// ProfileResponse is the public view of an account.
type ProfileResponse struct {
	Username    string    `json:"username"`
	Location    string    `json:"location,omitempty"`
	AboutMe     string    `json:"about_me,omitempty"`
	MemberSince time.Time `json:"member_since"`
	LastSeen    time.Time `json:"last_seen"`

	// Location of this profile on the API, e.g. "/v1/users/ada"
	Href string `json:"href"`
}

// ConfirmResponse reports the outcome of following a confirmation link.
type ConfirmResponse struct {
	// Outcome is "confirmed" or "already_confirmed"
	Outcome string `json:"outcome"`
	Message string `json:"message"`
}

// UnconfirmedResponse tells a client whether to show the "please confirm"
// page or continue to Redirect.
type UnconfirmedResponse struct {
	// Status is "anonymous", "confirmed" or "unconfirmed"
	Status   string `json:"status"`
	Redirect string `json:"redirect,omitempty"`
}

// MessageResponse is a generic acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`
}
