package authsdk

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Session performs requests on behalf of a logged-in user.
type Session struct {
	client    *SDKClient
	token     string
	expiresAt time.Time
	login     LoginResponse
}

// Token returns the raw session token.
func (s *Session) Token() string { return s.token }

// ExpiresAt returns when the server stops accepting the token.
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// LoginResponse returns the response the session was created from.
func (s *Session) LoginResponse() LoginResponse { return s.login }

// Me returns the logged-in user's account. Unconfirmed accounts get an
// APIError with ErrorCodeConfirmationRequired.
func (s *Session) Me(ctx context.Context) (*UserResponse, error) {
	resp, err := s.client.doJSON(ctx, http.MethodGet, "/v1/me", s.token, nil)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// Confirm follows the confirmation link token.
func (s *Session) Confirm(ctx context.Context, token string) (*ConfirmResponse, error) {
	resp, err := s.client.doJSON(ctx, http.MethodGet, "/v1/auth/confirm/"+url.PathEscape(token), s.token, nil)
	if err != nil {
		return nil, err
	}

	var out ConfirmResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResendConfirmation mails a fresh confirmation link.
func (s *Session) ResendConfirmation(ctx context.Context) error {
	resp, err := s.client.doJSON(ctx, http.MethodPost, "/v1/auth/confirm", s.token, nil)
	if err != nil {
		return err
	}

	var msg MessageResponse
	return decodeJSON(resp, &msg, http.StatusAccepted)
}

// Unconfirmed reports the confirmation status of the session.
func (s *Session) Unconfirmed(ctx context.Context) (*UnconfirmedResponse, error) {
	resp, err := s.client.doJSON(ctx, http.MethodGet, "/v1/auth/unconfirmed", s.token, nil)
	if err != nil {
		return nil, err
	}

	var out UnconfirmedResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword changes the password after checking the current one.
func (s *Session) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	resp, err := s.client.doJSON(ctx, http.MethodPost, "/v1/auth/password", s.token, ChangePasswordRequest{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	})
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// UpdateProfile applies a partial profile update.
func (s *Session) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*ProfileResponse, error) {
	resp, err := s.client.doJSON(ctx, http.MethodPatch, "/v1/auth/profile", s.token, req)
	if err != nil {
		return nil, err
	}

	var profile ProfileResponse
	if err := decodeJSON(resp, &profile, http.StatusOK); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfile returns a public profile as seen by the logged-in user.
func (s *Session) GetProfile(ctx context.Context, username string) (*ProfileResponse, error) {
	return getProfile(ctx, s.client, s.token, username)
}

// Logout ends the session. It is safe to call more than once.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.client.doJSON(ctx, http.MethodPost, "/v1/auth/logout", s.token, nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}
