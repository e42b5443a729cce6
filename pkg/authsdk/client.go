package authsdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SDKClient is a client for the accounts authentication service. It provides
// the unauthenticated operations and creates Sessions on login.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new auth service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			// Surface redirects to the caller instead of following them.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Register creates a new unconfirmed account. A confirmation mail is sent to
// the given address.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/register", "", req)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a Session.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	return c.LoginWithNext(ctx, req, "")
}

// LoginWithNext is Login with a "next" redirect target; the server echoes it
// back in LoginResponse.Next when it is a local path.
func (c *SDKClient) LoginWithNext(ctx context.Context, req LoginRequest, next string) (*Session, error) {
	path := "/v1/auth/login"
	if next != "" {
		path += "?next=" + url.QueryEscape(next)
	}

	resp, err := c.doJSON(ctx, http.MethodPost, path, "", req)
	if err != nil {
		return nil, err
	}

	var login LoginResponse
	if err := decodeJSON(resp, &login, http.StatusOK); err != nil {
		return nil, err
	}

	return c.NewSession(login.SessionToken, login), nil
}

// RequestPasswordReset starts the reset flow. The server answers the same way
// whether or not the address is registered.
func (c *SDKClient) RequestPasswordReset(ctx context.Context, email string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/reset-password", "", ResetPasswordRequest{Email: email})
	if err != nil {
		return err
	}

	var msg MessageResponse
	return decodeJSON(resp, &msg, http.StatusAccepted)
}

// CompletePasswordReset sets a new password using the token from the reset mail.
func (c *SDKClient) CompletePasswordReset(ctx context.Context, token, password string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/reset-password/"+url.PathEscape(token), "",
		NewPasswordRequest{Password: password})
	if err != nil {
		return err
	}

	var msg MessageResponse
	return decodeJSON(resp, &msg, http.StatusOK)
}

// GetProfile returns the public profile of username.
func (c *SDKClient) GetProfile(ctx context.Context, username string) (*ProfileResponse, error) {
	return getProfile(ctx, c, "", username)
}

// NewSession wraps an existing session token, e.g. one restored from storage.
func (c *SDKClient) NewSession(token string, login LoginResponse) *Session {
	return &Session{
		client:    c,
		token:     token,
		expiresAt: login.ExpiresAt,
		login:     login,
	}
}

func getProfile(ctx context.Context, c *SDKClient, token, username string) (*ProfileResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/v1/users/"+url.PathEscape(username), token, nil)
	if err != nil {
		return nil, err
	}

	var profile ProfileResponse
	if err := decodeJSON(resp, &profile, http.StatusOK); err != nil {
		return nil, err
	}
	return &profile, nil
}
