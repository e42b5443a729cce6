package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/accounts/pkg/authsdk"
)

// TestInvalidSessionToken verifies a forged session is treated as anonymous.
func TestInvalidSessionToken(t *testing.T) {
	c := setupAccountsContainer(t)
	client := authsdk.NewSDKClient(c.BaseURL)

	forged := client.NewSession("invalid-token-12345", authsdk.LoginResponse{})

	_, err := forged.Me(t.Context())
	requireAPIError(t, err, http.StatusUnauthorized, authsdk.ErrorCodeAuthenticationRequired)

	status, err := forged.Unconfirmed(t.Context())
	require.NoError(t, err)
	require.Equal(t, "anonymous", status.Status)
}

// TestTokenPurposeIsolation verifies tokens minted for one flow are refused
// by another.
func TestTokenPurposeIsolation(t *testing.T) {
	c := setupAccountsContainer(t)
	client := authsdk.NewSDKClient(c.BaseURL)
	ctx := t.Context()

	session := registerUser(t, client, "john@example.com", "john", "cat-password")
	confirmToken := c.lastLinkToken(t, confirmLinkRe)

	// A session or confirmation token cannot reset a password.
	err := client.CompletePasswordReset(ctx, session.Token(), "dog-password")
	requireAPIError(t, err, http.StatusBadRequest, authsdk.ErrorCodeConfirmationFailed)

	err = client.CompletePasswordReset(ctx, confirmToken, "dog-password")
	requireAPIError(t, err, http.StatusBadRequest, authsdk.ErrorCodeConfirmationFailed)

	// A session token cannot confirm an account.
	_, err = session.Confirm(ctx, session.Token())
	requireAPIError(t, err, http.StatusBadRequest, authsdk.ErrorCodeConfirmationFailed)

	// Another user's confirmation link does not confirm this account.
	other := registerUser(t, client, "susan@example.com", "susan", "cat-password")
	_, err = other.Confirm(ctx, confirmToken)
	requireAPIError(t, err, http.StatusBadRequest, authsdk.ErrorCodeConfirmationFailed)

	_, err = client.Login(ctx, authsdk.LoginRequest{Email: "john@example.com", Password: "cat-password"})
	require.NoError(t, err)
}

// TestLoginNextIsLocal verifies off-site redirect targets are dropped.
func TestLoginNextIsLocal(t *testing.T) {
	c := setupAccountsContainer(t)
	client := authsdk.NewSDKClient(c.BaseURL)

	registerUser(t, client, "john@example.com", "john", "cat-password")

	for _, next := range []string{"https://evil.example/", "//evil.example/", "relative"} {
		session, err := client.LoginWithNext(t.Context(), authsdk.LoginRequest{Email: "john@example.com", Password: "cat-password"}, next)
		require.NoError(t, err)
		require.Equal(t, "/", session.LoginResponse().Next, next)
	}
}
