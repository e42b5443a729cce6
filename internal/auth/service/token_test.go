package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/accounts/internal/auth/domain"
)

func TestTokenService_RoundTrip(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()

	tok, err := h.tokens.Issue(ctx, "user-1", domain.PurposeConfirm)
	require.NoError(t, err)
	require.NotContains(t, tok, "/")
	require.NotContains(t, tok, "+")

	sub, err := h.tokens.Verify(ctx, tok, domain.PurposeConfirm)
	require.NoError(t, err)
	require.Equal(t, "user-1", sub)
}

func TestTokenService_PurposeIsolation(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()

	tok, err := h.tokens.Issue(ctx, "user-1", domain.PurposeConfirm)
	require.NoError(t, err)

	for _, p := range []domain.TokenPurpose{domain.PurposeReset, domain.PurposeSession} {
		_, err := h.tokens.Verify(ctx, tok, p)
		require.ErrorIs(t, err, ErrTokenInvalid, "purpose %s", p)
	}
}

func TestTokenService_Expiry(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()

	tok, err := h.tokens.Issue(ctx, "user-1", domain.PurposeReset)
	require.NoError(t, err)

	h.clock.Advance(DefaultResetTTL - time.Second)
	_, err = h.tokens.Verify(ctx, tok, domain.PurposeReset)
	require.NoError(t, err)

	h.clock.Advance(2 * time.Second)
	_, err = h.tokens.Verify(ctx, tok, domain.PurposeReset)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_ExpiryMeasuredFromIssue(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()

	// Issue late in a second; the lifetime must still run a full TTL.
	h.clock.Advance(900 * time.Millisecond)
	tok, err := h.tokens.Issue(ctx, "user-1", domain.PurposeConfirm)
	require.NoError(t, err)

	h.clock.Advance(DefaultConfirmTTL - 500*time.Millisecond)
	_, err = h.tokens.Verify(ctx, tok, domain.PurposeConfirm)
	require.NoError(t, err)

	h.clock.Advance(500 * time.Millisecond)
	_, err = h.tokens.Verify(ctx, tok, domain.PurposeConfirm)
	require.NoError(t, err, "age equal to the TTL is still valid")

	h.clock.Advance(time.Millisecond)
	_, err = h.tokens.Verify(ctx, tok, domain.PurposeConfirm)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_Rejects(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()

	tok, err := h.tokens.Issue(ctx, "user-1", domain.PurposeConfirm)
	require.NoError(t, err)

	other, err := NewTokenService([]byte(strings.Repeat("z", 32)), "accounts-test", TokenTTLs{}, h.clock.Now)
	require.NoError(t, err)
	_, err = other.Verify(ctx, tok, domain.PurposeConfirm)
	require.ErrorIs(t, err, ErrTokenInvalid, "different secret")

	otherIssuer, err := NewTokenService(testSecret, "someone-else", TokenTTLs{}, h.clock.Now)
	require.NoError(t, err)
	_, err = otherIssuer.Verify(ctx, tok, domain.PurposeConfirm)
	require.ErrorIs(t, err, ErrTokenInvalid, "different issuer")

	for _, bad := range []string{"", "garbage", tok + "x", tok[:len(tok)-2]} {
		_, err := h.tokens.Verify(ctx, bad, domain.PurposeConfirm)
		require.ErrorIs(t, err, ErrTokenInvalid, "token %q", bad)
	}
}

func TestTokenService_IssueRejectsBadInput(t *testing.T) {
	h := newHarness(t)

	_, err := h.tokens.Issue(t.Context(), "", domain.PurposeConfirm)
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, err = h.tokens.Issue(t.Context(), "user-1", domain.TokenPurpose("admin"))
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_SessionLifetimes(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()
	now := h.clock.Now()

	_, exp, err := h.tokens.IssueSession(ctx, "user-1", false)
	require.NoError(t, err)
	require.Equal(t, now.Add(DefaultSessionTTL), exp)

	tok, exp, err := h.tokens.IssueSession(ctx, "user-1", true)
	require.NoError(t, err)
	require.Equal(t, now.Add(DefaultRememberTTL), exp)

	at, err := h.tokens.Inspect(ctx, tok, domain.PurposeSession)
	require.NoError(t, err)
	require.True(t, at.Remember)
	require.Equal(t, "user-1", at.Subject)
	require.Equal(t, now, at.IssuedAt.UTC())
}

func TestTokenService_ShortSecret(t *testing.T) {
	_, err := NewTokenService([]byte("short"), "x", TokenTTLs{}, nil)
	require.Error(t, err)
}

func TestTokenTTLs_Defaults(t *testing.T) {
	ttls := TokenTTLs{Reset: 5 * time.Minute}.withDefaults()
	require.Equal(t, DefaultConfirmTTL, ttls.Confirm)
	require.Equal(t, 5*time.Minute, ttls.Reset)
	require.Equal(t, DefaultSessionTTL, ttls.Session)
	require.Equal(t, DefaultRememberTTL, ttls.Remember)
}
