package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/accounts/internal/auth/domain"
)

func TestAccountService_Register(t *testing.T) {
	h := newHarness(t)
	u := h.register(t)

	require.False(t, u.Confirmed)
	require.Equal(t, domain.StateUnconfirmed, domain.StateOf(u))

	msg, ok := h.mail.Last()
	require.True(t, ok)
	require.Equal(t, "john@example.com", msg.To)
	require.Equal(t, "Confirm Your Account", msg.Subject)
	require.Equal(t, "auth/email/confirm", msg.Template)

	tok := h.lastToken(t)
	require.Equal(t, "http://localhost:8080/v1/auth/confirm/"+tok, msg.Data["Link"])

	sub, err := h.tokens.Verify(t.Context(), tok, domain.PurposeConfirm)
	require.NoError(t, err)
	require.Equal(t, u.ID, sub)
}

func TestAccountService_Register_Validation(t *testing.T) {
	h := newHarness(t)

	_, err := h.accounts.Register(t.Context(), RegisterInput{
		Email:    "not-an-email",
		Username: "9lives",
		Password: "short",
	})
	require.ErrorIs(t, err, ErrValidation)

	fields, ok := ValidationFields(err)
	require.True(t, ok)
	require.Contains(t, fields, "email")
	require.Contains(t, fields, "username")
	require.Contains(t, fields, "password")

	require.Empty(t, h.mail.Messages())
	_, err = h.users.FindByUsername(t.Context(), "9lives")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAccountService_Register_Duplicate(t *testing.T) {
	h := newHarness(t)
	h.register(t)

	_, err := h.accounts.Register(t.Context(), RegisterInput{
		Email:    "John@Example.com",
		Username: "other",
		Password: "cat-password",
	})
	require.ErrorIs(t, err, ErrDuplicateEmail)
	require.Len(t, h.mail.Messages(), 1)
}

func TestAccountService_Register_MailFailureIsNotFatal(t *testing.T) {
	h := newHarness(t)
	h.mail.Err = errors.New("smtp down")

	u := h.register(t)
	require.NotEmpty(t, u.ID)
}

func TestAccountService_Confirm(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()
	u := h.register(t)
	tok := h.lastToken(t)

	_, err := h.accounts.Confirm(ctx, domain.Anonymous(), tok)
	require.ErrorIs(t, err, ErrAuthenticationRequired)

	outcome, err := h.accounts.Confirm(ctx, domain.Bound(u), tok)
	require.NoError(t, err)
	require.Equal(t, OutcomeConfirmed, outcome)

	confirmed := h.reload(t, u)
	require.True(t, confirmed.Confirmed)

	// Following the link again, with either a fresh or stale principal.
	outcome, err = h.accounts.Confirm(ctx, domain.Bound(confirmed), tok)
	require.NoError(t, err)
	require.Equal(t, OutcomeAlreadyConfirmed, outcome)

	outcome, err = h.accounts.Confirm(ctx, domain.Bound(u), tok)
	require.NoError(t, err)
	require.Equal(t, OutcomeAlreadyConfirmed, outcome)
}

func TestAccountService_Confirm_Failures(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()
	john := h.register(t)
	johnTok := h.lastToken(t)

	susan, err := h.accounts.Register(ctx, RegisterInput{Email: "susan@example.com", Username: "susan", Password: "dog-password"})
	require.NoError(t, err)

	resetTok, err := h.tokens.Issue(ctx, john.ID, domain.PurposeReset)
	require.NoError(t, err)

	cases := map[string]struct {
		p     domain.Principal
		token string
	}{
		"someone else's token": {domain.Bound(susan), johnTok},
		"reset token":          {domain.Bound(john), resetTok},
		"garbage":              {domain.Bound(john), "garbage"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := h.accounts.Confirm(ctx, tc.p, tc.token)
			require.ErrorIs(t, err, ErrConfirmationFailed)
		})
	}

	h.clock.Advance(DefaultConfirmTTL + time.Second)
	_, err = h.accounts.Confirm(ctx, domain.Bound(john), johnTok)
	require.ErrorIs(t, err, ErrConfirmationFailed)
	require.ErrorIs(t, err, ErrTokenExpired)

	require.False(t, h.reload(t, john).Confirmed)
	require.False(t, h.reload(t, susan).Confirmed)
}

func TestAccountService_ResendConfirmation(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()
	u := h.register(t)

	require.ErrorIs(t, h.accounts.ResendConfirmation(ctx, domain.Anonymous()), ErrAuthenticationRequired)

	h.clock.Advance(time.Minute)
	require.NoError(t, h.accounts.ResendConfirmation(ctx, domain.Bound(u)))
	require.Len(t, h.mail.Messages(), 2)

	outcome, err := h.accounts.Confirm(ctx, domain.Bound(u), h.lastToken(t))
	require.NoError(t, err)
	require.Equal(t, OutcomeConfirmed, outcome)

	// Nothing to resend once confirmed.
	require.NoError(t, h.accounts.ResendConfirmation(ctx, domain.Bound(h.reload(t, u))))
	require.Len(t, h.mail.Messages(), 2)
}

func TestAccountService_Gate(t *testing.T) {
	h := newHarness(t)
	unconfirmed := domain.Bound(domain.User{ID: "u1"})
	confirmed := domain.Bound(domain.User{ID: "u2", Confirmed: true})

	routes := []domain.RouteClass{domain.RouteProtected, domain.RouteAuth, domain.RouteStatic}
	for _, r := range routes {
		t.Run(r.String(), func(t *testing.T) {
			require.NoError(t, h.accounts.Gate(domain.Anonymous(), r))
			require.NoError(t, h.accounts.Gate(confirmed, r))

			err := h.accounts.Gate(unconfirmed, r)
			if r == domain.RouteProtected {
				require.ErrorIs(t, err, ErrConfirmationRequired)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAccountService_GateProceedsAfterConfirm(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()
	u := h.register(t)

	require.ErrorIs(t, h.accounts.Gate(domain.Bound(u), domain.RouteProtected), ErrConfirmationRequired)

	_, err := h.accounts.Confirm(ctx, domain.Bound(u), h.lastToken(t))
	require.NoError(t, err)

	require.NoError(t, h.accounts.Gate(domain.Bound(h.reload(t, u)), domain.RouteProtected))
}

func TestAccountService_Unconfirmed(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, StatusAnonymous, h.accounts.Unconfirmed(domain.Anonymous()))
	require.Equal(t, StatusUnconfirmed, h.accounts.Unconfirmed(domain.Bound(domain.User{ID: "u"})))
	require.Equal(t, StatusConfirmed, h.accounts.Unconfirmed(domain.Bound(domain.User{ID: "u", Confirmed: true})))
}

func TestLink(t *testing.T) {
	require.Equal(t, "https://x.test/v1/auth/confirm/abc", link("https://x.test/", ConfirmPath, "abc"))
	require.Equal(t, "/v1/auth/reset-password/abc", link("", ResetPath, "abc"))
	require.True(t, strings.HasSuffix(link("http://h:1/base", ResetPath, "t"), "/base/v1/auth/reset-password/t"))
}
