package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/accounts/internal/auth/domain"
)

func ptr(s string) *string { return &s }

func TestUserService_CreateAndVerifyPassword(t *testing.T) {
	h := newHarness(t)

	u, err := h.users.Create(t.Context(), "John@Example.com ", "john", "cat-password")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.Equal(t, "john@example.com", u.Email)
	require.False(t, u.Confirmed)
	require.NotContains(t, u.PasswordHash, "cat-password")

	stored := h.reload(t, u)
	require.True(t, h.users.VerifyPassword(stored, "cat-password"))
	require.False(t, h.users.VerifyPassword(stored, "dog-password"))
	require.False(t, h.users.VerifyPassword(domain.User{}, "cat-password"))
}

func TestUserService_SaltsDiffer(t *testing.T) {
	h := newHarness(t)

	a, err := h.users.Create(t.Context(), "a@example.com", "alice", "same-password")
	require.NoError(t, err)
	b, err := h.users.Create(t.Context(), "b@example.com", "bob", "same-password")
	require.NoError(t, err)

	require.NotEqual(t, a.PasswordHash, b.PasswordHash)
}

func TestUserService_DuplicateEmail(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()

	first, err := h.users.Create(ctx, "john@example.com", "john", "cat-password")
	require.NoError(t, err)

	_, err = h.users.Create(ctx, "JOHN@example.com", "johnny", "dog-password")
	require.ErrorIs(t, err, ErrDuplicateEmail)

	got, err := h.users.FindByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)
	require.Equal(t, "john", got.Username)

	_, err = h.users.FindByUsername(ctx, "johnny")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_DuplicateUsername(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()

	_, err := h.users.Create(ctx, "john@example.com", "john", "cat-password")
	require.NoError(t, err)

	_, err = h.users.Create(ctx, "other@example.com", "john", "dog-password")
	require.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestUserService_Lookups(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()

	_, err := h.users.GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, ErrUserNotFound)
	_, err = h.users.FindByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)

	u, err := h.users.Create(ctx, "john@example.com", "john", "cat-password")
	require.NoError(t, err)

	byName, err := h.users.FindByUsername(ctx, "john")
	require.NoError(t, err)
	require.Equal(t, u.ID, byName.ID)
}

func TestUserService_ChangePassword(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()
	u := h.register(t)
	p := domain.Bound(u)

	err := h.users.ChangePassword(ctx, domain.Anonymous(), "cat-password", "new-password")
	require.ErrorIs(t, err, ErrAuthenticationRequired)

	err = h.users.ChangePassword(ctx, p, "wrong-password", "new-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	err = h.users.ChangePassword(ctx, p, "cat-password", "short")
	require.ErrorIs(t, err, ErrValidation)
	fields, ok := ValidationFields(err)
	require.True(t, ok)
	require.Contains(t, fields, "new_password")

	require.NoError(t, h.users.ChangePassword(ctx, p, "cat-password", "new-password"))

	stored := h.reload(t, u)
	require.False(t, h.users.VerifyPassword(stored, "cat-password"))
	require.True(t, h.users.VerifyPassword(stored, "new-password"))
}

func TestUserService_SetPassword_UnknownUser(t *testing.T) {
	h := newHarness(t)
	err := h.users.SetPassword(t.Context(), "missing", "new-password")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_UpdateProfile(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()
	u := h.register(t)

	updated, err := h.users.UpdateProfile(ctx, u.ID, domain.ProfileUpdate{Location: ptr("Sydney")})
	require.NoError(t, err)
	require.Equal(t, "Sydney", updated.Location)
	require.Equal(t, "john", updated.Username)

	updated, err = h.users.UpdateProfile(ctx, u.ID, domain.ProfileUpdate{
		Username: ptr(" johnny "),
		AboutMe:  ptr("hello"),
	})
	require.NoError(t, err)
	require.Equal(t, "johnny", updated.Username)
	require.Equal(t, "Sydney", updated.Location)

	stored := h.reload(t, u)
	require.Equal(t, "johnny", stored.Username)
	require.Equal(t, "hello", stored.AboutMe)
	require.Equal(t, "Sydney", stored.Location)
}

func TestUserService_UpdateProfile_Errors(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()
	u := h.register(t)
	_, err := h.users.Create(ctx, "susan@example.com", "susan", "dog-password")
	require.NoError(t, err)

	_, err = h.users.UpdateProfile(ctx, u.ID, domain.ProfileUpdate{Username: ptr("susan")})
	require.ErrorIs(t, err, ErrDuplicateUsername)

	_, err = h.users.UpdateProfile(ctx, u.ID, domain.ProfileUpdate{})
	require.ErrorIs(t, err, ErrValidation)

	_, err = h.users.UpdateProfile(ctx, u.ID, domain.ProfileUpdate{Username: ptr("1bad")})
	require.ErrorIs(t, err, ErrValidation)

	_, err = h.users.UpdateProfile(ctx, u.ID, domain.ProfileUpdate{Location: ptr(strings.Repeat("x", 65))})
	require.ErrorIs(t, err, ErrValidation)

	_, err = h.users.UpdateProfile(ctx, "missing", domain.ProfileUpdate{Location: ptr("x")})
	require.ErrorIs(t, err, ErrUserNotFound)

	// Renaming to the current name is not a conflict.
	_, err = h.users.UpdateProfile(ctx, u.ID, domain.ProfileUpdate{Username: ptr("john")})
	require.NoError(t, err)
}

func TestUserService_TouchLastSeen(t *testing.T) {
	h := newHarness(t)
	ctx := t.Context()
	u := h.register(t)

	h.clock.Advance(time.Hour)
	h.users.TouchLastSeen(ctx, u.ID)
	require.Equal(t, h.clock.Now(), h.reload(t, u).LastSeen.UTC())

	// Unknown users are swallowed.
	h.users.TouchLastSeen(ctx, "missing")
}
