package sqlite_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/internal/auth/domain"
	"github.com/aussiebroadwan/accounts/internal/auth/store"
	"github.com/aussiebroadwan/accounts/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/accounts/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	return st
}

func newUser(email, username string, at time.Time) domain.User {
	return domain.User{
		ID:           idx.NewAt(at).String(),
		Email:        email,
		Username:     username,
		PasswordHash: "$argon2id$dummy",
		CreatedAt:    at,
	}
}

func TestUsers_CreateAndGet(t *testing.T) {
	st := newTestStore(t)
	ctx := t.Context()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	u := newUser("ada@example.com", "ada", now)
	require.NoError(t, st.Users().CreateUser(ctx, u))

	byID, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", byID.Email)
	require.Equal(t, "ada", byID.Username)
	require.False(t, byID.Confirmed)
	require.True(t, now.Equal(byID.CreatedAt))
	require.True(t, now.Equal(byID.LastSeen))

	byEmail, err := st.Users().GetUserByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	byName, err := st.Users().GetUserByUsername(ctx, "ada")
	require.NoError(t, err)
	require.Equal(t, u.ID, byName.ID)

	_, err = st.Users().GetUserByUsername(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsers_UniqueConstraints(t *testing.T) {
	st := newTestStore(t)
	ctx := t.Context()
	now := time.Now().UTC()

	require.NoError(t, st.Users().CreateUser(ctx, newUser("ada@example.com", "ada", now)))

	err := st.Users().CreateUser(ctx, newUser("Ada@Example.com", "someone", now))
	require.ErrorIs(t, err, store.ErrEmailTaken)

	err = st.Users().CreateUser(ctx, newUser("other@example.com", "ada", now))
	require.ErrorIs(t, err, store.ErrUsernameTaken)

	grace := newUser("grace@example.com", "grace", now)
	require.NoError(t, st.Users().CreateUser(ctx, grace))

	grace.Username = "ada"
	err = st.Users().UpdateProfile(ctx, grace, now)
	require.ErrorIs(t, err, store.ErrUsernameTaken)
}

func TestUsers_Updates(t *testing.T) {
	st := newTestStore(t)
	ctx := t.Context()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	u := newUser("ada@example.com", "ada", now)
	require.NoError(t, st.Users().CreateUser(ctx, u))

	require.NoError(t, st.Users().MarkConfirmed(ctx, u.ID, now.Add(time.Minute)))
	require.NoError(t, st.Users().UpdatePasswordHash(ctx, u.ID, "$argon2id$new", now.Add(2*time.Minute)))

	u.Username = "ada.l"
	u.Location = "London"
	u.AboutMe = "Analytical engines"
	require.NoError(t, st.Users().UpdateProfile(ctx, u, now.Add(3*time.Minute)))

	got, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.Confirmed)
	require.Equal(t, "$argon2id$new", got.PasswordHash)
	require.Equal(t, "ada.l", got.Username)
	require.Equal(t, "London", got.Location)
	require.Equal(t, "Analytical engines", got.AboutMe)
	require.True(t, now.Add(3*time.Minute).Equal(got.UpdatedAt))

	require.ErrorIs(t, st.Users().MarkConfirmed(ctx, "missing", now), store.ErrNotFound)
}

func TestUsers_TouchLastSeenIsMonotonic(t *testing.T) {
	st := newTestStore(t)
	ctx := t.Context()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	u := newUser("ada@example.com", "ada", now)
	require.NoError(t, st.Users().CreateUser(ctx, u))

	later := now.Add(90 * time.Minute).Add(500 * time.Millisecond)
	require.NoError(t, st.Users().TouchLastSeen(ctx, u.ID, later))
	require.NoError(t, st.Users().TouchLastSeen(ctx, u.ID, now.Add(time.Minute)))

	got, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, later.Equal(got.LastSeen), "got %s", got.LastSeen)
}

func TestWithTx_RollbackOnError(t *testing.T) {
	st := newTestStore(t)
	ctx := t.Context()
	now := time.Now().UTC()

	u := newUser("ada@example.com", "ada", now)
	err := st.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Users().CreateUser(ctx, u))
		return store.ErrEmailTaken
	})
	require.ErrorIs(t, err, store.ErrEmailTaken)

	_, err = st.Users().GetUserByID(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, u)
	}))
	_, err = st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
}

func TestWithTx_NoNesting(t *testing.T) {
	st := newTestStore(t)
	ctx := t.Context()

	err := st.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Tx(ctx)
		require.ErrorIs(t, err, store.ErrNestedTx)
		return tx.WithTx(ctx, func(store.Tx) error { return nil })
	})
	require.ErrorIs(t, err, store.ErrNestedTx)
}

func TestDeleteUser(t *testing.T) {
	st := newTestStore(t)
	ctx := t.Context()

	u := newUser("ada@example.com", "ada", time.Now().UTC())
	require.NoError(t, st.Users().CreateUser(ctx, u))
	require.NoError(t, st.Users().DeleteUser(ctx, u.ID))
	require.ErrorIs(t, st.Users().DeleteUser(ctx, u.ID), store.ErrNotFound)
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.Ping(t.Context()))
}
