package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: "accounts",
		},
	}

	t.Run("matching issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer("accounts"))
	})

	t.Run("empty expected issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer(""))
	})

	t.Run("mismatched issuer", func(t *testing.T) {
		err := c.ValidateIssuer("billing-service")
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})
}

func TestValidatePurpose(t *testing.T) {
	c := &jwtx.Claims{Purpose: "confirm"}

	require.NoError(t, c.ValidatePurpose("confirm"))
	require.ErrorIs(t, c.ValidatePurpose("reset"), jwtx.ErrPurpose)
	require.ErrorIs(t, c.ValidatePurpose(""), jwtx.ErrPurpose)
}

func TestValidateExpiryAt(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}}

	tests := []struct {
		name   string
		at     time.Time
		leeway time.Duration
		want   error
	}{
		{name: "inside window", at: now.Add(30 * time.Minute)},
		{name: "exactly at exp", at: now.Add(time.Hour)},
		{name: "just past exp", at: now.Add(time.Hour + time.Millisecond), want: jwtx.ErrExpired},
		{name: "past exp within leeway", at: now.Add(time.Hour + time.Second), leeway: 2 * time.Second},
		{name: "before nbf", at: now.Add(-time.Second), want: jwtx.ErrNotYetValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.ValidateExpiryAt(tt.at, tt.leeway)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}

	require.ErrorIs(t, (&jwtx.Claims{}).ValidateExpiryAt(now, 0), jwtx.ErrInvalidClaim)
}

func TestNewClaims(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := jwtx.NewClaims("42", "reset", time.Hour, "accounts", now)

	require.Equal(t, "42", c.Subject)
	require.Equal(t, "reset", c.Purpose)
	require.Equal(t, "accounts", c.Issuer)
	require.Equal(t, now.Add(time.Hour).Unix(), c.ExpiresAt.Unix())
	require.NotEmpty(t, c.ID)
	require.NotEqual(t, c.ID, jwtx.NewJTI())
}
