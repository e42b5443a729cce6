package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Timestamps carry milliseconds so a lifetime is enforced from the moment of
// issue rather than from the start of that second. Fractional NumericDates
// are valid per RFC 7519 and parse in any conforming library.
func init() {
	jwt.TimePrecision = time.Millisecond
}

// Claims are the claims carried by every token we mint. Purpose keeps tokens
// minted for one flow (e.g. account confirmation) from being accepted by
// another (e.g. password reset or sessions).
type Claims struct {
	jwt.RegisteredClaims

	// Purpose tag, e.g. "confirm", "reset" or "session".
	Purpose string `json:"purpose"`

	// Remember marks a session token issued with the extended lifetime.
	Remember bool `json:"rem,omitempty"`
}

// NewClaims builds minimally-correct claims for subject and purpose, valid
// from now until now+ttl.
func NewClaims(subject, purpose string, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Purpose: purpose,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidatePurpose checks the purpose tag matches exactly.
func (c *Claims) ValidatePurpose(expected string) error {
	if c.Purpose != expected {
		return ErrPurpose
	}
	return nil
}

// ValidateExpiryAt checks now against the validity window. A token is still
// good at the exact instant of exp and expired strictly after it. leeway
// widens the window on both ends.
func (c *Claims) ValidateExpiryAt(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}

	if now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}
