package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretSize is the smallest HMAC key we accept (256 bits).
const MinSecretSize = 32

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// HS256Signer signs tokens with a shared process-wide secret.
type HS256Signer struct {
	key []byte
}

// NewSignerHS256 creates an HS256 signer. The secret must be at least
// MinSecretSize bytes.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) < MinSecretSize {
		return nil, errors.New("jwtx: HMAC secret too short")
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &HS256Signer{key: key}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign takes your claims and turns them into a signed compact JWT. The output
// only uses base64url characters and dots so it can go straight into a URL.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}
