package domain

import "time"

// TokenPurpose scopes a signed token to one flow. A token minted for one
// purpose is never accepted for another.
type TokenPurpose string

const (
	PurposeConfirm TokenPurpose = "confirm"
	PurposeReset   TokenPurpose = "reset"
	PurposeSession TokenPurpose = "session"
)

// Valid reports whether p is a known purpose.
func (p TokenPurpose) Valid() bool {
	switch p {
	case PurposeConfirm, PurposeReset, PurposeSession:
		return true
	}
	return false
}

// ActionToken is the decoded content of a verified token.
type ActionToken struct {
	Subject   string
	Purpose   TokenPurpose
	IssuedAt  time.Time
	ExpiresAt time.Time
	Remember  bool
}
