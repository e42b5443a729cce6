package domain

import "context"

// Principal is the identity a request acts as. The zero value is the
// anonymous principal.
type Principal struct {
	user *User
}

// Anonymous returns the unauthenticated principal.
func Anonymous() Principal { return Principal{} }

// Bound returns a principal acting as u.
func Bound(u User) Principal { return Principal{user: &u} }

// IsAnonymous reports whether no user is bound.
func (p Principal) IsAnonymous() bool { return p.user == nil }

// User returns the bound user and true, or false for anonymous.
func (p Principal) User() (User, bool) {
	if p.user == nil {
		return User{}, false
	}
	return *p.user, true
}

// UserID returns the bound user's id, or "" for anonymous.
func (p Principal) UserID() string {
	if p.user == nil {
		return ""
	}
	return p.user.ID
}

// Confirmed reports whether a bound user has confirmed their email.
func (p Principal) Confirmed() bool {
	return p.user != nil && p.user.Confirmed
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal in ctx, or anonymous.
func PrincipalFromContext(ctx context.Context) Principal {
	p, _ := ctx.Value(principalKey{}).(Principal)
	return p
}
