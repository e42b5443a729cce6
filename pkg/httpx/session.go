package httpx

import (
	"net/http"
	"strings"
	"time"
)

// CookieOptions controls how the session cookie is written.
type CookieOptions struct {
	Name   string
	Path   string
	Secure bool
}

func (o CookieOptions) name() string {
	if o.Name == "" {
		return "session"
	}
	return o.Name
}

func (o CookieOptions) path() string {
	if o.Path == "" {
		return "/"
	}
	return o.Path
}

// SessionToken extracts the session token from the request. The cookie wins
// over the Authorization header so browser sessions behave predictably; API
// clients send "Authorization: Bearer <token>" instead.
func SessionToken(r *http.Request, opts CookieOptions) string {
	if c, err := r.Cookie(opts.name()); err == nil && c.Value != "" {
		return c.Value
	}

	authz := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(authz, "Bearer "); ok {
		return strings.TrimSpace(after)
	}

	return ""
}

// SetSessionCookie writes the session cookie. Only persistent sessions get an
// Expires attribute; others live until the browser is closed.
func SetSessionCookie(w http.ResponseWriter, opts CookieOptions, token string, expires time.Time, persistent bool) {
	c := &http.Cookie{
		Name:     opts.name(),
		Value:    token,
		Path:     opts.path(),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if persistent {
		c.Expires = expires.UTC()
		c.MaxAge = int(time.Until(expires).Seconds())
		if c.MaxAge <= 0 {
			c.MaxAge = -1
		}
	}
	http.SetCookie(w, c)
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(w http.ResponseWriter, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     opts.name(),
		Value:    "",
		Path:     opts.path(),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

// SetBearerChallenge adds the RFC 6750 challenge header. Callers still write
// the 401 body themselves.
func SetBearerChallenge(w http.ResponseWriter, realm string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="`+realm+`"`)
}
