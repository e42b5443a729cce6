package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/auth/domain"
	"github.com/aussiebroadwan/accounts/internal/auth/service"
	"github.com/aussiebroadwan/accounts/pkg/authsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// SessionMiddleware binds the request to a principal. A missing or bad
// session token leaves the request anonymous; it never fails the request on
// its own. Bound requests record activity before the handler runs.
func SessionMiddleware(sessions *service.SessionService, users *service.UserService, cookie httpx.CookieOptions) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			p, err := sessions.Resolve(ctx, httpx.SessionToken(r, cookie))
			if err != nil {
				slogx.FromContext(ctx).Error("failed to resolve session", slogx.Err(err))
				authsdk.ErrServerError.WriteError(w)
				return
			}

			if !p.IsAnonymous() {
				ctx = slogx.With(ctx, "user_id", p.UserID())
				users.TouchLastSeen(ctx, p.UserID())
			}

			r = r.WithContext(domain.WithPrincipal(ctx, p))
			slogx.CaptureRequest(w, r)
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession rejects anonymous requests with 401.
func RequireSession() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if domain.PrincipalFromContext(r.Context()).IsAnonymous() {
				httpx.SetBearerChallenge(w, "accounts")
				authsdk.ErrAuthenticationRequired.WriteError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireConfirmed applies the confirmation gate for routes of class rc.
// Blocked requests get 403 with a pointer to the unconfirmed status page.
func RequireConfirmed(accounts *service.AccountService, rc domain.RouteClass) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := accounts.Gate(domain.PrincipalFromContext(r.Context()), rc)
			if errors.Is(err, service.ErrConfirmationRequired) {
				slogx.FromContext(r.Context()).Info("request blocked until account is confirmed",
					slog.String("route_class", rc.String()),
				)
				w.Header().Set("Location", "/v1/auth/unconfirmed")
				authsdk.ErrConfirmationRequired.WriteError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
