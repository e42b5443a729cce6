package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/accounts/internal/auth/domain"
	"github.com/aussiebroadwan/accounts/internal/auth/service"
	"github.com/aussiebroadwan/accounts/internal/auth/store"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"

	_ "github.com/aussiebroadwan/accounts/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	cookie       httpx.CookieOptions

	store          store.Store
	UserService    *service.UserService
	AccountService *service.AccountService
	SessionService *service.SessionService
	ResetService   *service.ResetService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	cookie httpx.CookieOptions,
	logger *slog.Logger,
) *Router {
	return &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		cookie:       cookie,
		store:        st,
	}
}

// ApplyRoutes registers every route. Services must be set first.
func (r *Router) ApplyRoutes() {
	// Access log first, then bind the principal for every request.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		SessionMiddleware(r.SessionService, r.UserService, r.cookie),
	}

	r.registerAuth()
	r.registerAPI()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Accounts Service API
//	@version		0.1.0
//	@description	Account registration, email confirmation, sessions and password reset.
//	@description
//	@description				Sessions are HS256 signed tokens carried in the "session" cookie or as a Bearer token.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/accounts
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h under pattern. Every route names its class; the
// confirmation gate runs last, after any session requirement in mws.
func (r *Router) handle(pattern string, class domain.RouteClass, h http.Handler, mws ...httpx.Middleware) {
	mws = append(mws, RequireConfirmed(r.AccountService, class))
	r.Mux.Handle(pattern, httpx.Chain(h, mws...))
}

// registerAuth wires the authentication surface. None of it is gated on
// confirmation, so unconfirmed users can still confirm, log out or reset.
func (r *Router) registerAuth() {
	session := RequireSession()

	r.handle("POST /v1/auth/register", domain.RouteAuth, &RegisterHandler{AccountService: r.AccountService})
	r.handle("POST /v1/auth/login", domain.RouteAuth, &LoginHandler{SessionService: r.SessionService, Cookie: r.cookie})
	r.handle("POST /v1/auth/logout", domain.RouteAuth, &LogoutHandler{SessionService: r.SessionService, Cookie: r.cookie})

	r.handle("GET /v1/auth/confirm/{token}", domain.RouteAuth, &ConfirmHandler{AccountService: r.AccountService}, session)
	r.handle("POST /v1/auth/confirm", domain.RouteAuth, &ResendConfirmationHandler{AccountService: r.AccountService}, session)
	r.handle("GET /v1/auth/unconfirmed", domain.RouteAuth, &UnconfirmedHandler{AccountService: r.AccountService})

	r.handle("POST /v1/auth/password", domain.RouteAuth, &ChangePasswordHandler{UserService: r.UserService}, session)
	r.handle("PATCH /v1/auth/profile", domain.RouteAuth, &UpdateProfileHandler{UserService: r.UserService}, session)

	r.handle("POST /v1/auth/reset-password", domain.RouteAuth, &ResetRequestHandler{ResetService: r.ResetService})
	r.handle("POST /v1/auth/reset-password/{token}", domain.RouteAuth, &ResetCompleteHandler{ResetService: r.ResetService})
}

// registerAPI wires the protected API. Bound but unconfirmed principals are
// turned away before the handler runs.
func (r *Router) registerAPI() {
	r.handle("GET /v1/me", domain.RouteProtected, &MeHandler{}, RequireSession())
	r.handle("GET /v1/users/{username}", domain.RouteProtected, &ProfileHandler{UserService: r.UserService})
}

// registerSystem wires probes and API docs. They stay reachable for
// everyone, confirmed or not.
func (r *Router) registerSystem() {
	r.handle("GET /livez", domain.RouteStatic, LivezHandler(r.startTime, r.buildVersion))
	r.handle("GET /readyz", domain.RouteStatic, ReadyzHandler(r.startTime, r.buildVersion, r.store))
	r.handle("/swagger/", domain.RouteStatic, httpSwagger.Handler())
}
