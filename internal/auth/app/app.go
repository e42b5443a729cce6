package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/accounts/internal/auth/http"
	"github.com/aussiebroadwan/accounts/internal/auth/notify"
	"github.com/aussiebroadwan/accounts/internal/auth/service"
	"github.com/aussiebroadwan/accounts/internal/auth/store"
	"github.com/aussiebroadwan/accounts/internal/auth/store/drivers/postgres"
	"github.com/aussiebroadwan/accounts/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// BuildVersion is overridden at build time with
// -ldflags "-X github.com/aussiebroadwan/accounts/internal/auth/app.BuildVersion=...".
var BuildVersion = "v0.1.0"

// Application encapsulates the accounts service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	mailer notify.Sender

	// Services
	tokenService   *service.TokenService
	userService    *service.UserService
	accountService *service.AccountService
	sessionService *service.SessionService
	resetService   *service.ResetService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "accounts",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(context.Background()); err != nil {
		return nil, err
	}

	app.initMailer()

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("accounts service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down accounts service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("accounts service stopped")
	return nil
}

// initDatabase opens the configured driver and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.DatabaseDriver {
	case "postgres":
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	default:
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
		db, err = sqlite.NewStore(dsn)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

func (app *Application) initMailer() {
	if app.cfg.MailTransport == "smtp" {
		app.mailer = notify.NewSMTPSender(app.cfg.SMTP)
		app.logger.Info("mail transport: smtp", "host", app.cfg.SMTP.Host)
		return
	}
	app.mailer = &notify.LogSender{W: os.Stdout}
	app.logger.Info("mail transport: log")
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	secret, err := cryptox.LoadOrGenerateSecret(app.cfg.SecretFile)
	if err != nil {
		return fmt.Errorf("failed to load token secret: %w", err)
	}

	app.tokenService, err = service.NewTokenService(
		cryptox.DecodeSecret(secret),
		app.cfg.Issuer,
		service.TokenTTLs{
			Confirm:  app.cfg.ConfirmTTL,
			Reset:    app.cfg.ResetTTL,
			Session:  app.cfg.SessionTTL,
			Remember: app.cfg.RememberTTL,
		},
		time.Now,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	app.userService = &service.UserService{Store: app.db, Now: time.Now}
	app.accountService = &service.AccountService{
		Store:   app.db,
		Users:   app.userService,
		Tokens:  app.tokenService,
		Mailer:  app.mailer,
		BaseURL: app.cfg.BaseURL,
	}
	app.sessionService = &service.SessionService{
		Users:  app.userService,
		Tokens: app.tokenService,
	}
	app.resetService = &service.ResetService{
		Users:   app.userService,
		Tokens:  app.tokenService,
		Mailer:  app.mailer,
		BaseURL: app.cfg.BaseURL,
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		httpx.CookieOptions{Secure: app.cfg.CookieSecure},
		app.logger,
	)

	// Wire services to router
	router.UserService = app.userService
	router.AccountService = app.accountService
	router.SessionService = app.sessionService
	router.ResetService = app.resetService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
