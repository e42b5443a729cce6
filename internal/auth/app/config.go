package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/aussiebroadwan/accounts/internal/auth/notify"
)

type Config struct {
	Issuer string `env:"AUTH_ISSUER" envDefault:"accounts"` // Issuer claim for signed tokens

	DatabaseDriver string `env:"AUTH_DATABASE_DRIVER" envDefault:"sqlite"`         // sqlite or postgres
	DatabaseFile   string `env:"AUTH_DATABASE_FILE" envDefault:"auth.db"`          // SQLite file (sqlite driver)
	DatabaseURL    string `env:"AUTH_DATABASE_URL"`                                // Postgres DSN (postgres driver)
	PepperFile     string `env:"AUTH_PEPPER_FILE" envDefault:"pepper"`             // Pepper for password hashing, generated when missing
	SecretFile     string `env:"AUTH_SECRET_FILE" envDefault:"secret"`             // Token signing secret, generated when missing
	BaseURL        string `env:"AUTH_BASE_URL" envDefault:"http://localhost:8080"` // Prefix for links in mails

	ConfirmTTL   time.Duration `env:"AUTH_CONFIRM_TTL" envDefault:"1h"`
	ResetTTL     time.Duration `env:"AUTH_RESET_TTL" envDefault:"1h"`
	SessionTTL   time.Duration `env:"AUTH_SESSION_TTL" envDefault:"12h"`
	RememberTTL  time.Duration `env:"AUTH_REMEMBER_TTL" envDefault:"720h"`
	CookieSecure bool          `env:"AUTH_COOKIE_SECURE" envDefault:"false"`

	MailTransport string `env:"MAIL_TRANSPORT" envDefault:"log"` // log or smtp
	SMTP          notify.SMTPConfig

	Env                 string        `env:"ENV" envDefault:"dev"`         // dev, staging, prod
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`  // debug, info, warn, error
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"json"` // json, text
	Port                int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

// LoadConfig reads the configuration from the environment and validates it.
func LoadConfig() (Config, error) {
	return loadConfig(env.Options{})
}

// loadConfig parses with opts; tests pass an explicit Environment.
func loadConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enums and that the selected backends are fully configured.
func (c Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case "sqlite":
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("AUTH_DATABASE_FILE is required for the sqlite driver"))
		}
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("AUTH_DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("AUTH_DATABASE_DRIVER must be sqlite or postgres, got %q", c.DatabaseDriver))
	}

	switch c.MailTransport {
	case "log":
	case "smtp":
		if err := c.SMTP.Validate(); err != nil {
			errs = append(errs, err)
		}
	default:
		errs = append(errs, fmt.Errorf("MAIL_TRANSPORT must be log or smtp, got %q", c.MailTransport))
	}

	for name, d := range map[string]time.Duration{
		"AUTH_CONFIRM_TTL":  c.ConfirmTTL,
		"AUTH_RESET_TTL":    c.ResetTTL,
		"AUTH_SESSION_TTL":  c.SessionTTL,
		"AUTH_REMEMBER_TTL": c.RememberTTL,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", name))
		}
	}

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}

	return errors.Join(errs...)
}
