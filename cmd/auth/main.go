// Command auth serves the accounts API: registration, confirmation, sessions
// and password resets.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aussiebroadwan/accounts/internal/auth/app"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

func main() {
	if err := run(); err != nil {
		slog.Error("accounts service stopped", slogx.Err(err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}
	return application.Run()
}
