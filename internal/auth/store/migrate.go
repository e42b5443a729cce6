package store

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrate runs every pending up migration in files against driver. Drivers
// embed their own migration directory since the SQL dialects differ. An
// already current schema is not an error.
func Migrate(files fs.FS, dbName string, driver database.Driver) error {
	src, err := iofs.New(files, ".")
	if err != nil {
		return fmt.Errorf("store: open migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, dbName, driver)
	if err != nil {
		return fmt.Errorf("store: init migrate: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("store: migrate %s: %w", dbName, err)
	}
	return nil
}
