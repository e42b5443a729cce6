package sqlite

import (
	"github.com/golang-migrate/migrate/v4/database/sqlite"

	"github.com/aussiebroadwan/accounts/internal/auth/store"
	"github.com/aussiebroadwan/accounts/internal/auth/store/drivers/sqlite/migrations"
)

// ApplyMigrations brings the users schema up to date.
func (s *Store) ApplyMigrations() error {
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return err
	}
	return store.Migrate(migrations.Migrations, "sqlite", driver)
}
