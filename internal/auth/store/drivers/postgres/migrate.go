package postgres

import (
	"github.com/golang-migrate/migrate/v4/database/pgx/v5"

	"github.com/aussiebroadwan/accounts/internal/auth/store"
	"github.com/aussiebroadwan/accounts/internal/auth/store/drivers/postgres/migrations"
)

// ApplyMigrations brings the users schema up to date.
func (s *Store) ApplyMigrations() error {
	driver, err := pgx.WithInstance(s.db, &pgx.Config{})
	if err != nil {
		return err
	}
	return store.Migrate(migrations.Migrations, "pgx", driver)
}
