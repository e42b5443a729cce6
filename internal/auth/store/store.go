package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/accounts/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrEmailTaken    = errors.New("store: email already exists")
	ErrUsernameTaken = errors.New("store: username already exists")

	// ErrNestedTx is returned when a transaction-scoped store is asked to
	// begin another transaction.
	ErrNestedTx = errors.New("store: nested transactions are not supported")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and so a Tx can't start another transaction.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches case-insensitively; emails are stored lower-cased.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByUsername is used for public profiles.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID). Unique
	// violations come back as ErrEmailTaken or ErrUsernameTaken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string, at time.Time) error

	// MarkConfirmed sets confirmed and bumps updated_at. It never clears it.
	MarkConfirmed(ctx context.Context, userID string, at time.Time) error

	// UpdateProfile writes username, location and about_me. A taken username
	// comes back as ErrUsernameTaken.
	UpdateProfile(ctx context.Context, u domain.User, at time.Time) error

	// TouchLastSeen moves last_seen forward to at; it never moves it back.
	TouchLastSeen(ctx context.Context, userID string, at time.Time) error

	// DeleteUser removes a user. No service operation deletes accounts; it
	// exists so tests can model a user vanishing under a live session.
	DeleteUser(ctx context.Context, userID string) error
}
