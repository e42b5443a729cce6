package sqlite

import (
	"context"
	"database/sql"
	"time"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	db dbtx
}

type userRow struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	Confirmed    bool
	Location     string
	AboutMe      string
	CreatedAt    time.Time
	LastSeen     sql.NullTime
	UpdatedAt    time.Time
}

const userColumns = `id, email, username, password_hash, confirmed, location, about_me, created_at, last_seen, updated_at`

func scanUser(row *sql.Row) (userRow, error) {
	var u userRow
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.Confirmed,
		&u.Location,
		&u.AboutMe,
		&u.CreatedAt,
		&u.LastSeen,
		&u.UpdatedAt,
	)
	return u, err
}

const getUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = ?`

func (q *queries) GetUserByID(ctx context.Context, id string) (userRow, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByID, id))
}

const getUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE email = ? COLLATE NOCASE`

func (q *queries) GetUserByEmail(ctx context.Context, email string) (userRow, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByEmail, email))
}

const getUserByUsername = `SELECT ` + userColumns + ` FROM users WHERE username = ?`

func (q *queries) GetUserByUsername(ctx context.Context, username string) (userRow, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByUsername, username))
}

const createUser = `
INSERT INTO users (id, email, username, password_hash, confirmed, location, about_me, created_at, last_seen, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

type createUserParams struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	Confirmed    bool
	Location     string
	AboutMe      string
	CreatedAt    time.Time
}

func (q *queries) CreateUser(ctx context.Context, arg createUserParams) error {
	_, err := q.db.ExecContext(ctx, createUser,
		arg.ID,
		arg.Email,
		arg.Username,
		arg.PasswordHash,
		arg.Confirmed,
		arg.Location,
		arg.AboutMe,
		arg.CreatedAt,
		arg.CreatedAt,
		arg.CreatedAt,
	)
	return err
}

const updateUserPasswordHash = `UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`

func (q *queries) UpdateUserPasswordHash(ctx context.Context, hash string, at time.Time, id string) (int64, error) {
	return q.exec(ctx, updateUserPasswordHash, hash, at, id)
}

const markUserConfirmed = `UPDATE users SET confirmed = 1, updated_at = ? WHERE id = ?`

func (q *queries) MarkUserConfirmed(ctx context.Context, at time.Time, id string) (int64, error) {
	return q.exec(ctx, markUserConfirmed, at, id)
}

const updateUserProfile = `
UPDATE users SET username = ?, location = ?, about_me = ?, updated_at = ?
WHERE id = ?`

func (q *queries) UpdateUserProfile(ctx context.Context, username, location, aboutMe string, at time.Time, id string) (int64, error) {
	return q.exec(ctx, updateUserProfile, username, location, aboutMe, at, id)
}

// Timestamps are written in UTC with a fixed layout, so MAX over the text
// form orders them chronologically.
const touchUserLastSeen = `UPDATE users SET last_seen = MAX(COALESCE(last_seen, ''), ?) WHERE id = ?`

func (q *queries) TouchUserLastSeen(ctx context.Context, at time.Time, id string) (int64, error) {
	return q.exec(ctx, touchUserLastSeen, at, id)
}

const deleteUser = `DELETE FROM users WHERE id = ?`

func (q *queries) DeleteUser(ctx context.Context, id string) (int64, error) {
	return q.exec(ctx, deleteUser, id)
}

func (q *queries) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
