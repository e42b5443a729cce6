package postgres

import (
	"context"
	"database/sql"
	"time"
)

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

func (q *queries) GetUserByID(ctx context.Context, id string) (userRow, error) {
	return scanUser(q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (q *queries) GetUserByEmail(ctx context.Context, email string) (userRow, error) {
	return scanUser(q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
}

func (q *queries) GetUserByUsername(ctx context.Context, username string) (userRow, error) {
	return scanUser(q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

const createUser = `
INSERT INTO users (id, email, username, password_hash, confirmed, location, about_me, created_at, last_seen, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8, $8)`

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
	)
	return err
}

func (q *queries) UpdateUserPasswordHash(ctx context.Context, hash string, at time.Time, id string) (int64, error) {
	return q.exec(ctx, `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`, hash, at, id)
}

func (q *queries) MarkUserConfirmed(ctx context.Context, at time.Time, id string) (int64, error) {
	return q.exec(ctx, `UPDATE users SET confirmed = TRUE, updated_at = $1 WHERE id = $2`, at, id)
}

func (q *queries) UpdateUserProfile(ctx context.Context, username, location, aboutMe string, at time.Time, id string) (int64, error) {
	return q.exec(ctx,
		`UPDATE users SET username = $1, location = $2, about_me = $3, updated_at = $4 WHERE id = $5`,
		username, location, aboutMe, at, id)
}

func (q *queries) TouchUserLastSeen(ctx context.Context, at time.Time, id string) (int64, error) {
	return q.exec(ctx, `UPDATE users SET last_seen = GREATEST(last_seen, $1) WHERE id = $2`, at, id)
}

func (q *queries) DeleteUser(ctx context.Context, id string) (int64, error) {
	return q.exec(ctx, `DELETE FROM users WHERE id = $1`, id)
}

func (q *queries) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
