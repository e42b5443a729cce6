package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/accounts/internal/auth/domain"
	"github.com/aussiebroadwan/accounts/internal/auth/store"
)

type usersRepo struct {
	q *queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row, err := r.q.GetUserByUsername(ctx, username)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	err := r.q.CreateUser(ctx, createUserParams{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Confirmed:    u.Confirmed,
		Location:     u.Location,
		AboutMe:      u.AboutMe,
		CreatedAt:    u.CreatedAt.UTC(),
	})
	return mapUnique(err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string, at time.Time) error {
	n, err := r.q.UpdateUserPasswordHash(ctx, newHash, at.UTC(), userID)
	return affected(n, err)
}

func (r *usersRepo) MarkConfirmed(ctx context.Context, userID string, at time.Time) error {
	n, err := r.q.MarkUserConfirmed(ctx, at.UTC(), userID)
	return affected(n, err)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, u domain.User, at time.Time) error {
	n, err := r.q.UpdateUserProfile(ctx, u.Username, u.Location, u.AboutMe, at.UTC(), u.ID)
	return affected(n, mapUnique(err))
}

func (r *usersRepo) TouchLastSeen(ctx context.Context, userID string, at time.Time) error {
	n, err := r.q.TouchUserLastSeen(ctx, at.UTC(), userID)
	return affected(n, err)
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	n, err := r.q.DeleteUser(ctx, userID)
	return affected(n, err)
}

// affected reports ErrNotFound when an update matched no rows.
func affected(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapUser(row userRow) domain.User {
	u := domain.User{
		ID:           row.ID,
		Email:        row.Email,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		Confirmed:    row.Confirmed,
		Location:     row.Location,
		AboutMe:      row.AboutMe,
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
	}
	if row.LastSeen.Valid {
		u.LastSeen = row.LastSeen.Time.UTC()
	}
	return u
}
