package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/accounts/internal/auth/domain"
	"github.com/aussiebroadwan/accounts/internal/auth/store"
	"github.com/aussiebroadwan/accounts/pkg/authsdk"
	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/aussiebroadwan/accounts/pkg/idx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// UserService owns user records and their credentials.
type UserService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *UserService) now() time.Time { return nowOr(s.Now) }

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	return u, mapUserErr(err)
}

// FindByEmail looks a user up by email, case-insensitively.
func (s *UserService) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByEmail(ctx, authsdk.NormalizeEmail(email))
	return u, mapUserErr(err)
}

// FindByUsername looks a user up by exact username.
func (s *UserService) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	return u, mapUserErr(err)
}

// Create registers a new, unconfirmed user. Inputs are expected to be
// validated already.
func (s *UserService) Create(ctx context.Context, email, username, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)
	email = authsdk.NormalizeEmail(email)
	username = strings.TrimSpace(username)

	// 1. Hash outside the transaction; argon2 is slow.
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slogx.Err(err))
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := domain.User{
		ID:           idx.NewAt(now).String(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		LastSeen:     now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 2. Pre-check uniqueness for a clean error; the schema still has the
		// final word when two registrations race.
		if _, err := tx.Users().GetUserByEmail(ctx, email); err == nil {
			return ErrDuplicateEmail
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if _, err := tx.Users().GetUserByUsername(ctx, username); err == nil {
			return ErrDuplicateUsername
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		// 3. Insert.
		return tx.Users().CreateUser(ctx, user)
	})
	if err != nil {
		err = mapUserErr(err)
		switch {
		case errors.Is(err, ErrDuplicateEmail):
			log.Info("registration with a taken email")
		case errors.Is(err, ErrDuplicateUsername):
			log.Info("registration with a taken username", slog.String("username", username))
		default:
			log.Error("failed to create user", slogx.Err(err))
			err = fmt.Errorf("create user: %w", err)
		}
		return domain.User{}, err
	}

	log.Info("user created", slog.String("user_id", user.ID))
	return user, nil
}

// VerifyPassword reports whether password matches the user's stored hash.
func (s *UserService) VerifyPassword(user domain.User, password string) bool {
	if user.PasswordHash == "" {
		return false
	}
	return cryptox.VerifyPassword(password, user.PasswordHash) == nil
}

// SetPassword replaces the user's password. Existing sessions stay valid.
func (s *UserService) SetPassword(ctx context.Context, userID, password string) error {
	log := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slogx.Err(err))
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().UpdatePasswordHash(ctx, userID, hash, s.now())
	})
	if err != nil {
		err = mapUserErr(err)
		if !errors.Is(err, ErrUserNotFound) {
			log.Error("failed to update password", slog.String("user_id", userID), slogx.Err(err))
			err = fmt.Errorf("update password: %w", err)
		}
		return err
	}

	log.Info("password updated", slog.String("user_id", userID))
	return nil
}

// ChangePassword replaces the bound user's password after checking the
// current one.
func (s *UserService) ChangePassword(ctx context.Context, p domain.Principal, oldPassword, newPassword string) error {
	if p.IsAnonymous() {
		return ErrAuthenticationRequired
	}

	// 1. Validate before touching anything.
	req := authsdk.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	if errs := req.Validate(); len(errs) > 0 {
		return validationError(errs)
	}

	// 2. Reload so the check runs against the current hash.
	user, err := s.GetUserByID(ctx, p.UserID())
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrAuthenticationRequired
		}
		return err
	}

	if !s.VerifyPassword(user, oldPassword) {
		slogx.FromContext(ctx).Info("password change with a wrong current password",
			slog.String("user_id", user.ID),
		)
		return ErrInvalidCredentials
	}

	return s.SetPassword(ctx, user.ID, newPassword)
}

// UpdateProfile applies a partial profile update and returns the result.
// Concurrent updates are last write wins.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd domain.ProfileUpdate) (domain.User, error) {
	log := slogx.FromContext(ctx)

	req := authsdk.UpdateProfileRequest{Username: upd.Username, Location: upd.Location, AboutMe: upd.AboutMe}
	if errs := req.Validate(); len(errs) > 0 {
		return domain.User{}, validationError(errs)
	}
	if upd.Username != nil {
		name := strings.TrimSpace(*upd.Username)
		upd.Username = &name
	}

	var updated domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return err
		}

		next := upd.Apply(current)
		if next.Username != current.Username {
			if _, err := tx.Users().GetUserByUsername(ctx, next.Username); err == nil {
				return ErrDuplicateUsername
			} else if !errors.Is(err, store.ErrNotFound) {
				return err
			}
		}

		now := s.now()
		if err := tx.Users().UpdateProfile(ctx, next, now); err != nil {
			return err
		}
		next.UpdatedAt = now
		updated = next
		return nil
	})
	if err != nil {
		err = mapUserErr(err)
		if !errors.Is(err, ErrUserNotFound) && !errors.Is(err, ErrDuplicateUsername) {
			log.Error("failed to update profile", slog.String("user_id", userID), slogx.Err(err))
			err = fmt.Errorf("update profile: %w", err)
		}
		return domain.User{}, err
	}

	log.Info("profile updated", slog.String("user_id", userID))
	return updated, nil
}

// TouchLastSeen records activity. Failures are logged and swallowed.
func (s *UserService) TouchLastSeen(ctx context.Context, userID string) {
	err := s.Store.Users().TouchLastSeen(ctx, userID, s.now())
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to update last_seen",
			slog.String("user_id", userID),
			slogx.Err(err),
		)
	}
}

// mapUserErr turns store sentinels into service ones.
func mapUserErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrUserNotFound
	case errors.Is(err, store.ErrEmailTaken):
		return ErrDuplicateEmail
	case errors.Is(err, store.ErrUsernameTaken):
		return ErrDuplicateUsername
	default:
		return err
	}
}
