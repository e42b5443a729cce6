package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/accounts/internal/auth/domain"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// LoginInput is what a user submits to sign in.
type LoginInput struct {
	Email    string
	Password string
	Remember bool
}

// Session is an established login.
type Session struct {
	Principal  domain.Principal
	Token      string
	ExpiresAt  time.Time
	Persistent bool
}

// SessionService binds requests to users through signed session tokens.
// Nothing is stored server-side; logging out is the client dropping the
// token.
type SessionService struct {
	Users  *UserService
	Tokens *TokenService
}

// Login checks credentials and mints a session. Every failure, unknown
// email included, is ErrInvalidCredentials.
func (s *SessionService) Login(ctx context.Context, in LoginInput) (Session, error) {
	log := slogx.FromContext(ctx)

	if in.Email == "" || in.Password == "" {
		return Session{}, ErrInvalidCredentials
	}

	user, err := s.Users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Info("login failed")
			return Session{}, ErrInvalidCredentials
		}
		log.Error("failed to look up user for login", slogx.Err(err))
		return Session{}, err
	}

	if !s.Users.VerifyPassword(user, in.Password) {
		log.Info("login failed", slog.String("user_id", user.ID))
		return Session{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.Tokens.IssueSession(ctx, user.ID, in.Remember)
	if err != nil {
		return Session{}, err
	}

	log.Info("login succeeded",
		slog.String("user_id", user.ID),
		slog.Bool("remember", in.Remember),
	)
	return Session{
		Principal:  domain.Bound(user),
		Token:      token,
		ExpiresAt:  expiresAt,
		Persistent: in.Remember,
	}, nil
}

// Resolve turns a session token into a principal. Anything wrong with the
// token, or a user that no longer exists, yields the anonymous principal.
func (s *SessionService) Resolve(ctx context.Context, token string) (domain.Principal, error) {
	if token == "" {
		return domain.Anonymous(), nil
	}

	subject, err := s.Tokens.Verify(ctx, token, domain.PurposeSession)
	if err != nil {
		return domain.Anonymous(), nil
	}

	user, err := s.Users.GetUserByID(ctx, subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return domain.Anonymous(), nil
		}
		return domain.Anonymous(), err
	}

	return domain.Bound(user), nil
}

// Logout ends the principal's session. It is idempotent.
func (s *SessionService) Logout(ctx context.Context, p domain.Principal) {
	if p.IsAnonymous() {
		return
	}
	slogx.FromContext(ctx).Info("logout", slog.String("user_id", p.UserID()))
}

// Current returns the principal bound to ctx.
func (s *SessionService) Current(ctx context.Context) domain.Principal {
	return domain.PrincipalFromContext(ctx)
}
