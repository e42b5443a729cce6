package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/aussiebroadwan/accounts/internal/auth/domain"
	"github.com/aussiebroadwan/accounts/internal/auth/notify"
	"github.com/aussiebroadwan/accounts/internal/auth/store"
	"github.com/aussiebroadwan/accounts/pkg/authsdk"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

const (
	ConfirmPath = "/v1/auth/confirm/"
	ResetPath   = "/v1/auth/reset-password/"
)

// ConfirmOutcome is the result of following a confirmation link.
type ConfirmOutcome string

const (
	OutcomeConfirmed        ConfirmOutcome = "confirmed"
	OutcomeAlreadyConfirmed ConfirmOutcome = "already_confirmed"
)

// UnconfirmedStatus drives the "please confirm your account" page.
type UnconfirmedStatus string

const (
	StatusAnonymous   UnconfirmedStatus = "anonymous"
	StatusConfirmed   UnconfirmedStatus = "confirmed"
	StatusUnconfirmed UnconfirmedStatus = "unconfirmed"
)

// RegisterInput is what a new user submits.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// AccountService moves accounts from unconfirmed to confirmed and gates
// unconfirmed users away from the rest of the API.
type AccountService struct {
	Store  store.Store
	Users  *UserService
	Tokens *TokenService
	Mailer notify.Sender

	// BaseURL prefixes links put in mails, e.g. "https://accounts.example.com".
	BaseURL string
}

// Register validates input, creates the user and mails a confirmation link.
// Mail failures are logged and do not fail the registration.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	// 1. Validate before any mutation.
	req := authsdk.RegisterRequest{Email: in.Email, Username: in.Username, Password: in.Password}
	req.Normalize()
	if errs := req.Validate(); len(errs) > 0 {
		return domain.User{}, validationError(errs)
	}

	// 2. Persist.
	user, err := s.Users.Create(ctx, req.Email, req.Username, req.Password)
	if err != nil {
		return domain.User{}, err
	}

	// 3. Mail the confirmation link.
	s.sendConfirmation(ctx, user)
	return user, nil
}

// Confirm marks the principal's account confirmed when token was minted for
// it. Confirming twice is not an error.
func (s *AccountService) Confirm(ctx context.Context, p domain.Principal, token string) (ConfirmOutcome, error) {
	log := slogx.FromContext(ctx)

	if p.IsAnonymous() {
		return "", ErrAuthenticationRequired
	}
	if p.Confirmed() {
		return OutcomeAlreadyConfirmed, nil
	}

	subject, err := s.Tokens.Verify(ctx, token, domain.PurposeConfirm)
	if err != nil {
		log.Info("confirmation token rejected", slog.String("user_id", p.UserID()))
		return "", fmt.Errorf("%w: %w", ErrConfirmationFailed, err)
	}
	if subject != p.UserID() {
		log.Warn("confirmation token belongs to another account", slog.String("user_id", p.UserID()))
		return "", fmt.Errorf("%w: %w", ErrConfirmationFailed, ErrTokenInvalid)
	}

	outcome := OutcomeConfirmed
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Users().GetUserByID(ctx, subject)
		if err != nil {
			return err
		}
		// Another request may have confirmed in the meantime.
		if !domain.CanTransition(domain.StateOf(current), domain.StateConfirmed) {
			outcome = OutcomeAlreadyConfirmed
			return nil
		}
		return tx.Users().MarkConfirmed(ctx, subject, nowOr(s.Users.Now))
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", fmt.Errorf("%w: %w", ErrConfirmationFailed, ErrUserNotFound)
		}
		log.Error("failed to confirm account", slog.String("user_id", subject), slogx.Err(err))
		return "", fmt.Errorf("confirm account: %w", err)
	}

	log.Info("account confirmation", slog.String("user_id", subject), slog.String("outcome", string(outcome)))
	return outcome, nil
}

// ResendConfirmation mails a fresh link to the bound, unconfirmed user.
func (s *AccountService) ResendConfirmation(ctx context.Context, p domain.Principal) error {
	user, ok := p.User()
	if !ok {
		return ErrAuthenticationRequired
	}
	if user.Confirmed {
		return nil
	}
	s.sendConfirmation(ctx, user)
	return nil
}

// Gate decides whether p may reach a route of the given class. Only bound,
// unconfirmed principals on protected routes are turned away.
func (s *AccountService) Gate(p domain.Principal, route domain.RouteClass) error {
	if p.IsAnonymous() || p.Confirmed() {
		return nil
	}
	if route == domain.RouteProtected {
		return ErrConfirmationRequired
	}
	return nil
}

// Unconfirmed reports which page an "unconfirmed" landing should show.
func (s *AccountService) Unconfirmed(p domain.Principal) UnconfirmedStatus {
	switch {
	case p.IsAnonymous():
		return StatusAnonymous
	case p.Confirmed():
		return StatusConfirmed
	default:
		return StatusUnconfirmed
	}
}

func (s *AccountService) sendConfirmation(ctx context.Context, user domain.User) {
	log := slogx.FromContext(ctx)

	token, err := s.Tokens.Issue(ctx, user.ID, domain.PurposeConfirm)
	if err != nil {
		log.Error("failed to mint confirmation token", slog.String("user_id", user.ID), slogx.Err(err))
		return
	}

	msg := notify.Message{
		To:       user.Email,
		Subject:  "Confirm Your Account",
		Template: "auth/email/confirm",
		Data: map[string]any{
			"Username":  user.Username,
			"Link":      link(s.BaseURL, ConfirmPath, token),
			"Token":     token,
			"ExpiresIn": s.Tokens.TTL(domain.PurposeConfirm).String(),
		},
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		log.Error("failed to send confirmation mail", slog.String("user_id", user.ID), slogx.Err(err))
	}
}

// link joins base, path and token. A bad base still yields a usable
// relative link.
func link(base, path, token string) string {
	if base == "" {
		return path + token
	}
	u, err := url.JoinPath(base, path, token)
	if err != nil {
		return path + token
	}
	return u
}
