package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/accounts/internal/auth/domain"
	"github.com/aussiebroadwan/accounts/internal/auth/notify"
	"github.com/aussiebroadwan/accounts/pkg/authsdk"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// ResetService lets a user who forgot their password set a new one through
// a mailed link. The user identity travels in the token subject.
type ResetService struct {
	Users  *UserService
	Tokens *TokenService
	Mailer notify.Sender

	BaseURL string
}

// RequestReset mails a reset link to the account registered under email.
// Send failures are logged and not returned, so a registered address answers
// the same as an unknown one while the mailer is down.
func (s *ResetService) RequestReset(ctx context.Context, email string) error {
	log := slogx.FromContext(ctx)

	req := authsdk.ResetPasswordRequest{Email: authsdk.NormalizeEmail(email)}
	if errs := req.Validate(); len(errs) > 0 {
		return validationError(errs)
	}

	user, err := s.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Info("password reset requested for unknown email")
		}
		return err
	}

	token, err := s.Tokens.Issue(ctx, user.ID, domain.PurposeReset)
	if err != nil {
		return err
	}

	msg := notify.Message{
		To:       user.Email,
		Subject:  "Reset Your Password",
		Template: "auth/email/reset_confirm",
		Data: map[string]any{
			"Username":  user.Username,
			"Link":      link(s.BaseURL, ResetPath, token),
			"Token":     token,
			"ExpiresIn": s.Tokens.TTL(domain.PurposeReset).String(),
		},
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		log.Error("failed to send reset mail", slog.String("user_id", user.ID), slogx.Err(err))
		return nil
	}

	log.Info("password reset requested", slog.String("user_id", user.ID))
	return nil
}

// CompleteReset sets a new password for the token's subject. It does not
// log anyone in.
func (s *ResetService) CompleteReset(ctx context.Context, token, newPassword string) error {
	log := slogx.FromContext(ctx)

	// 1. Validate the new password before anything else.
	req := authsdk.NewPasswordRequest{Password: newPassword}
	if errs := req.Validate(); len(errs) > 0 {
		return validationError(errs)
	}

	// 2. The token names the user.
	subject, err := s.Tokens.Verify(ctx, token, domain.PurposeReset)
	if err != nil {
		log.Info("reset token rejected")
		return fmt.Errorf("%w: %w", ErrConfirmationFailed, err)
	}

	// 3. Store the new password.
	if err := s.Users.SetPassword(ctx, subject, newPassword); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return fmt.Errorf("%w: %w", ErrConfirmationFailed, err)
		}
		return err
	}

	log.Info("password reset completed", slog.String("user_id", subject))
	return nil
}
