package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/accounts/internal/auth/domain"
	"github.com/aussiebroadwan/accounts/pkg/jwtx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

const (
	DefaultConfirmTTL  = time.Hour
	DefaultResetTTL    = time.Hour
	DefaultSessionTTL  = 12 * time.Hour
	DefaultRememberTTL = 30 * 24 * time.Hour
)

// TokenTTLs are the lifetimes per purpose. Zero values fall back to the
// defaults above.
type TokenTTLs struct {
	Confirm  time.Duration
	Reset    time.Duration
	Session  time.Duration
	Remember time.Duration
}

func (t TokenTTLs) withDefaults() TokenTTLs {
	if t.Confirm <= 0 {
		t.Confirm = DefaultConfirmTTL
	}
	if t.Reset <= 0 {
		t.Reset = DefaultResetTTL
	}
	if t.Session <= 0 {
		t.Session = DefaultSessionTTL
	}
	if t.Remember <= 0 {
		t.Remember = DefaultRememberTTL
	}
	return t
}

// TokenService mints and verifies signed, purpose-scoped, time-limited
// tokens. Tokens are stateless: anyone holding one may use it until it
// expires.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	TTLs     TokenTTLs

	// Now is the clock. Tests swap it to simulate expiry.
	Now func() time.Time
}

// NewTokenService wires an HS256 signer and verifier over secret. The
// verifier reads the service clock, so replacing Now later affects both.
func NewTokenService(secret []byte, issuer string, ttls TokenTTLs, now func() time.Time) (*TokenService, error) {
	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return nil, err
	}

	s := &TokenService{
		Signer: signer,
		Issuer: issuer,
		TTLs:   ttls.withDefaults(),
		Now:    now,
	}
	s.Verifier = jwtx.NewVerifierHS256(secret, jwtx.VerifyOptions{
		Issuer: issuer,
		Now:    s.now,
	})
	return s, nil
}

func (s *TokenService) now() time.Time { return nowOr(s.Now) }

// TTL returns the lifetime for purpose.
func (s *TokenService) TTL(purpose domain.TokenPurpose) time.Duration {
	ttls := s.TTLs.withDefaults()
	switch purpose {
	case domain.PurposeConfirm:
		return ttls.Confirm
	case domain.PurposeReset:
		return ttls.Reset
	default:
		return ttls.Session
	}
}

// Issue mints a token binding subjectID to purpose.
func (s *TokenService) Issue(ctx context.Context, subjectID string, purpose domain.TokenPurpose) (string, error) {
	tok, _, err := s.issue(ctx, subjectID, purpose, s.TTL(purpose), false)
	return tok, err
}

// IssueSession mints a session token. remember selects the extended lifetime.
func (s *TokenService) IssueSession(ctx context.Context, subjectID string, remember bool) (string, time.Time, error) {
	ttl := s.TTLs.withDefaults().Session
	if remember {
		ttl = s.TTLs.withDefaults().Remember
	}
	return s.issue(ctx, subjectID, domain.PurposeSession, ttl, remember)
}

func (s *TokenService) issue(ctx context.Context, subjectID string, purpose domain.TokenPurpose, ttl time.Duration, remember bool) (string, time.Time, error) {
	if subjectID == "" || !purpose.Valid() {
		return "", time.Time{}, fmt.Errorf("issue token: %w", ErrTokenInvalid)
	}

	claims := jwtx.NewClaims(subjectID, string(purpose), ttl, s.Issuer, s.now())
	claims.Remember = remember

	tok, err := s.Signer.Sign(claims)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to sign token",
			slog.String("purpose", string(purpose)),
			slogx.Err(err),
		)
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return tok, claims.ExpiresAt.Time, nil
}

// Verify checks signature, expiry and purpose and returns the subject.
func (s *TokenService) Verify(ctx context.Context, token string, expected domain.TokenPurpose) (string, error) {
	at, err := s.Inspect(ctx, token, expected)
	if err != nil {
		return "", err
	}
	return at.Subject, nil
}

// Inspect is Verify returning the whole decoded token.
func (s *TokenService) Inspect(ctx context.Context, token string, expected domain.TokenPurpose) (domain.ActionToken, error) {
	log := slogx.FromContext(ctx)

	claims, err := s.Verifier.Verify(token)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			log.Debug("token expired", slog.String("purpose", string(expected)))
			return domain.ActionToken{}, ErrTokenExpired
		}
		log.Debug("token rejected",
			slog.String("purpose", string(expected)),
			slogx.Err(err),
		)
		return domain.ActionToken{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	if err := claims.ValidatePurpose(string(expected)); err != nil {
		log.Warn("token used for the wrong purpose",
			slog.String("expected", string(expected)),
			slog.String("got", claims.Purpose),
		)
		return domain.ActionToken{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	if claims.Subject == "" {
		return domain.ActionToken{}, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}

	at := domain.ActionToken{
		Subject:  claims.Subject,
		Purpose:  domain.TokenPurpose(claims.Purpose),
		Remember: claims.Remember,
	}
	if claims.IssuedAt != nil {
		at.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		at.ExpiresAt = claims.ExpiresAt.Time
	}
	return at, nil
}
