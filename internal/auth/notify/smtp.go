package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// SMTPConfig is read from the environment alongside the app config.
type SMTPConfig struct {
	Host          string `env:"SMTP_HOST"`
	Port          int    `env:"SMTP_PORT" envDefault:"587"`
	Username      string `env:"SMTP_USERNAME"`
	Password      string `env:"SMTP_PASSWORD"`
	From          string `env:"SMTP_FROM"`
	SubjectPrefix string `env:"MAIL_SUBJECT_PREFIX" envDefault:"[Accounts]"`
}

// Validate reports missing settings required to deliver mail.
func (c SMTPConfig) Validate() error {
	var errs []error
	if c.Host == "" {
		errs = append(errs, errors.New("SMTP_HOST is required"))
	}
	if c.Port <= 0 {
		errs = append(errs, errors.New("SMTP_PORT must be positive"))
	}
	if c.From == "" {
		errs = append(errs, errors.New("SMTP_FROM is required"))
	}
	return errors.Join(errs...)
}

// SMTPSender sends multipart (text + html) mail through an SMTP relay.
type SMTPSender struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := Render(msg.Template, msg.Data)
	if err != nil {
		return err
	}

	m := s.build(msg, body)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("notify: smtp send: %w", err)
	}

	slogx.FromContext(ctx).Info("mail sent",
		slog.String("template", msg.Template),
		slog.String("to", msg.To),
	)
	return nil
}

func (s *SMTPSender) build(msg Message, body Rendered) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", subject(s.cfg.SubjectPrefix, msg.Subject))
	m.SetBody("text/plain", body.Text)
	m.AddAlternative("text/html", body.HTML)
	return m
}

func subject(prefix, s string) string {
	if prefix == "" {
		return s
	}
	return prefix + " " + s
}
