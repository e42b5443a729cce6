// Package notify delivers account mails (confirmation, password reset).
package notify

import (
	"context"
	"errors"
)

// ErrInvalidMessage is returned when a message is missing a recipient or
// template.
var ErrInvalidMessage = errors.New("notify: message needs a recipient and a template")

// Message is one outgoing mail. Template names a pair of embedded templates,
// e.g. "auth/email/confirm" renders confirm.txt and confirm.html.
type Message struct {
	To       string
	Subject  string
	Template string
	Data     map[string]any
}

func (m Message) validate() error {
	if m.To == "" || m.Template == "" {
		return ErrInvalidMessage
	}
	return nil
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
