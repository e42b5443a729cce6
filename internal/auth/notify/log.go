package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// LogSender writes rendered text bodies to W instead of delivering them.
// It is meant for local development; the structured log line it emits never
// carries the body.
type LogSender struct {
	W io.Writer

	mu sync.Mutex
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	body, err := Render(msg.Template, msg.Data)
	if err != nil {
		return err
	}

	w := s.W
	if w == nil {
		w = os.Stdout
	}

	s.mu.Lock()
	_, err = fmt.Fprintf(w, "--- mail to=%s subject=%q template=%s\n%s\n---\n",
		msg.To, msg.Subject, msg.Template, body.Text)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("notify: write mail: %w", err)
	}

	slogx.FromContext(ctx).Info("mail written",
		slog.String("template", msg.Template),
		slog.String("to", msg.To),
	)
	return nil
}
