package notify

import (
	"context"
	"sync"
)

// MemorySender records messages. Tests use it to pull links out of mails.
type MemorySender struct {
	// Err, when set, is returned by Send after recording the message.
	Err error

	mu   sync.Mutex
	msgs []Message
}

func (s *MemorySender) Send(_ context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.msgs = append(s.msgs, msg)
	s.mu.Unlock()
	return s.Err
}

// Messages returns a copy of everything sent so far.
func (s *MemorySender) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.msgs))
	copy(out, s.msgs)
	return out
}

// Last returns the most recent message and false when nothing was sent.
func (s *MemorySender) Last() (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.msgs) == 0 {
		return Message{}, false
	}
	return s.msgs[len(s.msgs)-1], true
}
