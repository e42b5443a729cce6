package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func confirmData() map[string]any {
	return map[string]any{
		"Username":  "john",
		"Link":      "http://localhost/v1/auth/confirm/abc?x=<1>",
		"ExpiresIn": "1h0m0s",
	}
}

func TestRender_Confirm(t *testing.T) {
	out, err := Render("auth/email/confirm", confirmData())
	require.NoError(t, err)

	require.Contains(t, out.Text, "Dear john")
	require.Contains(t, out.Text, "http://localhost/v1/auth/confirm/abc?x=<1>")
	// html/template escapes the link.
	require.Contains(t, out.HTML, "x=%3c1%3e")
	require.NotContains(t, out.HTML, "<1>")
}

func TestRender_Reset(t *testing.T) {
	out, err := Render("auth/email/reset_confirm", map[string]any{"Username": "susan", "Link": "L"})
	require.NoError(t, err)
	require.Contains(t, out.Text, "reset your password")
	require.Contains(t, out.HTML, "susan")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render("auth/email/nope", nil)
	require.Error(t, err)
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	s := &LogSender{W: &buf}

	err := s.Send(context.Background(), Message{
		To:       "john@example.com",
		Subject:  "Confirm Your Account",
		Template: "auth/email/confirm",
		Data:     confirmData(),
	})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "to=john@example.com")
	require.Contains(t, buf.String(), "/v1/auth/confirm/abc")
}

func TestSenders_RejectIncompleteMessage(t *testing.T) {
	senders := map[string]Sender{
		"log":    &LogSender{W: &bytes.Buffer{}},
		"memory": &MemorySender{},
		"smtp":   NewSMTPSender(SMTPConfig{Host: "localhost", Port: 25, From: "a@b.c"}),
	}
	for name, s := range senders {
		t.Run(name, func(t *testing.T) {
			err := s.Send(context.Background(), Message{Template: "auth/email/confirm"})
			require.ErrorIs(t, err, ErrInvalidMessage)
		})
	}
}

func TestMemorySender(t *testing.T) {
	s := &MemorySender{}
	_, ok := s.Last()
	require.False(t, ok)

	boom := errors.New("boom")
	s.Err = boom
	err := s.Send(context.Background(), Message{To: "a@b.c", Template: "auth/email/confirm"})
	require.ErrorIs(t, err, boom)

	last, ok := s.Last()
	require.True(t, ok)
	require.Equal(t, "a@b.c", last.To)
	require.Len(t, s.Messages(), 1)
}

func TestSMTPSender_BuildsMultipart(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "localhost", Port: 25, From: "noreply@example.com", SubjectPrefix: "[Accounts]"})
	m := s.build(Message{To: "john@example.com", Subject: "Hi"}, Rendered{Text: "t", HTML: "<p>h</p>"})

	require.Equal(t, []string{"[Accounts] Hi"}, m.GetHeader("Subject"))
	require.Equal(t, []string{"noreply@example.com"}, m.GetHeader("From"))
}

func TestSMTPConfig_Validate(t *testing.T) {
	require.Error(t, SMTPConfig{}.Validate())
	require.NoError(t, SMTPConfig{Host: "h", Port: 25, From: "f@x"}.Validate())
}

func TestSMTPSender_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewSMTPSender(SMTPConfig{Host: "localhost", Port: 25, From: "a@b.c"})
	err := s.Send(ctx, Message{To: "x@y.z", Template: "auth/email/confirm"})
	require.ErrorIs(t, err, context.Canceled)
}
