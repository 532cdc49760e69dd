package notify

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	mail "github.com/go-mail/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverner/teambook/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type sentMessage struct {
	to      []string
	subject string
	body    string
}

func captureSends(t *testing.T, sendErr error) *[]sentMessage {
	t.Helper()
	var sent []sentMessage
	orig := dialAndSend
	dialAndSend = func(d *mail.Dialer, msgs ...*mail.Message) error {
		for _, m := range msgs {
			var buf bytes.Buffer
			_, err := m.WriteTo(&buf)
			require.NoError(t, err)
			sent = append(sent, sentMessage{
				to:      m.GetHeader("To"),
				subject: m.GetHeader("Subject")[0],
				body:    buf.String(),
			})
		}
		return sendErr
	}
	t.Cleanup(func() { dialAndSend = orig })
	return &sent
}

func TestAccountPending(t *testing.T) {
	t.Run("sends to all admins", func(t *testing.T) {
		sent := captureSends(t, nil)
		admins := func(ctx context.Context, team int64) ([]string, error) {
			assert.Equal(t, int64(3), team)
			return []string{"a@example.com", "b@example.com"}, nil
		}
		n := NewSMTPNotifier("smtp.local", 25, "", "", "noreply@example.com", admins, testLogger())
		err := n.AccountPending(context.Background(), 3, "new@example.com")
		require.NoError(t, err)
		require.Len(t, *sent, 1)
		assert.ElementsMatch(t, []string{"a@example.com", "b@example.com"}, (*sent)[0].to)
		assert.Contains(t, (*sent)[0].body, "new@example.com")
	})

	t.Run("no recipients is not an error", func(t *testing.T) {
		sent := captureSends(t, nil)
		admins := func(ctx context.Context, team int64) ([]string, error) { return nil, nil }
		n := NewSMTPNotifier("smtp.local", 25, "", "", "noreply@example.com", admins, testLogger())
		err := n.AccountPending(context.Background(), 3, "new@example.com")
		require.NoError(t, err)
		assert.Empty(t, *sent)
	})

	t.Run("lookup failure", func(t *testing.T) {
		captureSends(t, nil)
		wantErr := errors.New("db down")
		admins := func(ctx context.Context, team int64) ([]string, error) { return nil, wantErr }
		n := NewSMTPNotifier("smtp.local", 25, "", "", "noreply@example.com", admins, testLogger())
		err := n.AccountPending(context.Background(), 3, "new@example.com")
		require.ErrorIs(t, err, wantErr)
	})
}

func TestAccountValidated(t *testing.T) {
	t.Run("sends to owner", func(t *testing.T) {
		sent := captureSends(t, nil)
		n := NewSMTPNotifier("smtp.local", 25, "", "", "noreply@example.com", nil, testLogger())
		err := n.AccountValidated(context.Background(), "user@example.com", "Jane Doe")
		require.NoError(t, err)
		require.Len(t, *sent, 1)
		assert.Equal(t, []string{"user@example.com"}, (*sent)[0].to)
		assert.Contains(t, (*sent)[0].body, "Jane Doe")
	})

	t.Run("send failure", func(t *testing.T) {
		captureSends(t, errors.New("relay refused"))
		n := NewSMTPNotifier("smtp.local", 25, "", "", "noreply@example.com", nil, testLogger())
		err := n.AccountValidated(context.Background(), "user@example.com", "Jane Doe")
		require.Error(t, err)
	})
}

func TestNoopNotifier(t *testing.T) {
	n := NoopNotifier{}
	assert.NoError(t, n.AccountPending(context.Background(), 1, "x@example.com"))
	assert.NoError(t, n.AccountValidated(context.Background(), "x@example.com", "X"))
}
