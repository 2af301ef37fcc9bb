package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/ecorewards-server/internal/model"
	"github.com/dtroode/ecorewards-server/internal/testutil"
)

type fakeMailer struct {
	mu      sync.Mutex
	sent    []Message
	err     error
	release chan struct{}
}

func (m *fakeMailer) Send(_ context.Context, msg Message) error {
	if m.release != nil {
		<-m.release
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

func (m *fakeMailer) messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.sent...)
}

func otpEvent(to string) model.Event {
	return model.Event{
		Recipient: to,
		Template:  model.TemplateOTP,
		Data:      map[string]any{"Code": "000111", "Purpose": "signup", "Minutes": 5},
	}
}

func TestDispatcher(t *testing.T) {
	t.Run("delivers queued events before close returns", func(t *testing.T) {
		mailer := &fakeMailer{}
		d := NewDispatcher(mailer, 16, 2, testutil.MakeNoopLogger())

		for _, to := range []string{"a@x.io", "b@x.io", "c@x.io"} {
			d.Notify(context.Background(), otpEvent(to))
		}
		require.NoError(t, d.Close(context.Background()))

		sent := mailer.messages()
		require.Len(t, sent, 3)
		recipients := []string{sent[0].To, sent[1].To, sent[2].To}
		assert.ElementsMatch(t, []string{"a@x.io", "b@x.io", "c@x.io"}, recipients)
	})

	t.Run("full queue drops without blocking", func(t *testing.T) {
		mailer := &fakeMailer{release: make(chan struct{})}
		d := NewDispatcher(mailer, 1, 1, testutil.MakeNoopLogger())

		done := make(chan struct{})
		go func() {
			for range 10 {
				d.Notify(context.Background(), otpEvent("a@x.io"))
			}
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Notify blocked on a full queue")
		}

		close(mailer.release)
		require.NoError(t, d.Close(context.Background()))
		// One event held by the worker and one in the queue at most.
		assert.LessOrEqual(t, len(mailer.messages()), 2)
	})

	t.Run("delivery failure is swallowed", func(t *testing.T) {
		mailer := &fakeMailer{err: errors.New("smtp down")}
		d := NewDispatcher(mailer, 4, 1, testutil.MakeNoopLogger())

		d.Notify(context.Background(), otpEvent("a@x.io"))
		require.NoError(t, d.Close(context.Background()))
		assert.Len(t, mailer.messages(), 1)
	})

	t.Run("unknown template is not sent", func(t *testing.T) {
		mailer := &fakeMailer{}
		d := NewDispatcher(mailer, 4, 1, testutil.MakeNoopLogger())

		d.Notify(context.Background(), model.Event{Recipient: "a@x.io", Template: "missing"})
		require.NoError(t, d.Close(context.Background()))
		assert.Empty(t, mailer.messages())
	})

	t.Run("notify after close is dropped", func(t *testing.T) {
		mailer := &fakeMailer{}
		d := NewDispatcher(mailer, 4, 1, testutil.MakeNoopLogger())
		require.NoError(t, d.Close(context.Background()))
		require.NoError(t, d.Close(context.Background()))

		assert.NotPanics(t, func() {
			d.Notify(context.Background(), otpEvent("a@x.io"))
		})
		assert.Empty(t, mailer.messages())
	})

	t.Run("close honours context", func(t *testing.T) {
		mailer := &fakeMailer{release: make(chan struct{})}
		d := NewDispatcher(mailer, 4, 1, testutil.MakeNoopLogger())
		d.Notify(context.Background(), otpEvent("a@x.io"))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)

		close(mailer.release)
	})
}
