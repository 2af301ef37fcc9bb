// Package notification delivers committed-state events as e-mail. Events are
// queued and sent by background workers so callers never wait on delivery.
package notification

import (
	"context"

	"github.com/dtroode/ecorewards-server/internal/logger"
)

// Message is a rendered e-mail.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends a rendered message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the log instead of sending them. It is used
// when no mail provider is configured.
type LogMailer struct {
	logger *logger.Logger
}

func NewLogMailer(logger *logger.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("Mailer: message not sent, no provider configured",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Text)
	return nil
}
