package notification

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridConfig configures the SendGrid mailer.
type SendGridConfig struct {
	APIKey      string
	FromEmail   string
	FromName    string
	SandboxMode bool
	// BaseURL overrides the API endpoint; empty means the public API.
	BaseURL string
}

// SendGridMailer sends messages through the SendGrid v3 mail API.
type SendGridMailer struct {
	config SendGridConfig
	from   *mail.Email
}

func NewSendGridMailer(config SendGridConfig) *SendGridMailer {
	return &SendGridMailer{
		config: config,
		from:   mail.NewEmail(config.FromName, config.FromEmail),
	}
}

func (m *SendGridMailer) build(msg Message) *mail.SGMailV3 {
	message := mail.NewSingleEmail(m.from, msg.Subject, mail.NewEmail("", msg.To), msg.Text, msg.HTML)

	if m.config.SandboxMode {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		message.MailSettings = ms
	}

	return message
}

func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	// The client keeps the request body on itself, so workers must not share one.
	client := sendgrid.NewSendClient(m.config.APIKey)
	if m.config.BaseURL != "" {
		client.BaseURL = m.config.BaseURL
	}

	resp, err := client.SendWithContext(ctx, m.build(msg))
	if err != nil {
		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid rejected email: status %d: %s", resp.StatusCode, resp.Body)
	}

	return nil
}
