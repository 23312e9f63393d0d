package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer sends email through the SendGrid v3 API.
type SendGridMailer struct {
	APIKey   string
	From     string // sender address
	FromName string // display name on the sender, e.g. the app name
	Logger   *slog.Logger
}

func (m *SendGridMailer) Send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	if m.APIKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if m.From == "" {
		return fmt.Errorf("from address is empty")
	}
	if to == "" {
		return fmt.Errorf("to address is empty")
	}

	message := sgmail.NewSingleEmail(
		sgmail.NewEmail(m.FromName, m.From),
		subject,
		sgmail.NewEmail("", to),
		textBody,
		htmlBody,
	)

	client := sendgrid.NewSendClient(m.APIKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}

	if response.StatusCode >= 400 {
		m.Logger.Warn("sendgrid rejected message",
			"status", response.StatusCode,
			"to", to,
		)
		return fmt.Errorf("sendgrid send failed: status=%d", response.StatusCode)
	}

	m.Logger.Debug("mail sent",
		"status", response.StatusCode,
		"to", to,
		"subject", subject,
	)

	return nil
}
