package mail

import (
	"context"
	"log/slog"
)

// LogMailer logs instead of sending. Used in dev and tests, and as the
// fallback when no SendGrid API key is configured so approvals still work
// without an email provider.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) Send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	m.Logger.Info("mail (not sent, log-only mailer)",
		"to", to,
		"subject", subject,
		"body", textBody,
	)
	return nil
}
