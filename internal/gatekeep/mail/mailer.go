package mail

import "context"

// Mailer dispatches a single outbound email. Implementations must be safe
// for concurrent use; the whitelist service calls Send best-effort and
// never lets a failure roll back the review that triggered it.
type Mailer interface {
	Send(ctx context.Context, to, subject, textBody, htmlBody string) error
}
