package ports

import "context"

// Mail is a transactional message (signup confirmation, reset link).
type Mail struct {
	To       string
	From     string
	Subject  string
	HTMLBody string
}

// MailNotifier delivers mail best-effort. Send only hands the message to a
// background channel; delivery outcome is observed through logs and never
// gates the caller's response.
type MailNotifier interface {
	Send(ctx context.Context, m Mail) error
}
