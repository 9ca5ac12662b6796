package queue

import (
	"context"

	"github.com/kamiour/backoffice/internal/application/ports"
)

// NoopMailer is a no-op MailNotifier for deployments without Redis/asynq.
type NoopMailer struct{}

// NewNoopMailer creates the no-op notifier.
func NewNoopMailer() *NoopMailer {
	return &NoopMailer{}
}

// Send discards the mail.
func (q *NoopMailer) Send(ctx context.Context, m ports.Mail) error {
	return nil
}

var _ ports.MailNotifier = (*NoopMailer)(nil)
