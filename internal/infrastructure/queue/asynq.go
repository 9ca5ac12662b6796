package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/kamiour/backoffice/internal/application/ports"
)

// TypeSendMail is the task type for outbound transactional email.
const TypeSendMail = "email:send"

type mailPayload struct {
	To       string `json:"to"`
	From     string `json:"from"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
}

// MailEnqueuer implements ports.MailNotifier by handing mail to the asynq
// queue. Delivery happens on the worker; the caller never waits for it.
type MailEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

// NewMailEnqueuer builds the enqueuer.
func NewMailEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) (*MailEnqueuer, error) {
	client := asynq.NewClient(redisOpt)
	return &MailEnqueuer{client: client, log: log}, nil
}

// Close releases the underlying client.
func (q *MailEnqueuer) Close() error {
	return q.client.Close()
}

// Send enqueues the mail. Enqueue failures are logged here and at the call
// site; they never gate the request that triggered the mail.
func (q *MailEnqueuer) Send(ctx context.Context, m ports.Mail) error {
	payload, _ := json.Marshal(mailPayload{
		To:       m.To,
		From:     m.From,
		Subject:  m.Subject,
		HTMLBody: m.HTMLBody,
	})
	task := asynq.NewTask(TypeSendMail, payload)
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		q.log.Warn().Err(err).Str("to", m.To).Str("subject", m.Subject).Msg("enqueue mail failed")
		return err
	}
	return nil
}

var _ ports.MailNotifier = (*MailEnqueuer)(nil)
