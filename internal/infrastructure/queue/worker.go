package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Worker runs the asynq handlers for outbound mail. It is the background
// half of the fire-and-forget mail path: failures land in its log, never in
// a request's response.
type Worker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
	log zerolog.Logger
}

// NewWorker creates an asynq server and registers handlers. Call Run() to
// start.
func NewWorker(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, log: log}
	mux.HandleFunc(TypeSendMail, w.handleSendMail)
	return w
}

func (w *Worker) handleSendMail(ctx context.Context, t *asynq.Task) error {
	var p mailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("mail task payload invalid")
		return err
	}
	// Dev: log the mail; production would deliver via SMTP/sendgrid etc.
	w.log.Info().
		Str("to", p.To).
		Str("from", p.From).
		Str("subject", p.Subject).
		Msg("outbound mail (log only; configure SMTP for real delivery)")
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
