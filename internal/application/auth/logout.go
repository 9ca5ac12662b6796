package auth

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kamiour/backoffice/internal/application/ports"
)

// LogoutInput identifies the caller's session.
type LogoutInput struct {
	SessionID string
}

// Logout destroys the caller's session unconditionally. Destruction failures
// are logged, never surfaced.
type Logout struct {
	sessions ports.SessionStore
	log      zerolog.Logger
}

// NewLogout builds the use case.
func NewLogout(sessions ports.SessionStore, log zerolog.Logger) *Logout {
	return &Logout{sessions: sessions, log: log}
}

// Execute destroys the session. It has no failure mode the caller could act
// on, so it returns nothing.
func (uc *Logout) Execute(ctx context.Context, input LogoutInput) {
	if input.SessionID == "" {
		return
	}
	if err := uc.sessions.Destroy(ctx, input.SessionID); err != nil {
		uc.log.Warn().Err(err).Msg("session destroy failed")
	}
}
