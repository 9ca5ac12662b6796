package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kamiour/backoffice/internal/application/ports"
	"github.com/kamiour/backoffice/internal/domain"
	domerrors "github.com/kamiour/backoffice/internal/domain/errors"
)

// LoginInput carries a syntactically validated email and password.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult returns the authenticated user and the session identifier.
// SessionID may be empty when the session store write failed; the login
// itself still succeeded.
type LoginResult struct {
	SessionID string
	User      *domain.User
}

// Login verifies credentials and issues a server-side session. An unknown
// email and a wrong password are indistinguishable to the caller.
type Login struct {
	users    ports.CredentialStore
	hasher   ports.PasswordHasher
	sessions ports.SessionStore
	log      zerolog.Logger
}

// NewLogin builds the use case.
func NewLogin(users ports.CredentialStore, hasher ports.PasswordHasher, sessions ports.SessionStore, log zerolog.Logger) *Login {
	return &Login{users: users, hasher: hasher, sessions: sessions, log: log}
}

// Execute checks the password against the stored digest and creates a
// logged-in session. A session-store write failure is logged and the result
// is still success, without a session reference.
func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrPersistence, err)
	}
	if user == nil {
		return nil, domerrors.ErrInvalidCredentials
	}
	ok, err := uc.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrHashing, err)
	}
	if !ok {
		return nil, domerrors.ErrInvalidCredentials
	}
	sessionID, err := uc.sessions.Create(ctx, user.ID)
	if err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("session create failed")
		sessionID = ""
	}
	return &LoginResult{SessionID: sessionID, User: user}, nil
}
