package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kamiour/backoffice/internal/application/ports"
	"github.com/kamiour/backoffice/internal/domain"
	domerrors "github.com/kamiour/backoffice/internal/domain/errors"
)

// SignupInput carries a syntactically validated email and password.
type SignupInput struct {
	Email    string
	Password string
}

// SignupResult returns the created user.
type SignupResult struct {
	User *domain.User
}

// Signup hashes the password, persists a new user with an empty cart, and
// fires a confirmation email. Duplicate emails are rejected by storage-level
// uniqueness, not a pre-read.
type Signup struct {
	users  ports.CredentialStore
	hasher ports.PasswordHasher
	mailer ports.MailNotifier
	from   string
	log    zerolog.Logger
}

// NewSignup builds the use case.
func NewSignup(users ports.CredentialStore, hasher ports.PasswordHasher, mailer ports.MailNotifier, from string, log zerolog.Logger) *Signup {
	return &Signup{users: users, hasher: hasher, mailer: mailer, from: from, log: log}
}

// Execute creates the account. The confirmation mail is fire-and-forget: a
// delivery failure is logged and never rolls back the created account.
func (uc *Signup) Execute(ctx context.Context, input SignupInput) (*SignupResult, error) {
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrHashing, err)
	}
	now := time.Now()
	user := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Email:        input.Email,
		PasswordHash: hash,
		Cart:         domain.EmptyCart(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, domerrors.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domerrors.ErrPersistence, err)
	}
	if err := uc.mailer.Send(ctx, ports.Mail{
		To:       user.Email,
		From:     uc.from,
		Subject:  "Signup successful",
		HTMLBody: fmt.Sprintf("<h1>Successfully signed up:</h1><span>%s</span>", user.Email),
	}); err != nil {
		uc.log.Warn().Err(err).Str("email", user.Email).Msg("signup confirmation mail not enqueued")
	}
	return &SignupResult{User: user}, nil
}
