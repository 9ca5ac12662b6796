package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kamiour/backoffice/internal/application/ports"
	domerrors "github.com/kamiour/backoffice/internal/domain/errors"
)

// RequestResetInput carries the email a reset was requested for.
type RequestResetInput struct {
	Email string
}

// RequestResetResult returns nothing; the reset link travels by email.
type RequestResetResult struct{}

// RequestReset issues a password-reset token for the account and mails a
// link embedding it. The token/expiry pair overwrites any outstanding pair
// unconditionally: the newest request wins and earlier tokens become
// permanently unusable.
//
// Unlike login, this flow reports an unknown email to the caller.
type RequestReset struct {
	users   ports.CredentialStore
	mailer  ports.MailNotifier
	baseURL string
	from    string
	expiry  time.Duration
	now     func() time.Time
	log     zerolog.Logger
}

// NewRequestReset builds the use case. baseURL is the public prefix the
// reset link is built from.
func NewRequestReset(users ports.CredentialStore, mailer ports.MailNotifier, baseURL, from string, expiry time.Duration, log zerolog.Logger) *RequestReset {
	if expiry <= 0 {
		expiry = ResetTokenExpiry
	}
	return &RequestReset{
		users:   users,
		mailer:  mailer,
		baseURL: baseURL,
		from:    from,
		expiry:  expiry,
		now:     time.Now,
		log:     log,
	}
}

// Execute generates the token, persists it, and enqueues the reset email.
// The mail step is fire-and-forget.
func (uc *RequestReset) Execute(ctx context.Context, input RequestResetInput) (*RequestResetResult, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrPersistence, err)
	}
	if user == nil {
		return nil, domerrors.ErrNotFound
	}
	token, err := generateResetToken()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrHashing, err)
	}
	expiresAt := uc.now().Add(uc.expiry)
	if err := uc.users.SetResetToken(ctx, user.ID, token, expiresAt); err != nil {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrPersistence, err)
	}
	resetURL := fmt.Sprintf("%s/reset/%s", uc.baseURL, token)
	if err := uc.mailer.Send(ctx, ports.Mail{
		To:       user.Email,
		From:     uc.from,
		Subject:  "Password reset",
		HTMLBody: fmt.Sprintf(`<p>You requested a password reset</p><p>Click this <a href="%s">link</a> to set a new password</p>`, resetURL),
	}); err != nil {
		uc.log.Warn().Err(err).Str("email", user.Email).Msg("password reset mail not enqueued")
	}
	return &RequestResetResult{}, nil
}
