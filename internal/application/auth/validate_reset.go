package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/kamiour/backoffice/internal/application/ports"
	"github.com/kamiour/backoffice/internal/domain"
	domerrors "github.com/kamiour/backoffice/internal/domain/errors"
)

// ValidateResetInput carries the token from the reset link.
type ValidateResetInput struct {
	Token string
}

// ValidateResetResult identifies the account the token belongs to, used to
// render the new-password form.
type ValidateResetResult struct {
	UserID domain.UserID
}

// ValidateReset is the read-only precheck of a reset token. It never
// mutates state; an invalid or expired token fails with ErrNotFound.
type ValidateReset struct {
	users ports.CredentialStore
	now   func() time.Time
}

// NewValidateReset builds the use case.
func NewValidateReset(users ports.CredentialStore) *ValidateReset {
	return &ValidateReset{users: users, now: time.Now}
}

// Execute succeeds iff a non-expired match exists.
func (uc *ValidateReset) Execute(ctx context.Context, input ValidateResetInput) (*ValidateResetResult, error) {
	user, err := uc.users.GetByResetToken(ctx, input.Token, uc.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrPersistence, err)
	}
	if user == nil {
		return nil, domerrors.ErrNotFound
	}
	return &ValidateResetResult{UserID: user.ID}, nil
}
