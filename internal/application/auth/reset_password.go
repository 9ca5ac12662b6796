package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/kamiour/backoffice/internal/application/ports"
	"github.com/kamiour/backoffice/internal/domain"
	domerrors "github.com/kamiour/backoffice/internal/domain/errors"
)

// ResetPasswordInput carries the user id and token from the reset form plus
// the validated new password.
type ResetPasswordInput struct {
	UserID      domain.UserID
	Token       string
	NewPassword string
}

// ResetPasswordResult returns nothing on success.
type ResetPasswordResult struct{}

// ResetPassword consumes a reset token: the new hash is installed and the
// token pair cleared in one conditional store write keyed on user id, token,
// and a still-future expiry. A mismatch leaves the stored token untouched,
// so a failed guess does not burn it.
type ResetPassword struct {
	users  ports.CredentialStore
	hasher ports.PasswordHasher
	now    func() time.Time
}

// NewResetPassword builds the use case.
func NewResetPassword(users ports.CredentialStore, hasher ports.PasswordHasher) *ResetPassword {
	return &ResetPassword{users: users, hasher: hasher, now: time.Now}
}

// Execute hashes the new password and performs the conditional consume.
func (uc *ResetPassword) Execute(ctx context.Context, input ResetPasswordInput) (*ResetPasswordResult, error) {
	hash, err := uc.hasher.Hash(input.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrHashing, err)
	}
	ok, err := uc.users.ConsumeResetToken(ctx, input.UserID, input.Token, hash, uc.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrPersistence, err)
	}
	if !ok {
		return nil, domerrors.ErrNotFound
	}
	return &ResetPasswordResult{}, nil
}
