package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID is a value object for user identity.
type UserID struct{ uuid.UUID }

// NewUserID creates a new UserID from uuid.
func NewUserID(id uuid.UUID) UserID { return UserID{UUID: id} }

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// User is a back-office account. Email is treated as an opaque unique key.
//
// ResetToken and ResetTokenExpiry are both set while a password reset is
// outstanding and both nil otherwise; a token is consumable only while
// ResetTokenExpiry is strictly in the future.
type User struct {
	ID               UserID
	Email            string
	PasswordHash     string
	ResetToken       *string
	ResetTokenExpiry *time.Time
	Cart             Cart
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasPendingReset reports whether a reset token is outstanding, regardless
// of expiry.
func (u *User) HasPendingReset() bool {
	return u.ResetToken != nil && u.ResetTokenExpiry != nil
}
