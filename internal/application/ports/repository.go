package ports

import (
	"context"
	"time"

	"github.com/kamiour/backoffice/internal/domain"
)

// CredentialStore defines durable persistence for user records. Lookups
// return (nil, nil) when no record matches.
type CredentialStore interface {
	// Create persists a new user. A duplicate email fails with
	// domain/errors.ErrUserExists; uniqueness is enforced by storage, not
	// pre-checked.
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)

	// SetResetToken installs the token/expiry pair unconditionally,
	// overwriting any outstanding pair (last write wins).
	SetResetToken(ctx context.Context, id domain.UserID, token string, expiresAt time.Time) error

	// GetByResetToken matches only tokens whose expiry is strictly after now.
	GetByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error)

	// ConsumeResetToken installs the new password hash and clears the token
	// pair in a single conditional write keyed on id, token, and expiry
	// strictly after now. It returns false when nothing matched, leaving any
	// stored token untouched.
	ConsumeResetToken(ctx context.Context, id domain.UserID, token, newHash string, now time.Time) (bool, error)
}

// SessionStore defines durable server-side session records. Expiry of
// individual sessions is the store's own policy.
type SessionStore interface {
	// Create issues a new logged-in session bound to the user and returns
	// its opaque identifier.
	Create(ctx context.Context, userID domain.UserID) (string, error)

	// Get returns (nil, nil) for unknown or expired session identifiers.
	Get(ctx context.Context, sessionID string) (*domain.Session, error)

	// Destroy removes the session. Best-effort at call sites: failures are
	// logged, not propagated to the client.
	Destroy(ctx context.Context, sessionID string) error
}

// ProductStore defines persistence for the product catalog.
type ProductStore interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id domain.ProductID) (*domain.Product, error)
	ListByOwner(ctx context.Context, ownerID domain.UserID) ([]*domain.Product, error)
	// Update writes title, price, description, and image URL, scoped to the
	// owner. Returns false when no row matched (absent or not owned).
	Update(ctx context.Context, product *domain.Product) (bool, error)
	// Delete removes the product scoped to the owner. Returns false when no
	// row matched.
	Delete(ctx context.Context, id domain.ProductID, ownerID domain.UserID) (bool, error)
}
