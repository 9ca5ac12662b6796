package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kamiour/backoffice/internal/application/ports"
	"github.com/kamiour/backoffice/internal/domain"
	domerrors "github.com/kamiour/backoffice/internal/domain/errors"
)

const (
	createUserSQL = `INSERT INTO users (id, email, password_hash, cart, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	userColumns = `id, email, password_hash, reset_token, reset_token_expires_at, cart, created_at, updated_at`

	getUserByEmailSQL = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	getUserByIDSQL    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	// Unconditional overwrite: a second reset request wins over the first.
	setResetTokenSQL = `UPDATE users
		SET reset_token = $1, reset_token_expires_at = $2, updated_at = NOW()
		WHERE id = $3`

	getUserByResetTokenSQL = `SELECT ` + userColumns + ` FROM users
		WHERE reset_token = $1 AND reset_token_expires_at > $2`

	// Consume is a single conditional write: hash installed and token pair
	// cleared only when id, token, and a still-future expiry all match.
	consumeResetTokenSQL = `UPDATE users
		SET password_hash = $1, reset_token = NULL, reset_token_expires_at = NULL, updated_at = NOW()
		WHERE id = $2 AND reset_token = $3 AND reset_token_expires_at > $4`
)

// UserStore implements ports.CredentialStore on PostgreSQL.
type UserStore struct {
	pool *pgxpool.Pool
}

// NewUserStore creates the store.
func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

// Create persists the user. Email uniqueness is the users_email_key
// constraint; a violation maps to ErrUserExists.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	cart, err := json.Marshal(user.Cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	_, err = s.pool.Exec(ctx, createUserSQL,
		user.ID.UUID, user.Email, user.PasswordHash, cart, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domerrors.ErrUserExists
		}
		return err
	}
	return nil
}

// GetByEmail returns (nil, nil) when no account matches.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getOne(ctx, getUserByEmailSQL, email)
}

// GetByID returns (nil, nil) when no account matches.
func (s *UserStore) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	return s.getOne(ctx, getUserByIDSQL, id.UUID)
}

// SetResetToken installs the token pair, overwriting any outstanding one.
func (s *UserStore) SetResetToken(ctx context.Context, id domain.UserID, token string, expiresAt time.Time) error {
	_, err := s.pool.Exec(ctx, setResetTokenSQL, token, expiresAt, id.UUID)
	return err
}

// GetByResetToken matches only non-expired tokens (expiry strictly after now).
func (s *UserStore) GetByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	return s.getOne(ctx, getUserByResetTokenSQL, token, now)
}

// ConsumeResetToken reports false when the conditional update matched no row.
func (s *UserStore) ConsumeResetToken(ctx context.Context, id domain.UserID, token, newHash string, now time.Time) (bool, error) {
	tag, err := s.pool.Exec(ctx, consumeResetTokenSQL, newHash, id.UUID, token, now)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *UserStore) getOne(ctx context.Context, sql string, args ...any) (*domain.User, error) {
	row := s.pool.QueryRow(ctx, sql, args...)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u        domain.User
		cartJSON []byte
	)
	err := row.Scan(&u.ID.UUID, &u.Email, &u.PasswordHash, &u.ResetToken, &u.ResetTokenExpiry,
		&cartJSON, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(cartJSON) > 0 {
		if err := json.Unmarshal(cartJSON, &u.Cart); err != nil {
			return nil, fmt.Errorf("unmarshal cart: %w", err)
		}
	}
	if u.Cart.Items == nil {
		u.Cart = domain.EmptyCart()
	}
	return &u, nil
}

// Ensure UserStore implements ports.CredentialStore.
var _ ports.CredentialStore = (*UserStore)(nil)
