package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kamiour/backoffice/internal/application/ports"
	"github.com/kamiour/backoffice/internal/domain"
)

const sessionKeyPrefix = "session:"

// Session identifiers are high-entropy opaque strings, not guessable ids.
const sessionIDBytes = 32

type sessionRecord struct {
	UserID   string `json:"user_id"`
	LoggedIn bool   `json:"logged_in"`
}

// SessionStore implements ports.SessionStore on Redis. Session expiry is the
// store's TTL; the application never extends or inspects it.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates the store. ttl <= 0 disables expiry.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Create issues a logged-in session for the user.
func (s *SessionStore) Create(ctx context.Context, userID domain.UserID) (string, error) {
	buf := make([]byte, sessionIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("session id: %w", err)
	}
	id := hex.EncodeToString(buf)

	data, err := json.Marshal(sessionRecord{UserID: userID.String(), LoggedIn: true})
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+id, data, s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// Get returns (nil, nil) for unknown or expired sessions.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	session := &domain.Session{ID: sessionID, LoggedIn: rec.LoggedIn}
	if rec.UserID != "" {
		uid, err := uuid.Parse(rec.UserID)
		if err != nil {
			return nil, fmt.Errorf("session user id: %w", err)
		}
		session.UserID = domain.NewUserID(uid)
	}
	return session, nil
}

// Destroy deletes the session. Deleting an unknown id is not an error.
func (s *SessionStore) Destroy(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

// Ensure SessionStore implements ports.SessionStore.
var _ ports.SessionStore = (*SessionStore)(nil)
