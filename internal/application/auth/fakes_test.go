package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kamiour/backoffice/internal/application/ports"
	"github.com/kamiour/backoffice/internal/domain"
	domerrors "github.com/kamiour/backoffice/internal/domain/errors"
)

// fakeCredentialStore is an in-memory CredentialStore mirroring the
// persistence semantics the use cases rely on: storage-level email
// uniqueness, unconditional token overwrite, conditional consume.
type fakeCredentialStore struct {
	mu      sync.Mutex
	users   map[string]*domain.User // keyed by id
	failAll error                   // returned by every call when set
}

func newFakeCredentialStore() *fakeCredentialStore {
	return &fakeCredentialStore{users: make(map[string]*domain.User)}
}

func (s *fakeCredentialStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll != nil {
		return s.failAll
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return domerrors.ErrUserExists
		}
	}
	cp := *user
	s.users[user.ID.String()] = &cp
	return nil
}

func (s *fakeCredentialStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll != nil {
		return nil, s.failAll
	}
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeCredentialStore) GetByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll != nil {
		return nil, s.failAll
	}
	u, ok := s.users[id.String()]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *fakeCredentialStore) SetResetToken(_ context.Context, id domain.UserID, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll != nil {
		return s.failAll
	}
	u, ok := s.users[id.String()]
	if !ok {
		return errors.New("no such user")
	}
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiresAt
	return nil
}

func (s *fakeCredentialStore) GetByResetToken(_ context.Context, token string, now time.Time) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll != nil {
		return nil, s.failAll
	}
	for _, u := range s.users {
		if u.ResetToken != nil && *u.ResetToken == token && u.ResetTokenExpiry.After(now) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeCredentialStore) ConsumeResetToken(_ context.Context, id domain.UserID, token, newHash string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll != nil {
		return false, s.failAll
	}
	u, ok := s.users[id.String()]
	if !ok || u.ResetToken == nil || *u.ResetToken != token || !u.ResetTokenExpiry.After(now) {
		return false, nil
	}
	u.PasswordHash = newHash
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	return true, nil
}

// fakeSessionStore issues predictable session ids and records destroys.
type fakeSessionStore struct {
	mu         sync.Mutex
	sessions   map[string]domain.UserID
	createErr  error
	destroyErr error
	destroyed  []string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]domain.UserID)}
}

func (s *fakeSessionStore) Create(_ context.Context, userID domain.UserID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return "", s.createErr
	}
	id := fmt.Sprintf("sess-%s-%d", uuid.NewString()[:8], len(s.sessions))
	s.sessions[id] = userID
	return id, nil
}

func (s *fakeSessionStore) Get(_ context.Context, sessionID string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &domain.Session{ID: sessionID, UserID: userID, LoggedIn: true}, nil
}

func (s *fakeSessionStore) Destroy(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyErr != nil {
		return s.destroyErr
	}
	delete(s.sessions, sessionID)
	s.destroyed = append(s.destroyed, sessionID)
	return nil
}

// fakeMailer records sent mail; sendErr makes every Send fail.
type fakeMailer struct {
	mu      sync.Mutex
	sent    []ports.Mail
	sendErr error
}

func (m *fakeMailer) Send(_ context.Context, mail ports.Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, mail)
	return nil
}

// fakeHasher is a transparent stand-in so tests can assert on digests
// without paying bcrypt cost. Real digest behavior is covered in the
// security package tests.
type fakeHasher struct {
	hashErr   error
	verifyErr error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "digest:" + password, nil
}

func (h *fakeHasher) Verify(password, digest string) (bool, error) {
	if h.verifyErr != nil {
		return false, h.verifyErr
	}
	return digest == "digest:"+password, nil
}

func mustUUID(t interface{ Fatalf(string, ...any) }) uuid.UUID {
	id, err := uuid.NewRandom()
	if err != nil {
		t.Fatalf("uuid: %v", err)
	}
	return id
}

var (
	_ ports.CredentialStore = (*fakeCredentialStore)(nil)
	_ ports.SessionStore    = (*fakeSessionStore)(nil)
	_ ports.MailNotifier    = (*fakeMailer)(nil)
	_ ports.PasswordHasher  = (*fakeHasher)(nil)
)
