package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/kamiour/backoffice/internal/domain/errors"
)

func signupUser(t *testing.T, store *fakeCredentialStore, email, password string) {
	t.Helper()
	uc := NewSignup(store, &fakeHasher{}, &fakeMailer{}, "shop@example.com", zerolog.Nop())
	_, err := uc.Execute(context.Background(), SignupInput{Email: email, Password: password})
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success creates a logged-in session", func(t *testing.T) {
		store := newFakeCredentialStore()
		sessions := newFakeSessionStore()
		signupUser(t, store, "alice@example.com", "Secret123")
		uc := NewLogin(store, &fakeHasher{}, sessions, zerolog.Nop())

		result, err := uc.Execute(ctx, LoginInput{Email: "alice@example.com", Password: "Secret123"})
		require.NoError(t, err)
		require.NotEmpty(t, result.SessionID)

		sess, err := sessions.Get(ctx, result.SessionID)
		require.NoError(t, err)
		require.NotNil(t, sess)
		assert.True(t, sess.LoggedIn)
		assert.Equal(t, result.User.ID, sess.UserID)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		store := newFakeCredentialStore()
		sessions := newFakeSessionStore()
		signupUser(t, store, "alice@example.com", "Secret123")
		uc := NewLogin(store, &fakeHasher{}, sessions, zerolog.Nop())

		_, errUnknown := uc.Execute(ctx, LoginInput{Email: "nobody@example.com", Password: "Secret123"})
		_, errWrongPw := uc.Execute(ctx, LoginInput{Email: "alice@example.com", Password: "WrongPass"})

		assert.ErrorIs(t, errUnknown, domerrors.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrongPw, domerrors.ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
		assert.Empty(t, sessions.sessions, "no session on failed login")
	})

	t.Run("session store failure still reports success", func(t *testing.T) {
		store := newFakeCredentialStore()
		sessions := newFakeSessionStore()
		sessions.createErr = errors.New("redis down")
		signupUser(t, store, "alice@example.com", "Secret123")
		uc := NewLogin(store, &fakeHasher{}, sessions, zerolog.Nop())

		result, err := uc.Execute(ctx, LoginInput{Email: "alice@example.com", Password: "Secret123"})
		require.NoError(t, err)
		assert.Empty(t, result.SessionID)
	})

	t.Run("malformed stored digest is fatal", func(t *testing.T) {
		store := newFakeCredentialStore()
		signupUser(t, store, "alice@example.com", "Secret123")
		uc := NewLogin(store, &fakeHasher{verifyErr: errors.New("unsupported digest")}, newFakeSessionStore(), zerolog.Nop())

		_, err := uc.Execute(ctx, LoginInput{Email: "alice@example.com", Password: "Secret123"})
		assert.ErrorIs(t, err, domerrors.ErrHashing)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("destroys the session", func(t *testing.T) {
		store := newFakeCredentialStore()
		sessions := newFakeSessionStore()
		signupUser(t, store, "alice@example.com", "Secret123")
		login := NewLogin(store, &fakeHasher{}, sessions, zerolog.Nop())
		result, err := login.Execute(ctx, LoginInput{Email: "alice@example.com", Password: "Secret123"})
		require.NoError(t, err)

		uc := NewLogout(sessions, zerolog.Nop())
		uc.Execute(ctx, LogoutInput{SessionID: result.SessionID})

		sess, err := sessions.Get(ctx, result.SessionID)
		require.NoError(t, err)
		assert.Nil(t, sess, "destroyed session must not authenticate")
	})

	t.Run("missing session id is a no-op", func(t *testing.T) {
		sessions := newFakeSessionStore()
		uc := NewLogout(sessions, zerolog.Nop())
		uc.Execute(ctx, LogoutInput{})
		assert.Empty(t, sessions.destroyed)
	})

	t.Run("destroy failure never reaches the caller", func(t *testing.T) {
		sessions := newFakeSessionStore()
		sessions.destroyErr = errors.New("redis down")
		uc := NewLogout(sessions, zerolog.Nop())
		uc.Execute(ctx, LogoutInput{SessionID: "sess-orphan"})
	})
}
