package errors

import "testing"

func TestSentinelErrors(t *testing.T) {
	if ErrUserExists == nil {
		t.Error("ErrUserExists should not be nil")
	}
	if ErrInvalidCredentials == nil {
		t.Error("ErrInvalidCredentials should not be nil")
	}
	if ErrNotFound == nil {
		t.Error("ErrNotFound should not be nil")
	}
	if ErrHashing == nil {
		t.Error("ErrHashing should not be nil")
	}
	if ErrPersistence == nil {
		t.Error("ErrPersistence should not be nil")
	}
}

func TestInvalidCredentialsMessage(t *testing.T) {
	// The login flow surfaces this exact text for both an unknown email and
	// a wrong password.
	if got := ErrInvalidCredentials.Error(); got != "invalid email or password" {
		t.Errorf("unexpected message: %q", got)
	}
}
