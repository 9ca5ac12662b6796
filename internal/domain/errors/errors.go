package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
//
// ErrInvalidCredentials covers both an unknown email and a wrong password at
// login so callers cannot tell the two apart. ErrHashing and ErrPersistence
// are fatal for the current request and must not leak internal detail.
var (
	ErrUserExists         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("not found")
	ErrHashing            = errors.New("password hashing failed")
	ErrPersistence        = errors.New("storage operation failed")
)
