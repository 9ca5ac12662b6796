package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Reset token configuration. 32 random bytes hex-encode to a fixed-length
// 64-character string, 256 bits of entropy, safe to embed as a URL path
// segment.
const (
	resetTokenBytes  = 32
	ResetTokenExpiry = time.Hour
)

// generateResetToken returns a fresh high-entropy token.
func generateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
