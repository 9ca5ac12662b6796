package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	// MinCost keeps the adaptive hash fast in tests; the digest format is
	// identical at any cost.
	h := NewBcryptHasher(bcrypt.MinCost)

	t.Run("hash verifies against its own plaintext", func(t *testing.T) {
		digest, err := h.Hash("Secret123")
		require.NoError(t, err)
		require.NotEmpty(t, digest)

		ok, err := h.Verify("Secret123", digest)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("different plaintext does not verify", func(t *testing.T) {
		digest, err := h.Hash("Secret123")
		require.NoError(t, err)

		ok, err := h.Verify("WrongPass", digest)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("output is salted and non-deterministic", func(t *testing.T) {
		d1, err := h.Hash("Secret123")
		require.NoError(t, err)
		d2, err := h.Hash("Secret123")
		require.NoError(t, err)
		assert.NotEqual(t, d1, d2)

		for _, d := range []string{d1, d2} {
			ok, err := h.Verify("Secret123", d)
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})

	t.Run("digest self-describes its cost", func(t *testing.T) {
		old := NewBcryptHasher(bcrypt.MinCost)
		digest, err := old.Hash("Secret123")
		require.NoError(t, err)

		// A hasher configured with a different cost still verifies digests
		// issued earlier.
		current := NewBcryptHasher(bcrypt.MinCost + 2)
		ok, err := current.Verify("Secret123", digest)
		require.NoError(t, err)
		assert.True(t, ok)

		cost, err := bcrypt.Cost([]byte(digest))
		require.NoError(t, err)
		assert.Equal(t, bcrypt.MinCost, cost)
	})

	t.Run("malformed digest is an error, not a mismatch", func(t *testing.T) {
		ok, err := h.Verify("Secret123", "not-a-bcrypt-digest")
		assert.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("out-of-range cost falls back to the default", func(t *testing.T) {
		assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(0).cost)
		assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(99).cost)
		assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(bcrypt.MinCost).cost)
	})
}
