package auth_test

import (
	"strings"
	"testing"

	"github.com/serroba/url-shortener/internal/apperr"
	"github.com/serroba/url-shortener/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := auth.NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	t.Run("verifies matching secret", func(t *testing.T) {
		assert.True(t, h.Verify("secret123", hash))
	})

	t.Run("rejects other secret", func(t *testing.T) {
		assert.False(t, h.Verify("secret124", hash))
	})

	t.Run("rejects malformed hash", func(t *testing.T) {
		assert.False(t, h.Verify("secret123", "not-a-hash"))
	})

	t.Run("salts every hash", func(t *testing.T) {
		again, err := h.Hash("secret123")
		require.NoError(t, err)
		assert.NotEqual(t, hash, again)
	})

	t.Run("rejects secrets bcrypt cannot hash", func(t *testing.T) {
		_, err := h.Hash(strings.Repeat("é", auth.MaxSecretBytes/2+1))

		require.ErrorIs(t, err, apperr.ErrValidation)
		assert.Equal(t, "password must be at most 72 bytes", apperr.Message(err))
	})

	t.Run("accepts secrets at the byte limit", func(t *testing.T) {
		_, err := h.Hash(strings.Repeat("a", auth.MaxSecretBytes))

		assert.NoError(t, err)
	})
}
