package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService(t *testing.T) {
	t.Run("GenerateTokenReturnsMatchingHash", func(t *testing.T) {
		svc := NewTokenService()

		plainToken, tokenHash, err := svc.GenerateToken()

		require.NoError(t, err)
		assert.NotEmpty(t, plainToken)
		assert.Equal(t, svc.HashToken(plainToken), tokenHash)
	})

	t.Run("GeneratedTokensAreUnique", func(t *testing.T) {
		svc := NewTokenService()

		first, _, err := svc.GenerateToken()
		require.NoError(t, err)
		second, _, err := svc.GenerateToken()
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("HashTokenIsDeterministic", func(t *testing.T) {
		svc := NewTokenService()

		assert.Equal(t, svc.HashToken("abc"), svc.HashToken("abc"))
		assert.NotEqual(t, svc.HashToken("abc"), svc.HashToken("abd"))
		assert.Len(t, svc.HashToken("abc"), 64)
	})
}
