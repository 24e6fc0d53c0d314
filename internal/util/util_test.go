package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomChars(t *testing.T) {
	s, err := RandomChars(32)
	require.NoError(t, err)
	assert.Len(t, s, 32)
	for _, r := range s {
		assert.Contains(t, string(allowedRandomChars), string(r))
	}

	// Ambiguous characters never appear.
	for _, forbidden := range "01OIU" {
		assert.NotContains(t, s, string(forbidden))
	}
}

func TestRandomCharsZeroLength(t *testing.T) {
	s, err := RandomChars(0)
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestRandomIntnBounds(t *testing.T) {
	for i := 0; i < 100; i++ {
		n, err := RandomIntn(7)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 7)
	}
}

func TestRandomBytes(t *testing.T) {
	a, err := RandomBytes(16)
	require.NoError(t, err)
	b, err := RandomBytes(16)
	require.NoError(t, err)
	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
}

func TestHashAndVerifyPassword(t *testing.T) {
	encoded, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	match, err := VerifyPassword("hunter2", encoded)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = VerifyPassword("hunter3", encoded)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyPasswordNormalizesUnicode(t *testing.T) {
	// Composed and decomposed forms of the same password must match.
	encoded, err := HashPassword("café")
	require.NoError(t, err)
	match, err := VerifyPassword("café", encoded)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestVerifyPasswordRejectsGarbage(t *testing.T) {
	_, err := VerifyPassword("pw", "not-an-encoded-hash")
	assert.Error(t, err)
}
