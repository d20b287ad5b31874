package sec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSalt(t *testing.T) {
	t.Parallel()

	salt1, err := GenerateSalt()
	require.NoError(t, err)
	salt2, err := GenerateSalt()
	require.NoError(t, err)

	assert.Len(t, salt1, saltBytes*2) // hex encoded
	assert.NotEqual(t, salt1, salt2)
}

func TestHashPassword(t *testing.T) {
	t.Parallel()

	salt, err := GenerateSalt()
	require.NoError(t, err)

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, HashPassword("mypassword", salt), HashPassword("mypassword", salt))
	})

	t.Run("distinct passwords", func(t *testing.T) {
		t.Parallel()
		assert.NotEqual(t, HashPassword("mypassword", salt), HashPassword("otherpassword", salt))
	})

	t.Run("distinct salts", func(t *testing.T) {
		t.Parallel()
		other, err := GenerateSalt()
		require.NoError(t, err)
		assert.NotEqual(t, HashPassword("mypassword", salt), HashPassword("mypassword", other))
	})

	t.Run("output length", func(t *testing.T) {
		t.Parallel()
		assert.Len(t, HashPassword("mypassword", salt), hashKeyLength*2) // hex encoded
	})
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	salt, err := GenerateSalt()
	require.NoError(t, err)
	hash := HashPassword("correctpassword", salt)

	t.Run("correct password", func(t *testing.T) {
		t.Parallel()
		assert.True(t, VerifyPassword("correctpassword", hash, salt))
	})

	t.Run("incorrect password", func(t *testing.T) {
		t.Parallel()
		assert.False(t, VerifyPassword("wrongpassword", hash, salt))
	})

	t.Run("wrong salt", func(t *testing.T) {
		t.Parallel()
		other, err := GenerateSalt()
		require.NoError(t, err)
		assert.False(t, VerifyPassword("correctpassword", hash, other))
	})
}
