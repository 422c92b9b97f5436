package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_DistinctSalts(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("longenough1")
	require.NoError(t, err)
	h2, err := HashPassword("longenough1")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "two hashes of the same password must use distinct salts")
	assert.True(t, CheckPasswordHash("longenough1", h1))
	assert.True(t, CheckPasswordHash("longenough1", h2))
}

func TestCheckPasswordHash_WrongPassword(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("longenough1")
	require.NoError(t, err)

	assert.False(t, CheckPasswordHash("wrongpass1", h))
	assert.False(t, CheckPasswordHash("", h))
}

func TestCheckPasswordHash_GarbageHash(t *testing.T) {
	t.Parallel()

	assert.False(t, CheckPasswordHash("longenough1", "not-a-bcrypt-hash"))
}
