package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("motdepasse123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "motdepasse123", hash)

	assert.True(t, VerifyPassword("motdepasse123", hash))
	assert.False(t, VerifyPassword("mauvais", hash))
	assert.False(t, VerifyPassword("motdepasse123", "pas-un-hash"))
}
