package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("super123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "super123", hash)

	assert.True(t, CheckPassword(hash, "super123"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "super123"))
}
