package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pwd")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret-pwd", hash)

	assert.True(t, CheckPassword(hash, "s3cret-pwd"))
	assert.False(t, CheckPassword(hash, "wrong-pwd"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret-pwd"))
}
