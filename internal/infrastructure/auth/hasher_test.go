package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, h.IsHash(hash))
	assert.False(t, h.IsHash("correct horse"))

	assert.NoError(t, h.Verify("correct horse", hash))
	assert.EqualError(t, h.Verify("wrong", hash), "password verification failed")
	assert.EqualError(t, h.Verify("correct horse", "not-a-hash"), "password verification failed")
}

func TestNewBcryptPasswordHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptPasswordHasher(99).cost)
	assert.Equal(t, 12, NewBcryptPasswordHasher(12).cost)
}
