package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	s := NewService("secret")

	hash, err := s.HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.NoError(t, s.CheckPassword("hunter2", hash))
	assert.Error(t, s.CheckPassword("hunter3", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	s := NewService("secret")

	token, err := s.GenerateToken("user-123")
	require.NoError(t, err)

	userID, err := s.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := NewService("secret-a").GenerateToken("user-123")
	require.NoError(t, err)

	_, err = NewService("secret-b").VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenGarbage(t *testing.T) {
	_, err := NewService("secret").VerifyToken("not-a-token")
	assert.Error(t, err)
}
