package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests-only"

func TestGenerateAndValidateAccessToken(t *testing.T) {
	m := NewJWTManager(testSecret, 15*time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "shopper@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "shopper@example.com", claims.Email)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	m := NewJWTManager(testSecret, -1*time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "shopper@example.com")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	m := NewJWTManager(testSecret, 15*time.Minute, 24*time.Hour)
	other := NewJWTManager("a-completely-different-secret-key", 15*time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "shopper@example.com")
	require.NoError(t, err)

	claims, err := other.ValidateAccessToken(token)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	m := NewJWTManager(testSecret, 15*time.Minute, 24*time.Hour)

	claims, err := m.ValidateAccessToken("not-a-jwt")
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestGenerateAndValidateRefreshToken(t *testing.T) {
	m := NewJWTManager(testSecret, 15*time.Minute, 24*time.Hour)

	token, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	claims, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestRefreshTokenRejectedAsAccessToken_DifferentLifetimes(t *testing.T) {
	m := NewJWTManager(testSecret, 15*time.Minute, 24*time.Hour)

	access, err := m.GenerateAccessToken("user-1", "shopper@example.com")
	require.NoError(t, err)
	refresh, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	assert.NotEqual(t, access, refresh)
}
