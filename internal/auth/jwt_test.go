package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.Generate("admin-1", "admin@example.com")
	require.NoError(t, err)

	claims, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", time.Hour).Generate("admin-1", "admin@example.com")
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.Generate("admin-1", "admin@example.com")
	require.NoError(t, err)

	_, err = manager.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := NewJWTManager("test-secret", time.Hour).Verify("not-a-token")
	assert.Error(t, err)
}
