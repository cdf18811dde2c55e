package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret-key"

	token, claims, err := GenerateToken(secret, "user-1", "admin", time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, claims.ID)

	parsed, err := ValidateToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", parsed.UserID)
	assert.Equal(t, "admin", parsed.Role)
	assert.Equal(t, claims.ID, parsed.ID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _, err := GenerateToken("secret1", "user-1", "intern", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken("secret2", token)
	assert.Error(t, err)
}

func TestValidateTokenInvalid(t *testing.T) {
	_, err := ValidateToken("secret", "not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	token, _, err := GenerateToken("secret", "user-1", "intern", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken("secret", token)
	assert.Error(t, err)
}

func TestTokenExpiry(t *testing.T) {
	ttl := 24 * time.Hour
	_, claims, err := GenerateToken("secret", "user-1", "intern", ttl)
	require.NoError(t, err)

	diff := time.Until(claims.ExpiresAt.Time) - ttl
	assert.Less(t, diff.Abs(), 5*time.Second)
}

func TestJTIUnique(t *testing.T) {
	_, a, err := GenerateToken("secret", "user-1", "intern", time.Hour)
	require.NoError(t, err)
	_, b, err := GenerateToken("secret", "user-1", "intern", time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}
