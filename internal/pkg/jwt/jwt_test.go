package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	loans := []string{"1234", "5678"}

	token, err := GenerateToken("user-1", "jdoe", "USER", loans, testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "jdoe", claims.Username)
	assert.Equal(t, "USER", claims.Role)
	assert.Equal(t, loans, claims.LoanNumbers)
	assert.False(t, claims.IsAdmin())
	assert.NotEmpty(t, claims.ID) // jti
}

func TestValidateTokenNilLoanList(t *testing.T) {
	token, err := GenerateToken("user-1", "jdoe", "USER", nil, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.NotNil(t, claims.LoanNumbers)
	assert.Empty(t, claims.LoanNumbers)
}

func TestValidateExpiredToken(t *testing.T) {
	token, err := GenerateToken("user-1", "jdoe", "USER", nil, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateTamperedToken(t *testing.T) {
	token, err := GenerateToken("user-1", "jdoe", "USER", nil, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "another-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateMalformedToken(t *testing.T) {
	_, err := ValidateToken("not.a.token", testSecret)
	assert.ErrorIs(t, err, ErrTokenMalformed)

	_, err = ValidateToken("", testSecret)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestAdminClaims(t *testing.T) {
	token, err := GenerateToken("admin-1", "root", "ADMIN", nil, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())
}
