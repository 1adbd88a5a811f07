// internal/utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exportbridge/exportbridge-backend/internal/apperrors"
)

func TestUserTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	userID := uuid.New()
	token, err := GenerateUserJWT(userID, 1)
	require.NoError(t, err)

	claims, err := ValidateUserJWT(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, TokenTypeUser, claims.TokenType)
}

func TestAdminTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateAdminJWT("admin", 1)
	require.NoError(t, err)

	claims, err := ValidateAdminJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.AdminID)
	assert.True(t, claims.IsAdmin)
}

// The two token kinds share a signing secret but are never
// interchangeable.
func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	SetJWTSecret("test-secret")

	adminToken, err := GenerateAdminJWT("admin", 1)
	require.NoError(t, err)
	_, err = ValidateUserJWT(adminToken)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	userToken, err := GenerateUserJWT(uuid.New(), 1)
	require.NoError(t, err)
	_, err = ValidateAdminJWT(userToken)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestGarbageTokenIsUnauthenticated(t *testing.T) {
	SetJWTSecret("test-secret")

	_, err := ValidateUserJWT("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}
