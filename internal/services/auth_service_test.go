// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exportbridge/exportbridge-backend/internal/apperrors"
	"github.com/exportbridge/exportbridge-backend/internal/config"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		Environment: "development",
		JWT: config.JWTConfig{
			SecretKey:     "test-secret",
			UserTokenTTL:  1,
			AdminTokenTTL: 1,
		},
		Admin: config.AdminConfig{
			ID:       "admin",
			Password: "admin-password",
		},
	}
}

func TestSignupAndSignin(t *testing.T) {
	db := testDB(t)
	cfg := testAuthConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	svc := NewAuthService(db, cfg)

	resp, err := svc.Signup(&SignupRequest{
		Email:       "new@example.com",
		Password:    "password123",
		CompanyName: "New Exports Ltd",
		Role:        "Seller",
		Sector:      "Seafood",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.NotEqual(t, "password123", resp.User.PasswordHash)

	signin, err := svc.Signin(&SigninRequest{Email: "new@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, signin.Token)
	assert.NotNil(t, signin.User.LastLoginAt)
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	db := testDB(t)
	cfg := testAuthConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	svc := NewAuthService(db, cfg)

	req := &SignupRequest{
		Email:       "dup@example.com",
		Password:    "password123",
		CompanyName: "Dup Exports",
		Role:        "Seller",
	}
	_, err := svc.Signup(req)
	require.NoError(t, err)

	_, err = svc.Signup(req)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSigninWrongPassword(t *testing.T) {
	db := testDB(t)
	cfg := testAuthConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	svc := NewAuthService(db, cfg)
	createTestUser(t, db, "user@example.com")

	_, err := svc.Signin(&SigninRequest{Email: "user@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestSigninDeactivatedAccount(t *testing.T) {
	db := testDB(t)
	cfg := testAuthConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	svc := NewAuthService(db, cfg)
	user := createTestUser(t, db, "gone@example.com")

	require.NoError(t, svc.Deactivate(user.ID))

	_, err := svc.Signin(&SigninRequest{Email: "gone@example.com", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAdminLogin(t *testing.T) {
	db := testDB(t)
	cfg := testAuthConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	svc := NewAuthService(db, cfg)

	resp, err := svc.AdminLogin(&AdminLoginRequest{AdminID: "admin", Password: "admin-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.AdminLogin(&AdminLoginRequest{AdminID: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}
