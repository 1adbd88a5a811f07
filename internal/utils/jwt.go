// internal/utils/jwt.go
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/exportbridge/exportbridge-backend/internal/apperrors"
)

// Two token kinds share one signing mechanism, discriminated by the
// token_type claim. User tokens reference a user record; admin tokens are
// issued from the environment-configured credential pair and carry no user
// id. The kinds are not interchangeable: each validator rejects the other.
const (
	TokenTypeUser  = "user"
	TokenTypeAdmin = "admin"
)

type UserClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type AdminClaims struct {
	AdminID   string `json:"admin_id"`
	IsAdmin   bool   `json:"is_admin"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

var jwtSecret = []byte("your-secret-key-change-in-production")

func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

func GenerateUserJWT(userID uuid.UUID, ttlHours int) (string, error) {
	claims := UserClaims{
		UserID:    userID.String(),
		TokenType: TokenTypeUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(ttlHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "exportbridge",
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func GenerateAdminJWT(adminID string, ttlHours int) (string, error) {
	claims := AdminClaims{
		AdminID:   adminID,
		IsAdmin:   true,
		TokenType: TokenTypeAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(ttlHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "exportbridge",
			Subject:   adminID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateUserJWT returns ErrUnauthenticated for tokens that do not parse
// or have expired, and ErrForbidden for tokens that parse but are of the
// wrong kind.
func ValidateUserJWT(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, keyFunc)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrUnauthenticated
	}

	if claims.TokenType != TokenTypeUser || claims.UserID == "" {
		return nil, apperrors.ErrForbidden
	}

	return claims, nil
}

func ValidateAdminJWT(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, keyFunc)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrUnauthenticated
	}

	if claims.TokenType != TokenTypeAdmin || !claims.IsAdmin {
		return nil, apperrors.ErrForbidden
	}

	return claims, nil
}

func keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return jwtSecret, nil
}
