// internal/middleware/auth.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/exportbridge/exportbridge-backend/internal/apperrors"
	"github.com/exportbridge/exportbridge-backend/internal/models"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

// UserAuthRequired resolves a bearer token of the user kind, loads the
// referenced user and attaches it to the request context. Admin tokens are
// rejected here: the two kinds are not interchangeable. OPTIONS requests
// never reach this middleware; the CORS layer answers preflights first.
func UserAuthRequired(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "authentication required")
			return
		}

		claims, err := utils.ValidateUserJWT(tokenString)
		if err != nil {
			abortAuthError(c, err)
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		var user models.User
		if err := db.Where("id = ? AND is_active = ?", userID, true).First(&user).Error; err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set("user_id", user.ID)
		c.Set("current_user", &user)
		c.Next()
	}
}

// AdminAuthRequired resolves a bearer token of the admin kind. Admin
// identity is the environment-configured credential pair, not a user
// record, so no storage lookup happens here.
func AdminAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "authentication required")
			return
		}

		claims, err := utils.ValidateAdminJWT(tokenString)
		if err != nil {
			abortAuthError(c, err)
			return
		}

		c.Set("admin_id", claims.AdminID)
		c.Next()
	}
}

// OptionalUserAuth attaches the principal when a valid user token is
// present and passes through anonymously otherwise. List endpoints use it
// to compute isLiked/isOwner display fields.
func OptionalUserAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := utils.ValidateUserJWT(tokenString)
		if err != nil {
			c.Next()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.Next()
			return
		}

		var user models.User
		if err := db.Where("id = ? AND is_active = ?", userID, true).First(&user).Error; err != nil {
			c.Next()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("current_user", &user)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}

func abortAuthError(c *gin.Context, err error) {
	// A token that parses but fails a claim check (wrong kind) is 403;
	// missing, unparseable, or expired tokens are 401.
	if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, utils.APIResponse{
			Success: false,
			Message: "access denied",
		})
		c.Abort()
		return
	}
	abortUnauthorized(c, "invalid or expired token")
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, utils.APIResponse{
		Success: false,
		Message: message,
	})
	c.Abort()
}
