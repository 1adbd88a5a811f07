// internal/middleware/auth_test.go
package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/exportbridge/exportbridge-backend/internal/database"
	"github.com/exportbridge/exportbridge-backend/internal/models"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

func setupAuthTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	r := gin.New()
	r.GET("/user-only", UserAuthRequired(db), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/admin-only", AdminAuthRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, db
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUserRouteAcceptsUserToken(t *testing.T) {
	r, db := setupAuthTest(t)

	user := &models.User{Email: "u@example.com", CompanyName: "Co", IsActive: true}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)

	token, err := utils.GenerateUserJWT(user.ID, 1)
	require.NoError(t, err)

	w := doRequest(r, "/user-only", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

// An admin token is never treated as a valid ordinary user.
func TestUserRouteRejectsAdminToken(t *testing.T) {
	r, _ := setupAuthTest(t)

	token, err := utils.GenerateAdminJWT("admin", 1)
	require.NoError(t, err)

	w := doRequest(r, "/user-only", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminRouteRejectsUserToken(t *testing.T) {
	r, _ := setupAuthTest(t)

	token, err := utils.GenerateUserJWT(uuid.New(), 1)
	require.NoError(t, err)

	w := doRequest(r, "/admin-only", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	r, _ := setupAuthTest(t)

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/user-only", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/user-only", "garbage").Code)
}

func TestDeactivatedUserTokenRejected(t *testing.T) {
	r, db := setupAuthTest(t)

	user := &models.User{Email: "gone@example.com", CompanyName: "Co", IsActive: false}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)

	token, err := utils.GenerateUserJWT(user.ID, 1)
	require.NoError(t, err)

	w := doRequest(r, "/user-only", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
