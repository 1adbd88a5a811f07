// internal/services/main_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/exportbridge/exportbridge-backend/internal/database"
	"github.com/exportbridge/exportbridge-backend/internal/models"
)

// testDB opens a fresh in-memory database per test. The shared-cache DSN
// keeps every pooled connection on the same store.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.RunMigrations(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:       email,
		CompanyName: "Test Exports Ltd",
		Role:        models.UserRoleSeller,
		Sector:      models.SectorSeafood,
		IsActive:    true,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, authorID uuid.UUID) *models.Post {
	t.Helper()

	post := &models.Post{
		AuthorID: authorID,
		Title:    "How to get an EU health certificate?",
		Content:  "Looking for the document checklist for frozen shrimp shipments to Germany.",
		Category: models.PostCategoryCompliance,
		Tags:     models.StringList{"eu", "certification"},
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
