// internal/services/relief_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/exportbridge/exportbridge-backend/internal/apperrors"
	"github.com/exportbridge/exportbridge-backend/internal/models"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

func createTestScheme(t *testing.T, db *gorm.DB) *models.ReliefScheme {
	t.Helper()

	scheme := &models.ReliefScheme{
		Name:           "Duty Drawback Scheme",
		Agency:         "Customs Department",
		Description:    "Refund of duties on inputs used in exported goods.",
		BenefitSummary: "Rebate of basic customs duty",
		IsActive:       true,
	}
	require.NoError(t, db.Create(scheme).Error)
	return scheme
}

func TestApplyOncePerScheme(t *testing.T) {
	db := testDB(t)
	svc := NewReliefService(db)
	user := createTestUser(t, db, "applicant@example.com")
	scheme := createTestScheme(t, db)

	application, err := svc.Apply(scheme.ID, user.ID, &ApplyReliefRequest{Notes: "Applying for Q3 shipments."})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusSubmitted, application.Status)

	_, err = svc.Apply(scheme.ID, user.ID, &ApplyReliefRequest{})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	var rows int64
	db.Model(&models.UserReliefApplication{}).
		Where("user_id = ? AND scheme_id = ?", user.ID, scheme.ID).
		Count(&rows)
	assert.Equal(t, int64(1), rows)
}

func TestSchemeListMarksApplications(t *testing.T) {
	db := testDB(t)
	svc := NewReliefService(db)
	user := createTestUser(t, db, "applicant@example.com")
	applied := createTestScheme(t, db)

	other := &models.ReliefScheme{Name: "Market Access Initiative", Agency: "EPC", IsActive: true}
	require.NoError(t, db.Create(other).Error)

	_, err := svc.Apply(applied.ID, user.ID, &ApplyReliefRequest{})
	require.NoError(t, err)

	views, total, err := svc.GetSchemes(utils.PaginationParams{Page: 1, Limit: 20, SortBy: "created_at", Order: "desc"}, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	byName := make(map[string]SchemeView, len(views))
	for _, v := range views {
		byName[v.Name] = v
	}
	assert.True(t, byName["Duty Drawback Scheme"].HasApplied)
	assert.False(t, byName["Market Access Initiative"].HasApplied)
}

func TestApplyToUnknownSchemeReturnsNotFound(t *testing.T) {
	db := testDB(t)
	svc := NewReliefService(db)
	user := createTestUser(t, db, "applicant@example.com")

	_, err := svc.Apply(uuid.New(), user.ID, &ApplyReliefRequest{})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
