// internal/services/compliance_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exportbridge/exportbridge-backend/internal/apperrors"
	"github.com/exportbridge/exportbridge-backend/internal/models"
)

func TestChecklistProvisionedOnFirstRead(t *testing.T) {
	db := testDB(t)
	svc := NewComplianceService(db)
	user := createTestUser(t, db, "exporter@example.com")

	checklist, err := svc.GetChecklist(user.ID)
	require.NoError(t, err)
	assert.Len(t, checklist.Requirements, len(models.DefaultComplianceRequirements))
	assert.Zero(t, checklist.CompletionPercentage)

	// A second read reuses the same checklist.
	again, err := svc.GetChecklist(user.ID)
	require.NoError(t, err)
	assert.Equal(t, checklist.ID, again.ID)

	var rows int64
	db.Model(&models.ComplianceChecklist{}).Where("user_id = ?", user.ID).Count(&rows)
	assert.Equal(t, int64(1), rows)
}

func TestUpdateRequirementRecomputesPercentage(t *testing.T) {
	db := testDB(t)
	svc := NewComplianceService(db)
	user := createTestUser(t, db, "exporter@example.com")

	checklist, err := svc.GetChecklist(user.ID)
	require.NoError(t, err)

	completed := true
	updated, err := svc.UpdateRequirement(user.ID, checklist.Requirements[0].ID, &UpdateRequirementRequest{
		Completed: &completed,
	})
	require.NoError(t, err)
	assert.InDelta(t, 12.5, updated.CompletionPercentage, 0.01)

	req := findRequirement(t, updated, checklist.Requirements[0].Name)
	assert.True(t, req.Completed)
	assert.NotNil(t, req.UploadedAt)

	// Unchecking rolls the percentage back and clears the upload fields.
	notCompleted := false
	updated, err = svc.UpdateRequirement(user.ID, checklist.Requirements[0].ID, &UpdateRequirementRequest{
		Completed: &notCompleted,
	})
	require.NoError(t, err)
	assert.Zero(t, updated.CompletionPercentage)

	req = findRequirement(t, updated, checklist.Requirements[0].Name)
	assert.False(t, req.Completed)
	assert.Nil(t, req.UploadedAt)
	assert.Empty(t, req.FileURL)
}

func TestUpdateRequirementOfAnotherUser(t *testing.T) {
	db := testDB(t)
	svc := NewComplianceService(db)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")

	ownerChecklist, err := svc.GetChecklist(owner.ID)
	require.NoError(t, err)
	_, err = svc.GetChecklist(other.ID)
	require.NoError(t, err)

	completed := true
	_, err = svc.UpdateRequirement(other.ID, ownerChecklist.Requirements[0].ID, &UpdateRequirementRequest{
		Completed: &completed,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func findRequirement(t *testing.T, checklist *models.ComplianceChecklist, name string) *models.ComplianceRequirement {
	t.Helper()
	for i := range checklist.Requirements {
		if checklist.Requirements[i].Name == name {
			return &checklist.Requirements[i]
		}
	}
	t.Fatalf("requirement %q not found", name)
	return nil
}
