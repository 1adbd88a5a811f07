// internal/services/compliance_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/exportbridge/exportbridge-backend/internal/apperrors"
	"github.com/exportbridge/exportbridge-backend/internal/database"
	"github.com/exportbridge/exportbridge-backend/internal/models"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

type ComplianceService struct {
	db *gorm.DB
}

type UpdateRequirementRequest struct {
	Completed *bool  `json:"completed" validate:"required"`
	FileURL   string `json:"file_url" validate:"omitempty,url,max=500"`
}

func NewComplianceService(db *gorm.DB) *ComplianceService {
	return &ComplianceService{db: db}
}

// GetChecklist returns the user's checklist, provisioning it with the
// default requirement set on first access.
func (s *ComplianceService) GetChecklist(userID uuid.UUID) (*models.ComplianceChecklist, error) {
	var checklist models.ComplianceChecklist
	err := s.db.Where("user_id = ?", userID).
		Preload("Requirements", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&checklist).Error
	if err == nil {
		return &checklist, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		checklist = models.ComplianceChecklist{UserID: userID}
		if err := tx.Create(&checklist).Error; err != nil {
			return fmt.Errorf("failed to create checklist: %w", err)
		}

		for _, name := range models.DefaultComplianceRequirements {
			req := models.ComplianceRequirement{
				ChecklistID: checklist.ID,
				Name:        name,
			}
			if err := tx.Create(&req).Error; err != nil {
				return fmt.Errorf("failed to provision requirement: %w", err)
			}
			checklist.Requirements = append(checklist.Requirements, req)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &checklist, nil
}

// UpdateRequirement flips a requirement's completion state and recomputes
// the checklist percentage in the same transaction. The percentage is
// always derived from stored rows, never adjusted incrementally.
func (s *ComplianceService) UpdateRequirement(userID, requirementID uuid.UUID, req *UpdateRequirementRequest) (*models.ComplianceChecklist, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var checklist models.ComplianceChecklist
		if err := tx.Where("user_id = ?", userID).First(&checklist).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		var requirement models.ComplianceRequirement
		if err := tx.Where("id = ? AND checklist_id = ?", requirementID, checklist.ID).
			First(&requirement).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		updates := map[string]interface{}{"completed": *req.Completed}
		if *req.Completed {
			now := time.Now()
			updates["uploaded_at"] = now
			if req.FileURL != "" {
				updates["file_url"] = req.FileURL
			}
		} else {
			updates["uploaded_at"] = nil
			updates["file_url"] = ""
		}

		if err := tx.Model(&requirement).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update requirement: %w", err)
		}

		return recomputeCompletion(tx, checklist.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.GetChecklist(userID)
}

// AttachRequirementFile records an uploaded document against a requirement
// and marks it complete.
func (s *ComplianceService) AttachRequirementFile(userID, requirementID uuid.UUID, fileURL string) (*models.ComplianceChecklist, error) {
	completed := true
	return s.UpdateRequirement(userID, requirementID, &UpdateRequirementRequest{
		Completed: &completed,
		FileURL:   fileURL,
	})
}

func recomputeCompletion(tx *gorm.DB, checklistID uuid.UUID) error {
	var total, completed int64
	if err := tx.Model(&models.ComplianceRequirement{}).
		Where("checklist_id = ?", checklistID).
		Count(&total).Error; err != nil {
		return fmt.Errorf("failed to count requirements: %w", err)
	}
	if err := tx.Model(&models.ComplianceRequirement{}).
		Where("checklist_id = ? AND completed = ?", checklistID, true).
		Count(&completed).Error; err != nil {
		return fmt.Errorf("failed to count completed requirements: %w", err)
	}

	percentage := 0.0
	if total > 0 {
		percentage = math.Round(float64(completed)/float64(total)*10000) / 100
	}

	if err := tx.Model(&models.ComplianceChecklist{}).
		Where("id = ?", checklistID).
		Update("completion_percentage", percentage).Error; err != nil {
		return fmt.Errorf("failed to update completion percentage: %w", err)
	}
	return nil
}
