// internal/services/relief_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/exportbridge/exportbridge-backend/internal/apperrors"
	"github.com/exportbridge/exportbridge-backend/internal/models"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

type ReliefService struct {
	db *gorm.DB
}

type ApplyReliefRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=2000"`
}

// SchemeView pairs a scheme with the caller's application, if any.
type SchemeView struct {
	models.ReliefScheme
	HasApplied        bool                     `json:"has_applied"`
	ApplicationStatus models.ApplicationStatus `json:"application_status,omitempty"`
}

func NewReliefService(db *gorm.DB) *ReliefService {
	return &ReliefService{db: db}
}

func (s *ReliefService) GetSchemes(params utils.PaginationParams, userID uuid.UUID) ([]SchemeView, int64, error) {
	query := s.db.Model(&models.ReliefScheme{}).Where("is_active = ?", true)

	if params.Search != "" {
		term := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(agency) LIKE ? OR LOWER(description) LIKE ?", term, term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count schemes: %w", err)
	}

	allowedSortFields := []string{"name", "deadline", "created_at"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var schemes []models.ReliefScheme
	if err := query.Find(&schemes).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch schemes: %w", err)
	}

	applications, err := s.applicationsByScheme(schemes, userID)
	if err != nil {
		return nil, 0, err
	}

	views := make([]SchemeView, 0, len(schemes))
	for i := range schemes {
		view := SchemeView{ReliefScheme: schemes[i]}
		if app, ok := applications[schemes[i].ID]; ok {
			view.HasApplied = true
			view.ApplicationStatus = app.Status
		}
		views = append(views, view)
	}

	return views, total, nil
}

// Apply records the caller's application for a scheme. A second application
// for the same scheme is a conflict.
func (s *ReliefService) Apply(schemeID, userID uuid.UUID, req *ApplyReliefRequest) (*models.UserReliefApplication, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var scheme models.ReliefScheme
	if err := s.db.Where("id = ? AND is_active = ?", schemeID, true).First(&scheme).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var existing models.UserReliefApplication
	if err := s.db.Where("user_id = ? AND scheme_id = ?", userID, schemeID).
		First(&existing).Error; err == nil {
		return nil, fmt.Errorf("you have already applied to this scheme: %w", apperrors.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	application := &models.UserReliefApplication{
		UserID:   userID,
		SchemeID: schemeID,
		Status:   models.ApplicationStatusSubmitted,
		Notes:    req.Notes,
	}
	if err := s.db.Create(application).Error; err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	application.Scheme = &scheme
	return application, nil
}

func (s *ReliefService) GetApplications(userID uuid.UUID, params utils.PaginationParams) ([]models.UserReliefApplication, int64, error) {
	query := s.db.Model(&models.UserReliefApplication{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	allowedSortFields := []string{"created_at"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var applications []models.UserReliefApplication
	if err := query.Preload("Scheme").Find(&applications).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch applications: %w", err)
	}

	return applications, total, nil
}

func (s *ReliefService) applicationsByScheme(schemes []models.ReliefScheme, userID uuid.UUID) (map[uuid.UUID]models.UserReliefApplication, error) {
	byScheme := make(map[uuid.UUID]models.UserReliefApplication)
	if len(schemes) == 0 {
		return byScheme, nil
	}

	ids := make([]uuid.UUID, 0, len(schemes))
	for i := range schemes {
		ids = append(ids, schemes[i].ID)
	}

	var applications []models.UserReliefApplication
	if err := s.db.Where("user_id = ? AND scheme_id IN ?", userID, ids).
		Find(&applications).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch applications: %w", err)
	}

	for _, app := range applications {
		byScheme[app.SchemeID] = app
	}
	return byScheme, nil
}
