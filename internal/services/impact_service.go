// internal/services/impact_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/exportbridge/exportbridge-backend/internal/apperrors"
	"github.com/exportbridge/exportbridge-backend/internal/database"
	"github.com/exportbridge/exportbridge-backend/internal/models"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

type ImpactService struct {
	db *gorm.DB
}

type LogImpactRequest struct {
	EventType     string  `json:"event_type" validate:"required"`
	RevenueAmount float64 `json:"revenue_amount" validate:"omitempty,gte=0"`
	TargetCountry string  `json:"target_country" validate:"omitempty,country_name"`
	EventDate     string  `json:"event_date" validate:"omitempty,datetime=2006-01-02"`
	Notes         string  `json:"notes" validate:"omitempty,max=2000"`
}

type ImpactDashboard struct {
	TotalRevenue   float64            `json:"total_revenue"`
	OrdersSecured  int                `json:"orders_secured"`
	MarketsEntered int                `json:"markets_entered"`
	JobsRetained   int                `json:"jobs_retained"`
	EventCounts    map[string]int64   `json:"event_counts"`
	RecentEvents   []models.ImpactLog `json:"recent_events"`
}

func NewImpactService(db *gorm.DB) *ImpactService {
	return &ImpactService{db: db}
}

// LogEvent appends an impact log entry and folds it into the owner's
// aggregate metrics in the same transaction. Entries are append-only.
func (s *ImpactService) LogEvent(userID uuid.UUID, req *LogImpactRequest) (*models.ImpactLog, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	eventType := models.ImpactEventType(req.EventType)
	if !eventType.Valid() {
		return nil, apperrors.NewValidationError("event_type", "event_type is not a recognized impact event")
	}

	eventDate := time.Now()
	if req.EventDate != "" {
		parsed, err := time.Parse("2006-01-02", req.EventDate)
		if err != nil {
			return nil, apperrors.NewValidationError("event_date", "event_date must be in YYYY-MM-DD format")
		}
		eventDate = parsed
	}

	entry := &models.ImpactLog{
		UserID:        userID,
		EventType:     eventType,
		RevenueAmount: req.RevenueAmount,
		TargetCountry: req.TargetCountry,
		EventDate:     eventDate,
		Notes:         req.Notes,
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ? AND is_active = ?", userID, true).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to record impact event: %w", err)
		}

		return applyImpactEvent(tx, &user, entry)
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *ImpactService) GetEvents(userID uuid.UUID, params utils.PaginationParams) ([]models.ImpactLog, int64, error) {
	query := s.db.Model(&models.ImpactLog{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count impact events: %w", err)
	}

	allowedSortFields := []string{"event_date", "created_at", "revenue_amount"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var events []models.ImpactLog
	if err := query.Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch impact events: %w", err)
	}

	return events, total, nil
}

// Dashboard returns the user's aggregate metrics plus per-event-type
// counts and the most recent entries.
func (s *ImpactService) Dashboard(userID uuid.UUID) (*ImpactDashboard, error) {
	var user models.User
	if err := s.db.Where("id = ? AND is_active = ?", userID, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	type countRow struct {
		EventType string
		Total     int64
	}
	var rows []countRow
	if err := s.db.Model(&models.ImpactLog{}).
		Select("event_type, COUNT(*) as total").
		Where("user_id = ?", userID).
		Group("event_type").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate impact events: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.EventType] = row.Total
	}

	var recent []models.ImpactLog
	if err := s.db.Where("user_id = ?", userID).
		Order("event_date DESC").
		Limit(5).
		Find(&recent).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent events: %w", err)
	}

	return &ImpactDashboard{
		TotalRevenue:   user.TotalRevenue,
		OrdersSecured:  user.OrdersSecured,
		MarketsEntered: user.MarketsEntered,
		JobsRetained:   user.JobsRetained,
		EventCounts:    counts,
		RecentEvents:   recent,
	}, nil
}

// applyImpactEvent is the single place user aggregate metrics change.
// Callers run it inside the same transaction that records the event.
func applyImpactEvent(tx *gorm.DB, user *models.User, entry *models.ImpactLog) error {
	updates := make(map[string]interface{})

	switch entry.EventType {
	case models.ImpactEventPOReceived:
		updates["orders_secured"] = gorm.Expr("orders_secured + 1")
		if entry.RevenueAmount > 0 {
			updates["total_revenue"] = gorm.Expr("total_revenue + ?", entry.RevenueAmount)
		}
	case models.ImpactEventShipmentCompleted:
		if entry.RevenueAmount > 0 {
			updates["total_revenue"] = gorm.Expr("total_revenue + ?", entry.RevenueAmount)
		}
	case models.ImpactEventMarketEntered:
		updates["markets_entered"] = gorm.Expr("markets_entered + 1")
	case models.ImpactEventPitchSent:
		// Pitches are tracked in the log only.
	}

	if len(updates) == 0 {
		return nil
	}

	if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update impact metrics: %w", err)
	}
	return nil
}
