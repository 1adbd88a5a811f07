// internal/services/buyer_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/exportbridge/exportbridge-backend/internal/apperrors"
	"github.com/exportbridge/exportbridge-backend/internal/database"
	"github.com/exportbridge/exportbridge-backend/internal/models"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

type BuyerService struct {
	db *gorm.DB
}

type BuyerSearchParams struct {
	utils.PaginationParams
	Country         string
	ProductCategory string
}

type UpdateInteractionRequest struct {
	Status    string  `json:"status" validate:"required"`
	Notes     string  `json:"notes" validate:"omitempty,max=2000"`
	DealValue float64 `json:"deal_value" validate:"omitempty,gte=0"`
}

// BuyerView pairs a directory entry with the caller's interaction state.
type BuyerView struct {
	models.Buyer
	InteractionStatus models.InteractionStatus `json:"interaction_status"`
	InteractionNotes  string                   `json:"interaction_notes,omitempty"`
	DealValue         float64                  `json:"deal_value,omitempty"`
	LastContactAt     *time.Time               `json:"last_contact_at,omitempty"`
}

func NewBuyerService(db *gorm.DB) *BuyerService {
	return &BuyerService{db: db}
}

// GetBuyers lists active directory entries. "All Countries" and
// "All Categories" sentinels from the client mean no filter.
func (s *BuyerService) GetBuyers(params BuyerSearchParams, userID uuid.UUID) ([]BuyerView, int64, error) {
	query := s.db.Model(&models.Buyer{}).Where("is_active = ?", true)

	if params.Country != "" && !strings.HasPrefix(params.Country, "All") {
		query = query.Where("country = ?", params.Country)
	}

	if params.ProductCategory != "" && !strings.HasPrefix(params.ProductCategory, "All") {
		query = query.Where("LOWER(product_categories) LIKE ?", "%"+strings.ToLower(params.ProductCategory)+"%")
	}

	if params.Search != "" {
		term := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(country) LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count buyers: %w", err)
	}

	allowedSortFields := []string{"name", "country", "created_at"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var buyers []models.Buyer
	if err := query.Find(&buyers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch buyers: %w", err)
	}

	interactions, err := s.interactionsByBuyer(buyers, userID)
	if err != nil {
		return nil, 0, err
	}

	views := make([]BuyerView, 0, len(buyers))
	for i := range buyers {
		view := BuyerView{Buyer: buyers[i], InteractionStatus: models.InteractionStatusNotContacted}
		if in, ok := interactions[buyers[i].ID]; ok {
			view.InteractionStatus = in.Status
			view.InteractionNotes = in.Notes
			view.DealValue = in.DealValue
			view.LastContactAt = in.LastContactAt
		}
		views = append(views, view)
	}

	return views, total, nil
}

func (s *BuyerService) GetBuyer(buyerID, userID uuid.UUID) (*BuyerView, error) {
	var buyer models.Buyer
	if err := s.db.Where("id = ? AND is_active = ?", buyerID, true).First(&buyer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	view := &BuyerView{Buyer: buyer, InteractionStatus: models.InteractionStatusNotContacted}

	var interaction models.UserBuyerInteraction
	err := s.db.Where("user_id = ? AND buyer_id = ?", userID, buyerID).First(&interaction).Error
	if err == nil {
		view.InteractionStatus = interaction.Status
		view.InteractionNotes = interaction.Notes
		view.DealValue = interaction.DealValue
		view.LastContactAt = interaction.LastContactAt
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return view, nil
}

// UpdateInteraction upserts the caller's row for this buyer. Moving into
// Deal Closed records a po_received impact event and updates the user's
// aggregate metrics in the same transaction.
func (s *BuyerService) UpdateInteraction(buyerID, userID uuid.UUID, req *UpdateInteractionRequest) (*models.UserBuyerInteraction, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	status := models.InteractionStatus(req.Status)
	if !status.Valid() {
		return nil, apperrors.NewValidationError("status", "status is not a recognized interaction status")
	}

	var interaction models.UserBuyerInteraction

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var buyer models.Buyer
		if err := tx.Where("id = ? AND is_active = ?", buyerID, true).First(&buyer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		now := time.Now()
		wasDealClosed := false

		err := tx.Where("user_id = ? AND buyer_id = ?", userID, buyerID).First(&interaction).Error
		switch {
		case err == nil:
			wasDealClosed = interaction.Status == models.InteractionStatusDealClosed
			updates := map[string]interface{}{
				"status":          status,
				"last_contact_at": now,
			}
			if req.Notes != "" {
				updates["notes"] = req.Notes
			}
			if req.DealValue > 0 {
				updates["deal_value"] = req.DealValue
			}
			if err := tx.Model(&interaction).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update interaction: %w", err)
			}
			interaction.Status = status
			interaction.LastContactAt = &now
			if req.Notes != "" {
				interaction.Notes = req.Notes
			}
			if req.DealValue > 0 {
				interaction.DealValue = req.DealValue
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			interaction = models.UserBuyerInteraction{
				UserID:        userID,
				BuyerID:       buyerID,
				Status:        status,
				Notes:         req.Notes,
				DealValue:     req.DealValue,
				LastContactAt: &now,
			}
			if err := tx.Create(&interaction).Error; err != nil {
				return fmt.Errorf("failed to create interaction: %w", err)
			}
		default:
			return fmt.Errorf("database error: %w", err)
		}

		// Deal-closed side effects fire once per transition, not on
		// repeated saves in the same status.
		if status == models.InteractionStatusDealClosed && !wasDealClosed {
			var user models.User
			if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
				return fmt.Errorf("database error: %w", err)
			}

			entry := &models.ImpactLog{
				UserID:        userID,
				EventType:     models.ImpactEventPOReceived,
				RevenueAmount: interaction.DealValue,
				TargetCountry: buyer.Country,
				EventDate:     now,
				Notes:         fmt.Sprintf("Deal closed with %s", buyer.Name),
			}
			if err := tx.Create(entry).Error; err != nil {
				return fmt.Errorf("failed to record impact event: %w", err)
			}

			if err := applyImpactEvent(tx, &user, entry); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.db.Preload("Buyer").First(&interaction, interaction.ID)
	return &interaction, nil
}

func (s *BuyerService) GetInteractions(userID uuid.UUID, params utils.PaginationParams) ([]models.UserBuyerInteraction, int64, error) {
	query := s.db.Model(&models.UserBuyerInteraction{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count interactions: %w", err)
	}

	allowedSortFields := []string{"last_contact_at", "created_at", "deal_value"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var interactions []models.UserBuyerInteraction
	if err := query.Preload("Buyer").Find(&interactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch interactions: %w", err)
	}

	return interactions, total, nil
}

// Countries returns the distinct buyer countries for filter dropdowns.
func (s *BuyerService) Countries() ([]string, error) {
	var countries []string
	if err := s.db.Model(&models.Buyer{}).
		Where("is_active = ?", true).
		Distinct("country").
		Order("country ASC").
		Pluck("country", &countries).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch countries: %w", err)
	}
	return countries, nil
}

func (s *BuyerService) interactionsByBuyer(buyers []models.Buyer, userID uuid.UUID) (map[uuid.UUID]models.UserBuyerInteraction, error) {
	byBuyer := make(map[uuid.UUID]models.UserBuyerInteraction)
	if len(buyers) == 0 {
		return byBuyer, nil
	}

	ids := make([]uuid.UUID, 0, len(buyers))
	for i := range buyers {
		ids = append(ids, buyers[i].ID)
	}

	var interactions []models.UserBuyerInteraction
	if err := s.db.Where("user_id = ? AND buyer_id IN ?", userID, ids).
		Find(&interactions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch interactions: %w", err)
	}

	for _, in := range interactions {
		byBuyer[in.BuyerID] = in
	}
	return byBuyer, nil
}
