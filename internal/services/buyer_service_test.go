// internal/services/buyer_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/exportbridge/exportbridge-backend/internal/models"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

func createTestBuyer(t *testing.T, db *gorm.DB, name, country string) *models.Buyer {
	t.Helper()

	buyer := &models.Buyer{
		Name:              name,
		Country:           country,
		ProductCategories: models.StringList{"Frozen Shrimp"},
		IsActive:          true,
	}
	require.NoError(t, db.Create(buyer).Error)
	return buyer
}

func TestInteractionUpsertKeepsOneRowPerPair(t *testing.T) {
	db := testDB(t)
	svc := NewBuyerService(db)
	user := createTestUser(t, db, "seller@example.com")
	buyer := createTestBuyer(t, db, "Nordsee Imports", "Germany")

	first, err := svc.UpdateInteraction(buyer.ID, user.ID, &UpdateInteractionRequest{Status: "Contacted"})
	require.NoError(t, err)
	assert.Equal(t, models.InteractionStatusContacted, first.Status)

	second, err := svc.UpdateInteraction(buyer.ID, user.ID, &UpdateInteractionRequest{Status: "Negotiating", Notes: "Sent samples"})
	require.NoError(t, err)
	assert.Equal(t, models.InteractionStatusNegotiating, second.Status)
	assert.Equal(t, "Sent samples", second.Notes)

	var rows int64
	db.Model(&models.UserBuyerInteraction{}).
		Where("user_id = ? AND buyer_id = ?", user.ID, buyer.ID).
		Count(&rows)
	assert.Equal(t, int64(1), rows)
}

func TestDealClosedRecordsImpactOnce(t *testing.T) {
	db := testDB(t)
	svc := NewBuyerService(db)
	user := createTestUser(t, db, "seller@example.com")
	buyer := createTestBuyer(t, db, "Tokyo Marine Foods", "Japan")

	_, err := svc.UpdateInteraction(buyer.ID, user.ID, &UpdateInteractionRequest{
		Status:    "Deal Closed",
		DealValue: 50000,
	})
	require.NoError(t, err)

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, 1, updated.OrdersSecured)
	assert.Equal(t, float64(50000), updated.TotalRevenue)

	var logs int64
	db.Model(&models.ImpactLog{}).Where("user_id = ?", user.ID).Count(&logs)
	assert.Equal(t, int64(1), logs)

	// Saving the same status again does not double-count.
	_, err = svc.UpdateInteraction(buyer.ID, user.ID, &UpdateInteractionRequest{
		Status: "Deal Closed",
		Notes:  "Contract signed",
	})
	require.NoError(t, err)

	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, 1, updated.OrdersSecured)

	db.Model(&models.ImpactLog{}).Where("user_id = ?", user.ID).Count(&logs)
	assert.Equal(t, int64(1), logs)
}

func TestBuyerListFiltersAndSentinels(t *testing.T) {
	db := testDB(t)
	svc := NewBuyerService(db)
	user := createTestUser(t, db, "seller@example.com")
	createTestBuyer(t, db, "Nordsee Imports", "Germany")
	createTestBuyer(t, db, "Atlantic Apparel", "United States")

	params := func(country string) BuyerSearchParams {
		return BuyerSearchParams{
			PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, SortBy: "name", Order: "asc"},
			Country:          country,
		}
	}

	_, total, err := svc.GetBuyers(params("Germany"), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// "All ..." sentinel means no filter.
	_, total, err = svc.GetBuyers(params("All Countries"), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestBuyerListIncludesInteractionState(t *testing.T) {
	db := testDB(t)
	svc := NewBuyerService(db)
	user := createTestUser(t, db, "seller@example.com")
	contacted := createTestBuyer(t, db, "Nordsee Imports", "Germany")
	createTestBuyer(t, db, "Atlantic Apparel", "United States")

	_, err := svc.UpdateInteraction(contacted.ID, user.ID, &UpdateInteractionRequest{Status: "Contacted"})
	require.NoError(t, err)

	views, _, err := svc.GetBuyers(BuyerSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, SortBy: "name", Order: "asc"},
	}, user.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	byName := make(map[string]BuyerView, len(views))
	for _, v := range views {
		byName[v.Name] = v
	}
	assert.Equal(t, models.InteractionStatusContacted, byName["Nordsee Imports"].InteractionStatus)
	assert.Equal(t, models.InteractionStatusNotContacted, byName["Atlantic Apparel"].InteractionStatus)
}
