// internal/services/impact_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exportbridge/exportbridge-backend/internal/apperrors"
	"github.com/exportbridge/exportbridge-backend/internal/models"
)

func TestLogEventUpdatesMetrics(t *testing.T) {
	db := testDB(t)
	svc := NewImpactService(db)
	user := createTestUser(t, db, "exporter@example.com")

	_, err := svc.LogEvent(user.ID, &LogImpactRequest{
		EventType:     "po_received",
		RevenueAmount: 25000,
		TargetCountry: "Germany",
	})
	require.NoError(t, err)

	_, err = svc.LogEvent(user.ID, &LogImpactRequest{
		EventType:     "market_entered",
		TargetCountry: "Japan",
	})
	require.NoError(t, err)

	// Pitches only appear in the log, not the metrics.
	_, err = svc.LogEvent(user.ID, &LogImpactRequest{EventType: "pitch_sent"})
	require.NoError(t, err)

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, float64(25000), updated.TotalRevenue)
	assert.Equal(t, 1, updated.OrdersSecured)
	assert.Equal(t, 1, updated.MarketsEntered)

	dashboard, err := svc.Dashboard(user.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(25000), dashboard.TotalRevenue)
	assert.Equal(t, int64(1), dashboard.EventCounts["po_received"])
	assert.Equal(t, int64(1), dashboard.EventCounts["pitch_sent"])
	assert.Len(t, dashboard.RecentEvents, 3)
}

func TestLogEventRejectsUnknownType(t *testing.T) {
	db := testDB(t)
	svc := NewImpactService(db)
	user := createTestUser(t, db, "exporter@example.com")

	_, err := svc.LogEvent(user.ID, &LogImpactRequest{EventType: "ipo_filed"})
	assert.True(t, apperrors.IsValidation(err))

	var logs int64
	db.Model(&models.ImpactLog{}).Count(&logs)
	assert.Zero(t, logs)
}
