// internal/services/tradedata_service_test.go
package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exportbridge/exportbridge-backend/internal/apperrors"
	"github.com/exportbridge/exportbridge-backend/internal/models"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

func TestImportCSVSkipsBadRowsSilently(t *testing.T) {
	db := testDB(t)
	svc := NewTradeDataService(db)

	csvData := strings.Join([]string{
		"reporter_name,year,partner_name,value,mtn_categories",
		"India,2023,Germany,1820000,AG",
		"India,2022,Germany,950000,AG",
		"India,2023,Japan,2400000,NON_AG",
		"India,2023,France,,AG", // missing value, skipped
	}, "\n")

	result, err := svc.ImportCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 3, result.RecordsInserted)
	assert.Equal(t, 1, result.RowsSkipped)

	records, total, err := svc.GetRecords(TradeDataSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20},
		Partner:          "Germany",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, records, 2)

	// Year descending, then value descending.
	assert.Equal(t, 2023, records[0].Year)
	assert.Equal(t, 2022, records[1].Year)
}

func TestImportCSVNumericCoercionFallbacks(t *testing.T) {
	db := testDB(t)
	svc := NewTradeDataService(db)

	csvData := strings.Join([]string{
		"reporter_name,year,partner_name,value",
		"India,not-a-year,Germany,abc",
	}, "\n")

	result, err := svc.ImportCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, result.RecordsInserted)

	var record models.TradeRecord
	require.NoError(t, db.First(&record).Error)
	assert.Zero(t, record.Value)
	assert.NotZero(t, record.Year) // falls back to the current year
}

func TestImportCSVRejectsMissingHeader(t *testing.T) {
	db := testDB(t)
	svc := NewTradeDataService(db)

	_, err := svc.ImportCSV(strings.NewReader("reporter_name,year\nIndia,2023"))
	assert.True(t, apperrors.IsValidation(err))
}

func TestSectorFilterMapsToMTNCategory(t *testing.T) {
	db := testDB(t)
	svc := NewTradeDataService(db)

	csvData := strings.Join([]string{
		"reporter_name,year,partner_name,value,mtn_categories",
		"India,2023,Germany,100,AG",
		"India,2023,Germany,200,NON_AG",
	}, "\n")
	_, err := svc.ImportCSV(strings.NewReader(csvData))
	require.NoError(t, err)

	records, _, err := svc.GetRecords(TradeDataSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20},
		Sector:           "Seafood",
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "AG", records[0].MTNCategories)

	// Unknown sectors match nothing.
	records, total, err := svc.GetRecords(TradeDataSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20},
		Sector:           "Pottery",
	})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, records)
}

func TestClearRetiresRecordsSoftly(t *testing.T) {
	db := testDB(t)
	svc := NewTradeDataService(db)

	csvData := "reporter_name,year,partner_name,value\nIndia,2023,Germany,100"
	_, err := svc.ImportCSV(strings.NewReader(csvData))
	require.NoError(t, err)

	cleared, err := svc.Clear()
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared)

	_, total, err := svc.GetRecords(TradeDataSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20},
	})
	require.NoError(t, err)
	assert.Zero(t, total)

	// Rows are retained, only flagged.
	var stored int64
	db.Model(&models.TradeRecord{}).Count(&stored)
	assert.Equal(t, int64(1), stored)
}
