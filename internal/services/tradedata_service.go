// internal/services/tradedata_service.go
package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/exportbridge/exportbridge-backend/internal/apperrors"
	"github.com/exportbridge/exportbridge-backend/internal/models"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

type TradeDataService struct {
	db *gorm.DB
}

type TradeDataSearchParams struct {
	utils.PaginationParams
	Reporter string
	Partner  string
	Year     int
	Sector   string
}

type ImportResult struct {
	RecordsInserted int `json:"records_inserted"`
	RowsSkipped     int `json:"rows_skipped"`
}

var requiredTradeColumns = []string{"reporter_name", "year", "partner_name", "value"}

func NewTradeDataService(db *gorm.DB) *TradeDataService {
	return &TradeDataService{db: db}
}

// ImportCSV bulk-loads trade records. The header must carry the required
// columns; rows missing a required field are skipped without failing the
// batch, and numeric fields fall back to zero or the current year when
// they fail to parse.
func (s *TradeDataService) ImportCSV(r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewValidationError("file", "file is empty or not a valid CSV")
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, required := range requiredTradeColumns {
		if _, ok := columns[required]; !ok {
			return nil, apperrors.NewValidationError("file", fmt.Sprintf("missing required column %q", required))
		}
	}

	field := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	result := &ImportResult{}
	currentYear := time.Now().Year()
	batch := make([]models.TradeRecord, 0, 500)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.RowsSkipped++
			continue
		}

		reporter := field(row, "reporter_name")
		partner := field(row, "partner_name")
		yearRaw := field(row, "year")
		valueRaw := field(row, "value")
		if reporter == "" || partner == "" || yearRaw == "" || valueRaw == "" {
			result.RowsSkipped++
			continue
		}

		year, err := strconv.Atoi(yearRaw)
		if err != nil {
			year = currentYear
		}
		value, err := strconv.ParseFloat(valueRaw, 64)
		if err != nil {
			value = 0
		}

		batch = append(batch, models.TradeRecord{
			ReporterName:          reporter,
			ReporterCode:          field(row, "reporter_code"),
			PartnerName:           partner,
			PartnerCode:           field(row, "partner_code"),
			Year:                  year,
			Value:                 value,
			Classification:        field(row, "classification"),
			ClassificationVersion: field(row, "classification_version"),
			ProductCode:           field(row, "product_code"),
			MTNCategories:         field(row, "mtn_categories"),
			IsActive:              true,
		})
		result.RecordsInserted++
	}

	if len(batch) > 0 {
		if err := s.db.CreateInBatches(batch, 500).Error; err != nil {
			return nil, fmt.Errorf("failed to insert trade records: %w", err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"records_inserted": result.RecordsInserted,
		"rows_skipped":     result.RowsSkipped,
	}).Info("Trade data import completed")

	return result, nil
}

// GetRecords reads active trade records. Sector filters are translated to
// MTN category codes; unknown sectors match nothing rather than everything.
func (s *TradeDataService) GetRecords(params TradeDataSearchParams) ([]models.TradeRecord, int64, error) {
	query := s.db.Model(&models.TradeRecord{}).Where("is_active = ?", true)

	if params.Reporter != "" {
		query = query.Where("LOWER(reporter_name) = ?", strings.ToLower(params.Reporter))
	}
	if params.Partner != "" {
		query = query.Where("LOWER(partner_name) = ?", strings.ToLower(params.Partner))
	}
	if params.Year > 0 {
		query = query.Where("year = ?", params.Year)
	}
	if params.Sector != "" && !strings.HasPrefix(params.Sector, "All") {
		category, ok := models.SectorMTNCategory[models.Sector(params.Sector)]
		if !ok {
			return []models.TradeRecord{}, 0, nil
		}
		query = query.Where("mtn_categories = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count trade records: %w", err)
	}

	query = query.Order("year DESC").Order("value DESC")
	query = utils.ApplyPagination(query, params.PaginationParams)

	var records []models.TradeRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch trade records: %w", err)
	}

	return records, total, nil
}

// Clear soft-retires every active record. Rows are retained for audit.
func (s *TradeDataService) Clear() (int64, error) {
	result := s.db.Model(&models.TradeRecord{}).
		Where("is_active = ?", true).
		Update("is_active", false)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear trade records: %w", result.Error)
	}
	return result.RowsAffected, nil
}
