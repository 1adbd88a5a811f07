// internal/handlers/tradedata_handler.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/exportbridge/exportbridge-backend/internal/services"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

type TradeDataHandler struct {
	tradeDataService *services.TradeDataService
	maxCSVSizeMB     int
}

func NewTradeDataHandler(tradeDataService *services.TradeDataService, maxCSVSizeMB int) *TradeDataHandler {
	return &TradeDataHandler{
		tradeDataService: tradeDataService,
		maxCSVSizeMB:     maxCSVSizeMB,
	}
}

// GET /api/v1/trade-data
func (h *TradeDataHandler) GetRecords(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))

	params := services.TradeDataSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
		Reporter:         c.Query("reporter"),
		Partner:          c.Query("partner"),
		Year:             year,
		Sector:           c.Query("sector"),
	}

	records, total, err := h.tradeDataService.GetRecords(params)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, records, utils.NewPagination(total, params.PaginationParams))
}

// POST /api/v1/admin/trade-data/import
//
// Admin-only bulk import. The CSV file arrives as a multipart field; the
// larger CSV size ceiling applies.
func (h *TradeDataHandler) ImportCSV(c *gin.Context) {
	if _, ok := utils.GetAdminIDFromContext(c); !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "a CSV file is required")
		return
	}

	if header.Size > int64(h.maxCSVSizeMB)<<20 {
		utils.BadRequestResponse(c, "file exceeds the CSV size limit")
		return
	}

	src, err := header.Open()
	if err != nil {
		utils.BadRequestResponse(c, "failed to read uploaded file")
		return
	}
	defer src.Close()

	result, err := h.tradeDataService.ImportCSV(src)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, result, "import completed")
}

// DELETE /api/v1/admin/trade-data
func (h *TradeDataHandler) Clear(c *gin.Context) {
	if _, ok := utils.GetAdminIDFromContext(c); !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	cleared, err := h.tradeDataService.Clear()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, gin.H{"records_cleared": cleared}, "trade data cleared")
}
