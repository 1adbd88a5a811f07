// internal/handlers/intel_handler.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/exportbridge/exportbridge-backend/internal/integrations"
	"github.com/exportbridge/exportbridge-backend/internal/services"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

type IntelHandler struct {
	intelService *services.IntelService
}

func NewIntelHandler(intelService *services.IntelService) *IntelHandler {
	return &IntelHandler{intelService: intelService}
}

// GET /api/v1/intel/trade-stats
func (h *IntelHandler) TradeStats(c *gin.Context) {
	query := integrations.TradeStatsQuery{
		ReporterCode:  c.DefaultQuery("reporter", "699"),
		PartnerCode:   c.DefaultQuery("partner", "0"),
		CommodityCode: c.Query("commodity"),
		FlowCode:      c.DefaultQuery("flow", "X"),
		Period:        c.Query("period"),
	}

	result, err := h.intelService.TradeStats(c.Request.Context(), query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// GET /api/v1/intel/news
func (h *IntelHandler) News(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.intelService.News(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// GET /api/v1/intel/tariffs
func (h *IntelHandler) TariffRates(c *gin.Context) {
	country := c.Query("country")
	commodity := c.Query("commodity")
	if country == "" || commodity == "" {
		utils.BadRequestResponse(c, "country and commodity are required")
		return
	}

	result, err := h.intelService.TariffRates(c.Request.Context(), country, commodity)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// GET /api/v1/intel/commodities
func (h *IntelHandler) CommodityPrices(c *gin.Context) {
	symbols := strings.Split(c.DefaultQuery("symbols", "SHRIMP,COTTON"), ",")
	for i := range symbols {
		symbols[i] = strings.TrimSpace(symbols[i])
	}

	result, err := h.intelService.CommodityPrices(c.Request.Context(), symbols)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// GET /api/v1/intel/sentiment
func (h *IntelHandler) Sentiment(c *gin.Context) {
	result, err := h.intelService.Sentiment(c.Request.Context(), c.Query("date"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// POST /api/v1/intel/ask
func (h *IntelHandler) Ask(c *gin.Context) {
	var req services.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	answer, err := h.intelService.Ask(c.Request.Context(), &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"answer": answer})
}

// DELETE /api/v1/admin/intel/cache
//
// Clears cached feed entries; an optional comma-separated "feeds" query
// limits the scope.
func (h *IntelHandler) ClearCache(c *gin.Context) {
	if _, ok := utils.GetAdminIDFromContext(c); !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var feeds []string
	if raw := c.Query("feeds"); raw != "" {
		for _, feed := range strings.Split(raw, ",") {
			feeds = append(feeds, strings.TrimSpace(feed))
		}
	}

	h.intelService.ClearCaches(feeds...)
	utils.SuccessMessageResponse(c, nil, "cache cleared")
}
