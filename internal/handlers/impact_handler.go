// internal/handlers/impact_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/exportbridge/exportbridge-backend/internal/services"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

type ImpactHandler struct {
	impactService *services.ImpactService
}

func NewImpactHandler(impactService *services.ImpactService) *ImpactHandler {
	return &ImpactHandler{impactService: impactService}
}

// POST /api/v1/impact/events
func (h *ImpactHandler) LogEvent(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.LogImpactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	entry, err := h.impactService.LogEvent(userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, entry)
}

// GET /api/v1/impact/events
func (h *ImpactHandler) GetEvents(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	events, total, err := h.impactService.GetEvents(userID, params)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, events, utils.NewPagination(total, params))
}

// GET /api/v1/impact/dashboard
func (h *ImpactHandler) Dashboard(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	dashboard, err := h.impactService.Dashboard(userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, dashboard)
}
