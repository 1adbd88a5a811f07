// internal/handlers/relief_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/exportbridge/exportbridge-backend/internal/services"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

type ReliefHandler struct {
	reliefService *services.ReliefService
}

func NewReliefHandler(reliefService *services.ReliefService) *ReliefHandler {
	return &ReliefHandler{reliefService: reliefService}
}

// GET /api/v1/relief/schemes
func (h *ReliefHandler) GetSchemes(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	schemes, total, err := h.reliefService.GetSchemes(params, userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, schemes, utils.NewPagination(total, params))
}

// POST /api/v1/relief/schemes/:id/apply
func (h *ReliefHandler) Apply(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	schemeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.ApplyReliefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	application, err := h.reliefService.Apply(schemeID, userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, application)
}

// GET /api/v1/relief/applications
func (h *ReliefHandler) GetApplications(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	applications, total, err := h.reliefService.GetApplications(userID, params)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, applications, utils.NewPagination(total, params))
}
