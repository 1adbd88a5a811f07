// internal/handlers/compliance_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/exportbridge/exportbridge-backend/internal/services"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

type ComplianceHandler struct {
	complianceService *services.ComplianceService
	uploadService     *services.UploadService
}

func NewComplianceHandler(complianceService *services.ComplianceService, uploadService *services.UploadService) *ComplianceHandler {
	return &ComplianceHandler{
		complianceService: complianceService,
		uploadService:     uploadService,
	}
}

// GET /api/v1/compliance/checklist
func (h *ComplianceHandler) GetChecklist(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	checklist, err := h.complianceService.GetChecklist(userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, checklist)
}

// PUT /api/v1/compliance/requirements/:id
func (h *ComplianceHandler) UpdateRequirement(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	requirementID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	checklist, err := h.complianceService.UpdateRequirement(userID, requirementID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, checklist)
}

// POST /api/v1/compliance/requirements/:id/document
//
// Uploads a supporting document, then marks the requirement complete with
// the stored file's URL.
func (h *ComplianceHandler) UploadDocument(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	requirementID, ok := pathID(c, "id")
	if !ok {
		return
	}

	header, err := c.FormFile("document")
	if err != nil {
		utils.BadRequestResponse(c, "a document file is required")
		return
	}

	upload, err := h.uploadService.SaveFile(userID, "document", "compliance", header)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	checklist, err := h.complianceService.AttachRequirementFile(userID, requirementID, upload.URL)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"checklist": checklist, "upload": upload})
}
