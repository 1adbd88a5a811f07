// internal/handlers/upload_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/exportbridge/exportbridge-backend/internal/services"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

type UploadHandler struct {
	uploadService *services.UploadService
}

func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// POST /api/v1/uploads
func (h *UploadHandler) Upload(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "a file is required")
		return
	}

	purpose := c.DefaultPostForm("purpose", "general")

	upload, err := h.uploadService.SaveFile(userID, "file", purpose, header)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, upload)
}

// GET /api/v1/uploads
func (h *UploadHandler) GetUploads(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	uploads, total, err := h.uploadService.GetUploads(userID, params)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, uploads, utils.NewPagination(total, params))
}

// DELETE /api/v1/uploads/:id
func (h *UploadHandler) Delete(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	uploadID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.uploadService.DeleteFile(uploadID, userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, nil, "file deleted")
}
