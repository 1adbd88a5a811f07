// internal/handlers/auth_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/exportbridge/exportbridge-backend/internal/models"
	"github.com/exportbridge/exportbridge-backend/internal/services"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	resp, err := h.authService.Signup(&req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, resp)
}

// POST /api/v1/auth/signin
func (h *AuthHandler) Signin(c *gin.Context) {
	var req services.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	resp, err := h.authService.Signin(&req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, resp)
}

// POST /api/v1/admin-auth/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req services.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	resp, err := h.authService.AdminLogin(&req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, resp)
}

// GET /api/v1/auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// POST /api/v1/auth/verify-token
//
// The auth middleware has already validated the credential by the time
// this runs; it just echoes the principal back.
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	value, exists := c.Get("current_user")
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	user, ok := value.(*models.User)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	utils.SuccessMessageResponse(c, gin.H{"valid": true, "user": user}, "token is valid")
}

// PUT /api/v1/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	user, err := h.authService.UpdateProfile(userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// DELETE /api/v1/auth/account
func (h *AuthHandler) Deactivate(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	if err := h.authService.Deactivate(userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessMessageResponse(c, nil, "account deactivated")
}
