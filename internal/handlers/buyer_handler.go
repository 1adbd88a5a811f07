// internal/handlers/buyer_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/exportbridge/exportbridge-backend/internal/services"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

type BuyerHandler struct {
	buyerService *services.BuyerService
}

func NewBuyerHandler(buyerService *services.BuyerService) *BuyerHandler {
	return &BuyerHandler{buyerService: buyerService}
}

// GET /api/v1/buyers
func (h *BuyerHandler) GetBuyers(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := services.BuyerSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
		Country:          c.Query("country"),
		ProductCategory:  c.Query("productCategory"),
	}

	buyers, total, err := h.buyerService.GetBuyers(params, userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, buyers, utils.NewPagination(total, params.PaginationParams))
}

// GET /api/v1/buyers/countries
func (h *BuyerHandler) GetCountries(c *gin.Context) {
	countries, err := h.buyerService.Countries()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, countries)
}

// GET /api/v1/buyers/:id
func (h *BuyerHandler) GetBuyer(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	buyerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	buyer, err := h.buyerService.GetBuyer(buyerID, userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, buyer)
}

// PUT /api/v1/buyers/:id/interaction
func (h *BuyerHandler) UpdateInteraction(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	buyerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	interaction, err := h.buyerService.UpdateInteraction(buyerID, userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, interaction)
}

// GET /api/v1/buyers/interactions
func (h *BuyerHandler) GetInteractions(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	interactions, total, err := h.buyerService.GetInteractions(userID, params)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, interactions, utils.NewPagination(total, params))
}
