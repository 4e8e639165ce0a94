// internal/handlers/shop.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jong1uk/Auction-Back/internal/services"
	"github.com/jong1uk/Auction-Back/internal/utils"
)

type ShopHandler struct {
	shop *services.ShopService
}

func NewShopHandler(shop *services.ShopService) *ShopHandler {
	return &ShopHandler{shop: shop}
}

func shopPage(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, limit
}

// GET /v1/shop/all
func (h *ShopHandler) All(c *gin.Context) {
	page, limit := shopPage(c)
	result, err := h.shop.ListAll(page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, result)
}

// GET /v1/shop/main/:mainDepartment
func (h *ShopHandler) Main(c *gin.Context) {
	page, limit := shopPage(c)
	result, err := h.shop.ListByMainDepartment(c.Param("mainDepartment"), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, result)
}

// GET /v1/shop/sub/:subDepartment
func (h *ShopHandler) Sub(c *gin.Context) {
	page, limit := shopPage(c)
	result, err := h.shop.ListBySubDepartment(c.Param("subDepartment"), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, result)
}
