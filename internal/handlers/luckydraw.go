// internal/handlers/luckydraw.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jong1uk/Auction-Back/internal/services"
	"github.com/jong1uk/Auction-Back/internal/utils"
)

type LuckyDrawHandler struct {
	draws *services.LuckyDrawService
}

func NewLuckyDrawHandler(draws *services.LuckyDrawService) *LuckyDrawHandler {
	return &LuckyDrawHandler{draws: draws}
}

// GET /v1/luckydraw
func (h *LuckyDrawHandler) List(c *gin.Context) {
	draws, err := h.draws.ListOpen()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, draws)
}

// GET /v1/luckydraw/:id
func (h *LuckyDrawHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	draw, err := h.draws.GetDraw(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, draw)
}

// POST /v1/luckydraw/:id/enter
func (h *LuckyDrawHandler) Enter(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	entry, err := h.draws.Enter(userID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, entry)
}
