// internal/handlers/notice.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jong1uk/Auction-Back/internal/services"
	"github.com/jong1uk/Auction-Back/internal/utils"
)

type NoticeHandler struct {
	notices *services.NoticeService
}

func NewNoticeHandler(notices *services.NoticeService) *NoticeHandler {
	return &NoticeHandler{notices: notices}
}

// GET /v1/notices
func (h *NoticeHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	result, err := h.notices.List(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.PaginatedResponse(c, *result)
}

// GET /v1/notices/:id
func (h *NoticeHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	notice, err := h.notices.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, notice)
}

// POST /v1/notices
func (h *NoticeHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.NoticeRequest
	if !bindAndValidate(c, &req) {
		return
	}

	notice, err := h.notices.Create(userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, notice)
}

// PUT /v1/notices/:id
func (h *NoticeHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.NoticeRequest
	if !bindAndValidate(c, &req) {
		return
	}

	notice, err := h.notices.Update(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, notice)
}

// DELETE /v1/notices/:id
func (h *NoticeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.notices.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}
