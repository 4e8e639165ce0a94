// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jong1uk/Auction-Back/internal/services"
	"github.com/jong1uk/Auction-Back/internal/utils"
)

type AdminHandler struct {
	admin *services.AdminService
	draws *services.LuckyDrawService
}

func NewAdminHandler(admin *services.AdminService, draws *services.LuckyDrawService) *AdminHandler {
	return &AdminHandler{admin: admin, draws: draws}
}

// POST /v1/admin/requests
func (h *AdminHandler) CreateRequest(c *gin.Context) {
	var req services.ProductRequestInput
	if !bindAndValidate(c, &req) {
		return
	}

	product, err := h.admin.CreateProductRequest(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, product)
}

// GET /v1/admin/requests
func (h *AdminHandler) ListRequests(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	result, err := h.admin.ListRequestedProducts(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.PaginatedResponse(c, *result)
}

// GET /v1/admin/requests/:id
func (h *AdminHandler) GetRequest(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	product, err := h.admin.GetRequestedProduct(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, product)
}

// PUT /v1/admin/requests/:id
func (h *AdminHandler) AcceptRequest(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	product, err := h.admin.AcceptProductRequest(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, product)
}

// GET /v1/admin/products/:mainDepartment
func (h *AdminHandler) ListProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	result, err := h.admin.ListProductsByDepartment(c.Param("mainDepartment"), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.PaginatedResponse(c, *result)
}

// GET /v1/admin/products/detailed/:modelNum
func (h *AdminHandler) ProductFamily(c *gin.Context) {
	products, err := h.admin.GetProductFamily(c.Param("modelNum"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, products)
}

// POST /v1/admin/sales/:salesBidId/approve
func (h *AdminHandler) ApproveSales(c *gin.Context) {
	id, ok := pathID(c, "salesBidId")
	if !ok {
		return
	}

	bid, err := h.admin.AcceptSalesApproval(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, bid)
}

// GET /v1/admin/luckydraw
func (h *AdminHandler) ListDraws(c *gin.Context) {
	draws, err := h.draws.ListAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, draws)
}

// POST /v1/admin/luckydraw
func (h *AdminHandler) CreateDraw(c *gin.Context) {
	var req services.CreateDrawRequest
	if !bindAndValidate(c, &req) {
		return
	}

	draw, err := h.draws.CreateDraw(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, draw)
}

// POST /v1/admin/luckydraw/:id/announce
func (h *AdminHandler) AnnounceDraw(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	draw, err := h.draws.AnnounceWinners(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, draw)
}
