// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jong1uk/Auction-Back/internal/services"
	"github.com/jong1uk/Auction-Back/internal/utils"
)

type ProductHandler struct {
	products *services.ProductService
}

func NewProductHandler(products *services.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// GET /v1/products/main/:mainDepartment
func (h *ProductHandler) MainDepartment(c *gin.Context) {
	boards, err := h.products.ListMainDepartment(c.Param("mainDepartment"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, boards)
}

// GET /v1/products/all/:mainDepartment?sort=latest|bids|buying|selling
func (h *ProductHandler) AllByDepartment(c *gin.Context) {
	sortOrder := c.DefaultQuery("sort", services.SortLatest)
	boards, err := h.products.ListAllByDepartment(c.Param("mainDepartment"), sortOrder)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, boards)
}

// GET /v1/products/sub/:subDepartment
func (h *ProductHandler) SubDepartment(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.products.ListSubDepartment(c.Param("subDepartment"), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, result)
}

// GET /v1/products/details/:modelNum
func (h *ProductHandler) Detail(c *gin.Context) {
	detail, err := h.products.GetProductDetail(c.Param("modelNum"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, detail)
}

// GET /v1/products/details/:modelNum/bid?size=...
func (h *ProductHandler) BidQuote(c *gin.Context) {
	quote, err := h.products.GetBidQuote(c.Param("modelNum"), c.Query("size"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, quote)
}

// POST /v1/products/details/:modelNum/bid
func (h *ProductHandler) PlaceBid(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.PlaceBidRequest
	if !bindAndValidate(c, &req) {
		return
	}

	bid, err := h.products.PlaceBid(userID, c.Param("modelNum"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, bid)
}

// POST /v1/products/details/:modelNum/review
func (h *ProductHandler) CreateReview(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.ReviewRequest
	if !bindAndValidate(c, &req) {
		return
	}

	review, err := h.products.CreateReview(userID, c.Param("modelNum"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, review)
}

// PUT /v1/products/details/:modelNum/review/:reviewId
func (h *ProductHandler) UpdateReview(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "reviewId")
	if !ok {
		return
	}

	var req services.ReviewRequest
	if !bindAndValidate(c, &req) {
		return
	}

	review, err := h.products.UpdateReview(userID, reviewID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, review)
}

// DELETE /v1/products/details/:modelNum/review/:reviewId
func (h *ProductHandler) DeleteReview(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "reviewId")
	if !ok {
		return
	}

	if err := h.products.DeleteReview(userID, reviewID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}
