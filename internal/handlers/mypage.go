// internal/handlers/mypage.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jong1uk/Auction-Back/internal/services"
	"github.com/jong1uk/Auction-Back/internal/utils"
)

type MypageHandler struct {
	mypage *services.MypageService
	draws  *services.LuckyDrawService
}

func NewMypageHandler(mypage *services.MypageService, draws *services.LuckyDrawService) *MypageHandler {
	return &MypageHandler{mypage: mypage, draws: draws}
}

// GET /v1/mypage
func (h *MypageHandler) Main(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	main, err := h.mypage.GetMain(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, main)
}

// PUT /v1/mypage
func (h *MypageHandler) Modify(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.ModifyProfileRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.mypage.ModifyProfile(userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, user)
}

// GET /v1/mypage/addresses
func (h *MypageHandler) ListAddresses(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	addresses, err := h.mypage.ListAddresses(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, addresses)
}

// POST /v1/mypage/addresses
func (h *MypageHandler) CreateAddress(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.AddressRequest
	if !bindAndValidate(c, &req) {
		return
	}

	address, err := h.mypage.CreateAddress(userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, address)
}

// PUT /v1/mypage/addresses/:id
func (h *MypageHandler) UpdateAddress(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.AddressRequest
	if !bindAndValidate(c, &req) {
		return
	}

	address, err := h.mypage.UpdateAddress(userID, id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, address)
}

// DELETE /v1/mypage/addresses/:id
func (h *MypageHandler) DeleteAddress(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.mypage.DeleteAddress(userID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// GET /v1/mypage/account
func (h *MypageHandler) GetAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	account, err := h.mypage.GetAccount(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, account)
}

// PUT /v1/mypage/account
func (h *MypageHandler) UpsertAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.AccountRequest
	if !bindAndValidate(c, &req) {
		return
	}

	account, err := h.mypage.UpsertAccount(userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, account)
}

// GET /v1/mypage/bookmarks
func (h *MypageHandler) ListBookmarks(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	bookmarks, err := h.mypage.ListBookmarks(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, bookmarks)
}

// POST /v1/mypage/bookmarks/:productId
func (h *MypageHandler) AddBookmark(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}

	bookmark, err := h.mypage.AddBookmark(userID, productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, bookmark)
}

// DELETE /v1/mypage/bookmarks/:productId
func (h *MypageHandler) RemoveBookmark(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}

	if err := h.mypage.RemoveBookmark(userID, productID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// GET /v1/mypage/buying
func (h *MypageHandler) BuyingHistory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	bids, err := h.mypage.ListBuyingHistory(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, bids)
}

// GET /v1/mypage/selling
func (h *MypageHandler) SellingHistory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	bids, err := h.mypage.ListSellingHistory(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, bids)
}

// GET /v1/mypage/draws
func (h *MypageHandler) DrawHistory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entries, err := h.draws.ListUserEntries(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, entries)
}
