// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jong1uk/Auction-Back/internal/services"
	"github.com/jong1uk/Auction-Back/internal/utils"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.auth.Register(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, result)
}

// POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.auth.Login(&req)
	if err != nil {
		utils.UnauthorizedResponse(c, "Invalid email or password")
		return
	}
	utils.SuccessResponse(c, result)
}

// POST /v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req services.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result, err := h.auth.Refresh(&req)
	if err != nil {
		utils.UnauthorizedResponse(c, "Invalid refresh token")
		return
	}
	utils.SuccessResponse(c, result)
}

// GET /v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.auth.GetUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, user)
}
