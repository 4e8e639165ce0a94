// internal/handlers/common.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jong1uk/Auction-Back/internal/services"
	"github.com/jong1uk/Auction-Back/internal/utils"
)

// respondServiceError maps service sentinels onto HTTP responses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "Resource")
	case errors.Is(err, services.ErrDuplicateProduct):
		utils.ConflictResponse(c, "A registered product with this model number and size already exists")
	case errors.Is(err, services.ErrDuplicateEmail):
		utils.ConflictResponse(c, "Email already in use")
	case errors.Is(err, services.ErrDuplicateEntry):
		utils.ConflictResponse(c, "Already entered this draw")
	case errors.Is(err, services.ErrStateConflict):
		utils.ConflictResponse(c, "Resource is not in a state that allows this action")
	case errors.Is(err, services.ErrUnauthorized):
		utils.ForbiddenResponse(c, "")
	case errors.Is(err, services.ErrInvalidInput):
		utils.BadRequestResponse(c, "", nil)
	default:
		utils.InternalErrorResponse(c, "")
	}
}

func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return false
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		utils.BadRequestResponse(c, "Invalid "+name, nil)
		return 0, false
	}
	return id, true
}

func requireUserID(c *gin.Context) (int64, bool) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return 0, false
	}
	return userID, true
}
