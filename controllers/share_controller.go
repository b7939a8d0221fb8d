package controllers

import (
	"casefile/services"
	"casefile/utils"

	"github.com/gin-gonic/gin"
)

// ShareController is the authenticated side of view sharing: senders create
// and revoke links here.
type ShareController struct {
	shareService *services.ShareService
}

func NewShareController(shareService *services.ShareService) *ShareController {
	return &ShareController{shareService: shareService}
}

func (sc *ShareController) CreateShare(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	var request services.CreateShareRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	share, err := sc.shareService.CreateShare(c.Request.Context(), owner, request)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, "View share created", share)
}

func (sc *ShareController) ListShares(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	shares, err := sc.shareService.ListShares(c.Request.Context(), owner)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to list view shares", nil)
		return
	}

	utils.SuccessResponse(c, "View shares retrieved", shares)
}

func (sc *ShareController) RevokeShare(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	if err := sc.shareService.RevokeShare(c.Request.Context(), owner, c.Param("id")); err != nil {
		utils.NotFoundResponse(c, "Share not found")
		return
	}

	utils.SuccessResponse(c, "Share revoked", nil)
}
