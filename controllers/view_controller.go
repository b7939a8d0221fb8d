package controllers

import (
	"net/http"

	"casefile/services"
	"casefile/utils"

	"github.com/gin-gonic/gin"
)

// ViewController is the public, unauthenticated side of view sharing: a
// recipient resolves their token and answers the access-code challenge.
// Responses stay generic; nothing about the share's content leaks before
// the code matches.
type ViewController struct {
	shareService *services.ShareService
}

type verifyRequest struct {
	Code string `json:"code"`
}

func NewViewController(shareService *services.ShareService) *ViewController {
	return &ViewController{shareService: shareService}
}

// ResolveShare looks the token up and reports whether a code challenge is
// pending. An unknown or expired token is a terminal not-found and never
// consumes an attempt.
func (vc *ViewController) ResolveShare(c *gin.Context) {
	token := c.Param("token")

	share, err := vc.shareService.Resolve(c.Request.Context(), token)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to resolve share link", nil)
		return
	}

	gate := services.NewShareGate(token)
	switch gate.ResolveSucceeded(share) {
	case services.GateNotFound:
		utils.NotFoundResponse(c, "This link is invalid or has expired")
	case services.GateLocked:
		utils.LockedResponse(c, "This link has been locked after too many incorrect attempts")
	default:
		utils.SuccessResponse(c, "Access code required", map[string]interface{}{
			"state": gate.State(),
			"type":  share.Type,
		})
	}
}

// VerifyCode runs one access-code submission through the gate.
func (vc *ViewController) VerifyCode(c *gin.Context) {
	var request verifyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	result, err := vc.shareService.VerifyCode(c.Request.Context(), c.Param("token"), request.Code)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to verify access code", nil)
		return
	}

	switch result.State {
	case services.GateGranted:
		utils.SuccessResponse(c, "Access granted", result)
	case services.GateNotFound:
		utils.NotFoundResponse(c, "This link is invalid or has expired")
	case services.GateLocked:
		utils.LockedResponse(c, "This link has been locked after too many incorrect attempts")
	case services.GateInvalidShare:
		utils.UnprocessableResponse(c, "This share link is invalid")
	default:
		utils.ErrorResponse(c, http.StatusUnauthorized, "Incorrect access code", map[string]int{
			"attempts_remaining": result.AttemptsRemaining,
		})
	}
}
