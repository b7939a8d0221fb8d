package controllers

import (
	"casefile/services"
	"casefile/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService *services.UserService
}

func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetProfile returns the authenticated owner's profile, creating the record
// on first sight from the token's identity.
func (uc *UserController) GetProfile(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	claims := services.ProfileClaims{
		ExternalID: c.GetString("externalId"),
		Email:      c.GetString("email"),
		Name:       c.GetString("name"),
		Role:       c.GetString("role"),
	}

	user, err := uc.userService.EnsureProfile(c.Request.Context(), owner, claims)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to load user profile", nil)
		return
	}

	utils.SuccessResponse(c, "User profile retrieved", user)
}
