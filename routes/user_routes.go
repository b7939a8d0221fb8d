package routes

import (
	"casefile/controllers"
	"casefile/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers the authenticated owner-profile surface.
func RegisterUserRoutes(api *gin.RouterGroup, jwtSecret string, userController *controllers.UserController) {
	me := api.Group("/me")
	me.Use(middleware.AuthMiddleware(jwtSecret))
	{
		me.GET("", userController.GetProfile)
	}
}
