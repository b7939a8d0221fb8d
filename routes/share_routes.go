package routes

import (
	"casefile/controllers"
	"casefile/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterShareRoutes registers the authenticated share-management endpoints.
func RegisterShareRoutes(api *gin.RouterGroup, jwtSecret string, shareController *controllers.ShareController) {
	shareGroup := api.Group("/shares")
	shareGroup.Use(middleware.AuthMiddleware(jwtSecret))

	shareGroup.POST("", shareController.CreateShare)
	shareGroup.GET("", shareController.ListShares)
	shareGroup.DELETE("/:id", shareController.RevokeShare)
}
