package routes

import (
	"casefile/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterViewRoutes registers the public share-gate endpoints. No auth
// middleware here: recipients are anonymous and gated by token + access code.
func RegisterViewRoutes(api *gin.RouterGroup, viewController *controllers.ViewController) {
	view := api.Group("/view")

	view.GET("/:token", viewController.ResolveShare)
	view.POST("/:token/verify", viewController.VerifyCode)
}
