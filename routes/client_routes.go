package routes

import (
	"casefile/controllers"
	"casefile/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterClientRoutes registers the authenticated client-file surface:
// client CRUD, identifier generation, projects, folders, documents, usage
// and export.
func RegisterClientRoutes(api *gin.RouterGroup, jwtSecret string,
	clientController *controllers.ClientController,
	projectController *controllers.ProjectController,
	folderController *controllers.FolderController,
	exportController *controllers.ExportController) {

	clients := api.Group("/clients")
	clients.Use(middleware.AuthMiddleware(jwtSecret))
	{
		clients.GET("", clientController.ListClients)
		clients.POST("", clientController.CreateClient)
		clients.GET("/search", clientController.SearchClients)

		// Identifier allocation (fixed routes before /:id to avoid conflicts)
		clients.GET("/next-reference", clientController.NextReference)
		clients.GET("/check-reference", clientController.CheckReference)
		clients.GET("/next-project-number", projectController.NextProjectNumber)
		clients.GET("/check-project-number", projectController.CheckProjectNumber)

		clients.GET("/:id", clientController.GetClient)
		clients.PUT("/:id", clientController.UpdateClient)
		clients.DELETE("/:id", clientController.DeleteClient)

		clients.GET("/:id/export", exportController.ExportClient)

		// Projects
		clients.POST("/:id/projects", projectController.AddProject)
		clients.PUT("/:id/projects/:projectId", projectController.UpdateProject)
		clients.DELETE("/:id/projects/:projectId", projectController.DeleteProject)

		// Folders
		clients.POST("/:id/projects/:projectId/folders", folderController.AddFolder)
		clients.PATCH("/:id/projects/:projectId/folders/:folderId", folderController.RenameFolder)
		clients.DELETE("/:id/projects/:projectId/folders/:folderId", folderController.DeleteFolder)

		// Folder files
		clients.POST("/:id/projects/:projectId/folders/:folderId/files", folderController.UploadFiles)
		clients.PATCH("/:id/projects/:projectId/folders/:folderId/files/:fileId/rename", folderController.RenameFile)
		clients.DELETE("/:id/projects/:projectId/folders/:folderId/files/:fileId", folderController.DeleteFile)
		clients.POST("/:id/projects/:projectId/folders/:folderId/files/:fileId/preview", folderController.RefreshPreview)
		clients.GET("/:id/projects/:projectId/folders/:folderId/files/:fileId/download", folderController.DownloadFile)
	}

	usage := api.Group("/usage")
	usage.Use(middleware.AuthMiddleware(jwtSecret))
	{
		usage.GET("", folderController.GetUsage)
	}
}
