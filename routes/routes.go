package routes

import (
	"casefile/controllers"
	"casefile/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// B2Config holds the B2 service configuration
type B2Config struct {
	KeyID          string
	ApplicationKey string
	BucketName     string
}

// ServiceContainer holds all services and dependencies
type ServiceContainer struct {
	DB             *mongo.Database
	JWTSecret      string
	B2Service      *services.B2Service
	ClientService  *services.ClientService
	ProjectService *services.ProjectService
	FolderService  *services.FolderService
	ShareService   *services.ShareService
	ExportService  *services.ExportService
	UserService    *services.UserService
}

// NewServiceContainer creates a new service container with all dependencies initialized
func NewServiceContainer(db *mongo.Database, jwtSecret string, b2Config B2Config, maxFileSize, maxUserStorage int64) (*ServiceContainer, error) {
	b2Service, err := services.NewB2Service(b2Config.KeyID, b2Config.ApplicationKey, b2Config.BucketName)
	if err != nil {
		return nil, err
	}

	clientService := services.NewClientService(db, b2Service)
	projectService := services.NewProjectService(db, clientService, b2Service)
	folderService := services.NewFolderService(db, clientService, projectService, b2Service, maxFileSize)
	shareService := services.NewShareService(db)

	return &ServiceContainer{
		DB:             db,
		JWTSecret:      jwtSecret,
		B2Service:      b2Service,
		ClientService:  clientService,
		ProjectService: projectService,
		FolderService:  folderService,
		ShareService:   shareService,
		ExportService:  services.NewExportService(),
		UserService:    services.NewUserService(db, maxUserStorage),
	}, nil
}

// SetupRoutesWithContainer configures all API routes using a service container
func SetupRoutesWithContainer(api *gin.RouterGroup, container *ServiceContainer) {
	clientController := controllers.NewClientController(container.ClientService)
	projectController := controllers.NewProjectController(container.ProjectService)
	folderController := controllers.NewFolderController(container.FolderService, container.UserService)
	shareController := controllers.NewShareController(container.ShareService)
	viewController := controllers.NewViewController(container.ShareService)
	exportController := controllers.NewExportController(container.ClientService, container.ExportService)
	userController := controllers.NewUserController(container.UserService)

	RegisterClientRoutes(api, container.JWTSecret, clientController, projectController, folderController, exportController)
	RegisterShareRoutes(api, container.JWTSecret, shareController)
	RegisterViewRoutes(api, viewController)
	RegisterUserRoutes(api, container.JWTSecret, userController)
}
