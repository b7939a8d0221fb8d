package controllers

import (
	"casefile/services"
	"casefile/utils"

	"github.com/gin-gonic/gin"
)

type FolderController struct {
	folderService *services.FolderService
	userService   *services.UserService
}

type folderRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
}

type renameRequest struct {
	Name string `json:"name" binding:"required"`
}

func NewFolderController(folderService *services.FolderService, userService *services.UserService) *FolderController {
	return &FolderController{folderService: folderService, userService: userService}
}

func (fc *FolderController) AddFolder(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	var request folderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	folder, err := fc.folderService.AddFolder(c.Request.Context(), owner, c.Param("id"), c.Param("projectId"), request.Name, request.Type)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, "Folder created", folder)
}

func (fc *FolderController) RenameFolder(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	var request renameRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	err := fc.folderService.RenameFolder(c.Request.Context(), owner, c.Param("id"), c.Param("projectId"), c.Param("folderId"), request.Name)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, "Folder renamed", nil)
}

func (fc *FolderController) DeleteFolder(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	err := fc.folderService.DeleteFolder(c.Request.Context(), owner, c.Param("id"), c.Param("projectId"), c.Param("folderId"))
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, "Folder deleted", nil)
}

func (fc *FolderController) UploadFiles(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form", nil)
		return
	}

	files := form.File["files[]"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, "No files provided", nil)
		return
	}

	uploaded, err := fc.folderService.UploadFiles(c.Request.Context(), owner, c.Param("id"), c.Param("projectId"), c.Param("folderId"), files)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, "Files uploaded successfully", uploaded)
}

// RenameFile applies a display-name edit; protected extensions survive
// whatever the user typed.
func (fc *FolderController) RenameFile(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	var request renameRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	file, err := fc.folderService.RenameFile(c.Request.Context(), owner, c.Param("id"), c.Param("projectId"), c.Param("folderId"), c.Param("fileId"), request.Name)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, "File renamed", file)
}

func (fc *FolderController) DeleteFile(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	err := fc.folderService.DeleteFile(c.Request.Context(), owner, c.Param("id"), c.Param("projectId"), c.Param("folderId"), c.Param("fileId"))
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, "File deleted", nil)
}

// RefreshPreview re-signs the transient preview URL from the durable storage path.
func (fc *FolderController) RefreshPreview(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	previewURL, err := fc.folderService.RefreshPreviewURL(c.Request.Context(), owner, c.Param("id"), c.Param("projectId"), c.Param("folderId"), c.Param("fileId"))
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, "Preview URL refreshed", map[string]string{"preview_url": previewURL})
}

func (fc *FolderController) DownloadFile(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	downloadURL, err := fc.folderService.DownloadURL(c.Request.Context(), owner, c.Param("id"), c.Param("projectId"), c.Param("folderId"), c.Param("fileId"))
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, "Download URL generated", map[string]string{"download_url": downloadURL})
}

func (fc *FolderController) GetUsage(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	maxStorage := fc.userService.MaxStorage(c.Request.Context(), owner)
	usage, err := fc.folderService.Usage(c.Request.Context(), owner, maxStorage)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to compute storage usage", nil)
		return
	}

	utils.SuccessResponse(c, "Storage usage computed", usage)
}
