package controllers

import (
	"casefile/services"
	"casefile/utils"

	"github.com/gin-gonic/gin"
)

type ProjectController struct {
	projectService *services.ProjectService
}

func NewProjectController(projectService *services.ProjectService) *ProjectController {
	return &ProjectController{projectService: projectService}
}

func (pc *ProjectController) AddProject(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	var request services.ProjectRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	project, err := pc.projectService.AddProject(c.Request.Context(), owner, c.Param("id"), request)
	if err == services.ErrDuplicateProjectNumber {
		utils.ConflictResponse(c, "Project number is already in use", nil)
		return
	} else if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, "Project added", project)
}

func (pc *ProjectController) UpdateProject(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	var request services.ProjectRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	project, err := pc.projectService.UpdateProject(c.Request.Context(), owner, c.Param("id"), c.Param("projectId"), request)
	if err == services.ErrDuplicateProjectNumber {
		utils.ConflictResponse(c, "Project number is already in use", nil)
		return
	} else if err == services.ErrProjectCompleted {
		utils.ConflictResponse(c, "Completed projects are read-only", nil)
		return
	} else if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, "Project updated", project)
}

func (pc *ProjectController) DeleteProject(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	if err := pc.projectService.DeleteProject(c.Request.Context(), owner, c.Param("id"), c.Param("projectId")); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, "Project deleted", nil)
}

// NextProjectNumber returns the next unused project number for the supplied
// format example, scanning projects across all of the owner's files.
func (pc *ProjectController) NextProjectNumber(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	number, err := pc.projectService.NextProjectNumber(c.Request.Context(), owner, c.Query("example"))
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to generate project number", nil)
		return
	}

	utils.SuccessResponse(c, "Project number generated", map[string]string{"project_number": number})
}

func (pc *ProjectController) CheckProjectNumber(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	duplicate, err := pc.projectService.CheckProjectNumber(c.Request.Context(), owner, c.Query("value"), c.Query("exclude"))
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to check project number", nil)
		return
	}

	utils.SuccessResponse(c, "Project number checked", map[string]bool{"duplicate": duplicate})
}
