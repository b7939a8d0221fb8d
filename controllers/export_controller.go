package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"casefile/services"
	"casefile/utils"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	clientService *services.ClientService
	exportService *services.ExportService
}

func NewExportController(clientService *services.ClientService, exportService *services.ExportService) *ExportController {
	return &ExportController{
		clientService: clientService,
		exportService: exportService,
	}
}

// ExportClient renders the client file report and sends it as a download.
// The optional projects query parameter selects and orders a subset.
func (ec *ExportController) ExportClient(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	client, err := ec.clientService.GetClient(c.Request.Context(), c.Param("id"), owner)
	if err != nil {
		utils.NotFoundResponse(c, "Client file not found")
		return
	}

	var projectIDs []string
	if raw := c.Query("projects"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				projectIDs = append(projectIDs, id)
			}
		}
	}

	result, err := ec.exportService.ExportClientFile(client, projectIDs, time.Now())
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to generate report", nil)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, "application/pdf", result.PDF)
}
