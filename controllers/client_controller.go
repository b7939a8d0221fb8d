package controllers

import (
	"net/http"

	"casefile/services"
	"casefile/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ClientController struct {
	clientService *services.ClientService
}

func NewClientController(clientService *services.ClientService) *ClientController {
	return &ClientController{clientService: clientService}
}

// ownerID pulls the authenticated user's id from the request context.
func ownerID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("userId")
	if !exists {
		return primitive.NilObjectID, false
	}
	id, ok := value.(primitive.ObjectID)
	return id, ok && !id.IsZero()
}

func (cc *ClientController) ListClients(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	clients, err := cc.clientService.ListClients(c.Request.Context(), owner)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to get client files", nil)
		return
	}

	utils.SuccessResponse(c, "Client files retrieved", clients)
}

func (cc *ClientController) GetClient(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	client, err := cc.clientService.GetClient(c.Request.Context(), c.Param("id"), owner)
	if err != nil {
		utils.NotFoundResponse(c, "Client file not found")
		return
	}

	utils.SuccessResponse(c, "Client file retrieved", client)
}

func (cc *ClientController) CreateClient(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	var request services.ClientRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	client, err := cc.clientService.CreateClient(c.Request.Context(), owner, request)
	if err == services.ErrDuplicateReference {
		utils.ConflictResponse(c, "Reference is already in use", nil)
		return
	} else if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, "Client file created", client)
}

func (cc *ClientController) UpdateClient(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	var request services.ClientRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	client, err := cc.clientService.UpdateClient(c.Request.Context(), c.Param("id"), owner, request)
	if err == services.ErrDuplicateReference {
		utils.ConflictResponse(c, "Reference is already in use", nil)
		return
	} else if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, "Client file updated", client)
}

func (cc *ClientController) DeleteClient(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	if err := cc.clientService.DeleteClient(c.Request.Context(), c.Param("id"), owner); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete client file", nil)
		return
	}

	utils.SuccessResponse(c, "Client file deleted", nil)
}

func (cc *ClientController) SearchClients(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	query := c.Query("q")
	if query == "" {
		utils.BadRequestResponse(c, "Search query is required", nil)
		return
	}

	clients, err := cc.clientService.SearchClients(c.Request.Context(), owner, query)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Search failed", nil)
		return
	}

	utils.SuccessResponse(c, "Search results", clients)
}

// NextReference returns the next unused reference for the supplied format example.
func (cc *ClientController) NextReference(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	reference, err := cc.clientService.NextReference(c.Request.Context(), owner, c.Query("example"))
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to generate reference", nil)
		return
	}

	utils.SuccessResponse(c, "Reference generated", map[string]string{"reference": reference})
}

// CheckReference reports whether a candidate reference is already taken.
func (cc *ClientController) CheckReference(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	duplicate, err := cc.clientService.CheckReference(c.Request.Context(), owner, c.Query("value"), c.Query("exclude"))
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to check reference", nil)
		return
	}

	utils.SuccessResponse(c, "Reference checked", map[string]bool{"duplicate": duplicate})
}
