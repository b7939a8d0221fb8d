package services

import (
	"context"
	"fmt"
	"time"

	"casefile/models"
	"casefile/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProjectService struct {
	clientCollection *mongo.Collection
	clientService    *ClientService
	b2Service        *B2Service
}

type ProjectRequest struct {
	Name          string                `json:"name" validate:"required"`
	ProjectNumber string                `json:"project_number,omitempty"`
	Status        string                `json:"status" validate:"required,oneof=Live Pending Completed"`
	Fields        []models.ProjectField `json:"fields,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	NoteEntries   []models.NoteEntry    `json:"note_entries,omitempty"`
}

var (
	ErrDuplicateProjectNumber = fmt.Errorf("project number is already in use")
	ErrProjectCompleted       = fmt.Errorf("completed projects are read-only")
)

func NewProjectService(db *mongo.Database, clientService *ClientService, b2Service *B2Service) *ProjectService {
	return &ProjectService{
		clientCollection: db.Collection("client_files"),
		clientService:    clientService,
		b2Service:        b2Service,
	}
}

// AddProject appends a project to a client file. The project number, when
// supplied, must be unique across all of the owner's files' projects.
func (s *ProjectService) AddProject(ctx context.Context, ownerID primitive.ObjectID, clientID string, request ProjectRequest) (*models.Project, error) {
	client, err := s.clientService.GetClient(ctx, clientID, ownerID)
	if err != nil {
		return nil, err
	}

	if err := utils.ValidateProjectStatus(request.Status); err != nil {
		return nil, err
	}
	if request.Name == "" {
		return nil, fmt.Errorf("project name cannot be empty")
	}

	population, err := s.clientService.ownerFiles(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if utils.IsDuplicateProjectNumber(population, request.ProjectNumber, "") {
		return nil, ErrDuplicateProjectNumber
	}

	now := time.Now()
	project := models.Project{
		ID:            uuid.NewString(),
		ProjectNumber: request.ProjectNumber,
		Name:          request.Name,
		Status:        request.Status,
		DateCreated:   now,
		Fields:        ensureFields(request.Fields),
		Folders:       []models.Folder{},
		Notes:         request.Notes,
		NoteEntries:   ensureNoteIDs(request.NoteEntries),
	}
	if project.Status == models.ProjectStatusCompleted {
		project.CompletedDate = &now
	}

	client.Projects = append(client.Projects, project)
	if err := s.saveProjects(ctx, client); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject replaces a project's editable content. A project already in
// Completed state only accepts a status change away from Completed; its
// content stays frozen until it is reopened. Entering Completed stamps the
// completion date and leaving it clears it.
func (s *ProjectService) UpdateProject(ctx context.Context, ownerID primitive.ObjectID, clientID, projectID string, request ProjectRequest) (*models.Project, error) {
	client, err := s.clientService.GetClient(ctx, clientID, ownerID)
	if err != nil {
		return nil, err
	}

	project := client.ProjectByID(projectID)
	if project == nil {
		return nil, fmt.Errorf("project not found")
	}

	if err := utils.ValidateProjectStatus(request.Status); err != nil {
		return nil, err
	}

	// content edits on frozen projects never reach the number check
	if project.Status != models.ProjectStatusCompleted {
		population, err := s.clientService.ownerFiles(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		if utils.IsDuplicateProjectNumber(population, request.ProjectNumber, projectID) {
			return nil, ErrDuplicateProjectNumber
		}
	}

	if err := applyProjectUpdate(project, request, time.Now()); err != nil {
		return nil, err
	}

	if err := s.saveProjects(ctx, client); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject permanently removes a project and its stored documents.
func (s *ProjectService) DeleteProject(ctx context.Context, ownerID primitive.ObjectID, clientID, projectID string) error {
	client, err := s.clientService.GetClient(ctx, clientID, ownerID)
	if err != nil {
		return err
	}

	index := -1
	for i := range client.Projects {
		if client.Projects[i].ID == projectID {
			index = i
			break
		}
	}
	if index < 0 {
		return fmt.Errorf("project not found")
	}

	for _, folder := range client.Projects[index].Folders {
		for _, file := range folder.Files {
			if err := s.b2Service.DeleteObject(ctx, file.StoragePath); err != nil {
				utils.LogWarning("failed to delete stored object %s: %v", file.StoragePath, err)
			}
		}
	}

	client.Projects = append(client.Projects[:index], client.Projects[index+1:]...)
	return s.saveProjects(ctx, client)
}

// NextProjectNumber computes the next unused project number across all of
// the owner's files from a format example.
func (s *ProjectService) NextProjectNumber(ctx context.Context, ownerID primitive.ObjectID, example string) (string, error) {
	population, err := s.clientService.ownerFiles(ctx, ownerID)
	if err != nil {
		return "", err
	}
	return utils.NextReference(utils.CollectProjectNumbers(population), example), nil
}

// CheckProjectNumber reports whether candidate would collide with another project's number.
func (s *ProjectService) CheckProjectNumber(ctx context.Context, ownerID primitive.ObjectID, candidate, excludeProjectID string) (bool, error) {
	population, err := s.clientService.ownerFiles(ctx, ownerID)
	if err != nil {
		return false, err
	}
	return utils.IsDuplicateProjectNumber(population, candidate, excludeProjectID), nil
}

func (s *ProjectService) saveProjects(ctx context.Context, client *models.ClientFile) error {
	update := bson.M{"$set": bson.M{
		"projects":     client.Projects,
		"last_updated": time.Now(),
	}}
	if _, err := s.clientCollection.UpdateOne(ctx, bson.M{"_id": client.ID, "owner_id": client.OwnerID}, update); err != nil {
		return fmt.Errorf("failed to save projects: %w", err)
	}
	return nil
}

// applyProjectUpdate writes the requested changes onto the project. A
// completed project accepts only a status reversion: the reverted status is
// applied, the completion date cleared, and every content field ignored.
func applyProjectUpdate(project *models.Project, request ProjectRequest, now time.Time) error {
	if project.Status == models.ProjectStatusCompleted {
		if request.Status == models.ProjectStatusCompleted {
			return ErrProjectCompleted
		}
		project.Status = request.Status
		project.CompletedDate = nil
		return nil
	}

	project.Name = request.Name
	project.ProjectNumber = request.ProjectNumber
	project.Fields = ensureFields(request.Fields)
	project.Notes = request.Notes
	project.NoteEntries = ensureNoteIDs(request.NoteEntries)

	if request.Status == models.ProjectStatusCompleted {
		project.CompletedDate = &now
	} else {
		project.CompletedDate = nil
	}
	project.Status = request.Status
	return nil
}

func ensureFields(fields []models.ProjectField) []models.ProjectField {
	if fields == nil {
		return []models.ProjectField{}
	}
	return fields
}

func ensureNoteIDs(entries []models.NoteEntry) []models.NoteEntry {
	if entries == nil {
		return []models.NoteEntry{}
	}
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = uuid.NewString()
		}
		if entries[i].Date.IsZero() {
			entries[i].Date = time.Now()
		}
	}
	return entries
}
