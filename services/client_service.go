package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"casefile/models"
	"casefile/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ClientService struct {
	clientCollection *mongo.Collection
	shareCollection  *mongo.Collection
	b2Service        *B2Service
}

type ClientRequest struct {
	Name      string `json:"name" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=Business Individual"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	IDNumber  string `json:"id_number,omitempty"`
	Reference string `json:"reference,omitempty"`
}

var ErrDuplicateReference = fmt.Errorf("reference is already in use")

func NewClientService(db *mongo.Database, b2Service *B2Service) *ClientService {
	return &ClientService{
		clientCollection: db.Collection("client_files"),
		shareCollection:  db.Collection("view_shares"),
		b2Service:        b2Service,
	}
}

// CreateClient creates a new client file. The reference, when supplied, must
// be unique across the owner's files ignoring case and surrounding whitespace.
func (s *ClientService) CreateClient(ctx context.Context, ownerID primitive.ObjectID, request ClientRequest) (*models.ClientFile, error) {
	if err := utils.ValidateClientName(request.Name); err != nil {
		return nil, err
	}
	if err := utils.ValidateClientType(request.Type); err != nil {
		return nil, err
	}
	if request.Email != "" {
		if err := utils.ValidateEmail(request.Email); err != nil {
			return nil, err
		}
	}

	population, err := s.ownerFiles(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if utils.IsDuplicateReference(population, request.Reference, "") {
		return nil, ErrDuplicateReference
	}

	now := time.Now()
	client := models.ClientFile{
		ID:          primitive.NewObjectID(),
		OwnerID:     ownerID,
		Name:        request.Name,
		Type:        request.Type,
		Phone:       request.Phone,
		Email:       request.Email,
		IDNumber:    request.IDNumber,
		Reference:   request.Reference,
		DateCreated: now,
		LastUpdated: now,
		Projects:    []models.Project{},
	}

	if _, err := s.clientCollection.InsertOne(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client file: %w", err)
	}

	return &client, nil
}

// ListClients returns the owner's client files sorted by most recently updated.
func (s *ClientService) ListClients(ctx context.Context, ownerID primitive.ObjectID) ([]models.ClientFile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "last_updated", Value: -1}})
	cursor, err := s.clientCollection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list client files: %w", err)
	}
	defer cursor.Close(ctx)

	clients := []models.ClientFile{}
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, fmt.Errorf("failed to decode client files: %w", err)
	}
	return clients, nil
}

func (s *ClientService) GetClient(ctx context.Context, clientID string, ownerID primitive.ObjectID) (*models.ClientFile, error) {
	objID, err := primitive.ObjectIDFromHex(clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid client file ID")
	}

	var client models.ClientFile
	err = s.clientCollection.FindOne(ctx, bson.M{"_id": objID, "owner_id": ownerID}).Decode(&client)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("client file not found")
	} else if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &client, nil
}

// UpdateClient updates the identity fields of a client file. The reference
// duplicate check excludes the file being edited.
func (s *ClientService) UpdateClient(ctx context.Context, clientID string, ownerID primitive.ObjectID, request ClientRequest) (*models.ClientFile, error) {
	client, err := s.GetClient(ctx, clientID, ownerID)
	if err != nil {
		return nil, err
	}

	if err := utils.ValidateClientName(request.Name); err != nil {
		return nil, err
	}
	if err := utils.ValidateClientType(request.Type); err != nil {
		return nil, err
	}

	population, err := s.ownerFiles(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if utils.IsDuplicateReference(population, request.Reference, client.ID.Hex()) {
		return nil, ErrDuplicateReference
	}

	update := bson.M{"$set": bson.M{
		"name":         request.Name,
		"type":         request.Type,
		"phone":        request.Phone,
		"email":        request.Email,
		"id_number":    request.IDNumber,
		"reference":    request.Reference,
		"last_updated": time.Now(),
	}}
	if _, err := s.clientCollection.UpdateOne(ctx, bson.M{"_id": client.ID, "owner_id": ownerID}, update); err != nil {
		return nil, fmt.Errorf("failed to update client file: %w", err)
	}

	return s.GetClient(ctx, clientID, ownerID)
}

// DeleteClient permanently removes a client file, its stored documents and
// any view shares that pointed into it. Deletion is irreversible; the caller
// has already confirmed.
func (s *ClientService) DeleteClient(ctx context.Context, clientID string, ownerID primitive.ObjectID) error {
	client, err := s.GetClient(ctx, clientID, ownerID)
	if err != nil {
		return err
	}

	for _, project := range client.Projects {
		for _, folder := range project.Folders {
			for _, file := range folder.Files {
				if err := s.b2Service.DeleteObject(ctx, file.StoragePath); err != nil {
					utils.LogWarning("failed to delete stored object %s: %v", file.StoragePath, err)
				}
			}
		}
	}

	if _, err := s.shareCollection.DeleteMany(ctx, bson.M{"file_id": client.ID.Hex()}); err != nil {
		utils.LogWarning("failed to delete view shares for client %s: %v", client.ID.Hex(), err)
	}

	if _, err := s.clientCollection.DeleteOne(ctx, bson.M{"_id": client.ID, "owner_id": ownerID}); err != nil {
		return fmt.Errorf("failed to delete client file: %w", err)
	}
	return nil
}

// SearchClients matches the query against client names, references, project
// names and project numbers.
func (s *ClientService) SearchClients(ctx context.Context, ownerID primitive.ObjectID, query string) ([]models.ClientFile, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{
		"owner_id": ownerID,
		"$or": []bson.M{
			{"name": pattern},
			{"reference": pattern},
			{"projects.name": pattern},
			{"projects.project_number": pattern},
		},
	}

	opts := options.Find().SetSort(bson.D{{Key: "last_updated", Value: -1}})
	cursor, err := s.clientCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer cursor.Close(ctx)

	clients := []models.ClientFile{}
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}
	return clients, nil
}

// NextReference computes the next unused reference for the owner's files
// from a format example. The caller persists the candidate; the duplicate
// check runs again at write time.
func (s *ClientService) NextReference(ctx context.Context, ownerID primitive.ObjectID, example string) (string, error) {
	population, err := s.ownerFiles(ctx, ownerID)
	if err != nil {
		return "", err
	}
	return utils.NextReference(utils.CollectReferences(population), example), nil
}

// CheckReference reports whether candidate would collide with another file's reference.
func (s *ClientService) CheckReference(ctx context.Context, ownerID primitive.ObjectID, candidate, excludeFileID string) (bool, error) {
	population, err := s.ownerFiles(ctx, ownerID)
	if err != nil {
		return false, err
	}
	return utils.IsDuplicateReference(population, candidate, excludeFileID), nil
}

func (s *ClientService) ownerFiles(ctx context.Context, ownerID primitive.ObjectID) ([]models.ClientFile, error) {
	cursor, err := s.clientCollection.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to load client files: %w", err)
	}
	defer cursor.Close(ctx)

	var files []models.ClientFile
	if err := cursor.All(ctx, &files); err != nil {
		return nil, fmt.Errorf("failed to decode client files: %w", err)
	}
	return files, nil
}
