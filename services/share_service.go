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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ShareService struct {
	shareCollection  *mongo.Collection
	clientCollection *mongo.Collection
}

type CreateShareRequest struct {
	Type         string     `json:"type" validate:"required,oneof=file note"`
	FileID       string     `json:"file_id" validate:"required"`
	ProjectID    string     `json:"project_id" validate:"required"`
	FolderID     string     `json:"folder_id,omitempty"`
	FolderFileID string     `json:"folder_file_id,omitempty"`
	NoteID       string     `json:"note_id,omitempty"`
	AccessCode   string     `json:"access_code" validate:"required"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// VerifyResult is the outcome of one access-code submission.
type VerifyResult struct {
	State             GateState `json:"state"`
	Destination       string    `json:"destination,omitempty"`
	AttemptsRemaining int       `json:"attempts_remaining"`
}

func NewShareService(db *mongo.Database) *ShareService {
	return &ShareService{
		shareCollection:  db.Collection("view_shares"),
		clientCollection: db.Collection("client_files"),
	}
}

// CreateShare mints a share token for one document or one note. The target
// must exist inside a client file owned by the creator, and the record must
// carry the selectors its type requires so the gate can never resolve a
// share it cannot navigate.
func (s *ShareService) CreateShare(ctx context.Context, ownerID primitive.ObjectID, request CreateShareRequest) (*models.ViewShare, error) {
	if err := utils.ValidateShareType(request.Type); err != nil {
		return nil, err
	}
	if err := utils.ValidateAccessCode(request.AccessCode); err != nil {
		return nil, err
	}

	switch request.Type {
	case models.ShareTypeFile:
		if request.FolderID == "" || request.FolderFileID == "" {
			return nil, fmt.Errorf("file share requires folder_id and folder_file_id")
		}
	case models.ShareTypeNote:
		if request.NoteID == "" {
			return nil, fmt.Errorf("note share requires note_id")
		}
	}

	if err := s.validateTarget(ctx, ownerID, request); err != nil {
		return nil, err
	}

	share := models.ViewShare{
		ID:           primitive.NewObjectID(),
		Token:        uuid.NewString(),
		Type:         request.Type,
		FileID:       request.FileID,
		ProjectID:    request.ProjectID,
		FolderID:     request.FolderID,
		FolderFileID: request.FolderFileID,
		NoteID:       request.NoteID,
		AccessCode:   request.AccessCode,
		CreatedBy:    ownerID.Hex(),
		CreatedAt:    time.Now(),
		ExpiresAt:    request.ExpiresAt,
	}

	if _, err := s.shareCollection.InsertOne(ctx, share); err != nil {
		return nil, fmt.Errorf("failed to create view share: %w", err)
	}
	return &share, nil
}

// ListShares returns the creator's shares, newest first.
func (s *ShareService) ListShares(ctx context.Context, ownerID primitive.ObjectID) ([]models.ViewShare, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.shareCollection.Find(ctx, bson.M{"created_by": ownerID.Hex()}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list view shares: %w", err)
	}
	defer cursor.Close(ctx)

	shares := []models.ViewShare{}
	if err := cursor.All(ctx, &shares); err != nil {
		return nil, fmt.Errorf("failed to decode view shares: %w", err)
	}
	return shares, nil
}

// RevokeShare deletes a share. A locked share can only be recovered this
// way: the sender revokes and issues a new link.
func (s *ShareService) RevokeShare(ctx context.Context, ownerID primitive.ObjectID, shareID string) error {
	objID, err := primitive.ObjectIDFromHex(shareID)
	if err != nil {
		return fmt.Errorf("invalid share ID")
	}

	result, err := s.shareCollection.DeleteOne(ctx, bson.M{"_id": objID, "created_by": ownerID.Hex()})
	if err != nil {
		return fmt.Errorf("failed to revoke share: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("share not found")
	}
	return nil
}

// Resolve looks a token up. Unknown and expired tokens both come back as
// nil with no error: to the gate they are the same terminal NotFound and
// must not count against the attempt budget.
func (s *ShareService) Resolve(ctx context.Context, token string) (*models.ViewShare, error) {
	var share models.ViewShare
	err := s.shareCollection.FindOne(ctx, bson.M{"token": token}).Decode(&share)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("share lookup failed: %w", err)
	}

	if share.Expired(time.Now()) {
		return nil, nil
	}
	return &share, nil
}

// VerifyCode runs one submission through the gate machine against the
// share's persisted attempt counter and writes the counter back.
func (s *ShareService) VerifyCode(ctx context.Context, token, code string) (*VerifyResult, error) {
	share, err := s.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	gate := NewShareGate(token)
	gate.ResolveSucceeded(share)
	if gate.State() == GateNotFound {
		return &VerifyResult{State: GateNotFound}, nil
	}

	state := gate.SubmitCode(code)

	update := bson.M{"$set": bson.M{
		"attempts": gate.Attempts(),
		"locked":   state == GateLocked,
	}}
	if _, err := s.shareCollection.UpdateOne(ctx, bson.M{"token": token}, update); err != nil {
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	return &VerifyResult{
		State:             state,
		Destination:       gate.Destination(),
		AttemptsRemaining: gate.AttemptsRemaining(),
	}, nil
}

// DeleteExpired purges shares whose expiry has passed. Called by the
// background cleanup job.
func (s *ShareService) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{"expires_at": bson.M{"$ne": nil, "$lte": now}}
	result, err := s.shareCollection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired shares: %w", err)
	}
	return result.DeletedCount, nil
}

func (s *ShareService) validateTarget(ctx context.Context, ownerID primitive.ObjectID, request CreateShareRequest) error {
	fileObjID, err := primitive.ObjectIDFromHex(request.FileID)
	if err != nil {
		return fmt.Errorf("invalid client file ID")
	}

	var client models.ClientFile
	err = s.clientCollection.FindOne(ctx, bson.M{"_id": fileObjID, "owner_id": ownerID}).Decode(&client)
	if err == mongo.ErrNoDocuments {
		return fmt.Errorf("client file not found")
	} else if err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	project := client.ProjectByID(request.ProjectID)
	if project == nil {
		return fmt.Errorf("project not found")
	}

	switch request.Type {
	case models.ShareTypeFile:
		folder := project.FolderByID(request.FolderID)
		if folder == nil {
			return fmt.Errorf("folder not found")
		}
		if folder.FileByID(request.FolderFileID) == nil {
			return fmt.Errorf("file not found")
		}
	case models.ShareTypeNote:
		found := false
		for _, entry := range project.NoteEntries {
			if entry.ID == request.NoteID {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("note not found")
		}
	}
	return nil
}
