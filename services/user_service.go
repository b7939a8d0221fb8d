package services

import (
	"context"
	"fmt"
	"time"

	"casefile/models"
	"casefile/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserService maintains owner profiles. Identity is established by the
// external provider's token; the record carries what this backend owns
// about an owner, currently the per-owner storage quota override.
type UserService struct {
	collection        *mongo.Collection
	defaultMaxStorage int64
}

// ProfileClaims is the identity handed over by the verified token.
type ProfileClaims struct {
	ExternalID string
	Email      string
	Name       string
	Role       string
}

func NewUserService(db *mongo.Database, defaultMaxStorage int64) *UserService {
	return &UserService{
		collection:        db.Collection("users"),
		defaultMaxStorage: defaultMaxStorage,
	}
}

// EnsureProfile upserts the owner record for the authenticated identity and
// returns the stored document, so an owner's first request creates it.
func (s *UserService) EnsureProfile(ctx context.Context, ownerID primitive.ObjectID, claims ProfileClaims) (*models.User, error) {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"external_id": claims.ExternalID,
			"email":       claims.Email,
			"name":        claims.Name,
			"role":        claims.Role,
			"updated_at":  now,
		},
		"$setOnInsert": bson.M{
			"created_at":  now,
			"max_storage": int64(0),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var user models.User
	if err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": ownerID}, update, opts).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to upsert user profile: %w", err)
	}
	return &user, nil
}

// MaxStorage resolves the owner's storage cap: the profile override when one
// is set, otherwise the configured default. A missing profile just means no
// override yet.
func (s *UserService) MaxStorage(ctx context.Context, ownerID primitive.ObjectID) int64 {
	var user models.User
	if err := s.collection.FindOne(ctx, bson.M{"_id": ownerID}).Decode(&user); err != nil {
		if err != mongo.ErrNoDocuments {
			utils.LogWarning("failed to load user profile %s: %v", ownerID.Hex(), err)
		}
		return s.defaultMaxStorage
	}
	return effectiveMaxStorage(&user, s.defaultMaxStorage)
}

func effectiveMaxStorage(user *models.User, fallback int64) int64 {
	if user != nil && user.MaxStorage > 0 {
		return user.MaxStorage
	}
	return fallback
}
