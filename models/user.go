package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an owner record for client files. Identity is established by the
// external provider; this backend only stores the profile it hands over.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExternalID  string             `bson:"external_id" json:"external_id"`
	Email       string             `bson:"email" json:"email"`
	Name        string             `bson:"name" json:"name"`
	Role        string             `bson:"role" json:"role"`
	MaxStorage  int64              `bson:"max_storage" json:"max_storage"` // in bytes
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
