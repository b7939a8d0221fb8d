package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// View share types
const (
	ShareTypeFile = "file"
	ShareTypeNote = "note"
)

// ViewShare grants anonymous, access-code-gated access to a single document
// or note inside a client file. The token is the opaque string embedded in
// the public URL; the access code is handed to the recipient out of band.
type ViewShare struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Token        string             `bson:"token" json:"token"`
	Type         string             `bson:"type" json:"type"` // "file" or "note"
	FileID       string             `bson:"file_id" json:"file_id"`
	ProjectID    string             `bson:"project_id" json:"project_id"`
	FolderID     string             `bson:"folder_id,omitempty" json:"folder_id,omitempty"`
	FolderFileID string             `bson:"folder_file_id,omitempty" json:"folder_file_id,omitempty"`
	NoteID       string             `bson:"note_id,omitempty" json:"note_id,omitempty"`
	AccessCode   string             `bson:"access_code" json:"-"`
	CreatedBy    string             `bson:"created_by" json:"created_by"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	ExpiresAt    *time.Time         `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
	Attempts     int                `bson:"attempts" json:"-"`
	Locked       bool               `bson:"locked" json:"-"`
}

// Expired reports whether the share has an expiry in the past.
func (s *ViewShare) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.Before(now)
}
