package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client file types
const (
	ClientTypeBusiness   = "Business"
	ClientTypeIndividual = "Individual"
)

// Project statuses. Completed is terminal: the editing surfaces treat a
// completed project as read-only.
const (
	ProjectStatusLive      = "Live"
	ProjectStatusPending   = "Pending"
	ProjectStatusCompleted = "Completed"
)

type ClientFile struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	Name        string             `bson:"name" json:"name"`
	Type        string             `bson:"type" json:"type"` // "Business" or "Individual"
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`
	IDNumber    string             `bson:"id_number,omitempty" json:"id_number,omitempty"`
	Reference   string             `bson:"reference,omitempty" json:"reference,omitempty"` // unique across all files, case-insensitive
	DateCreated time.Time          `bson:"date_created" json:"date_created"`
	LastUpdated time.Time          `bson:"last_updated" json:"last_updated"`
	Projects    []Project          `bson:"projects" json:"projects"`
}

type Project struct {
	ID            string         `bson:"id" json:"id"`
	ProjectNumber string         `bson:"project_number,omitempty" json:"project_number,omitempty"` // unique across all files' projects
	Name          string         `bson:"name" json:"name"`
	Status        string         `bson:"status" json:"status"`
	DateCreated   time.Time      `bson:"date_created" json:"date_created"`
	CompletedDate *time.Time     `bson:"completed_date,omitempty" json:"completed_date,omitempty"`
	Fields        []ProjectField `bson:"fields" json:"fields"`
	Folders       []Folder       `bson:"folders" json:"folders"`
	Notes         string         `bson:"notes,omitempty" json:"notes,omitempty"` // legacy free-text notes, superseded by NoteEntries
	NoteEntries   []NoteEntry    `bson:"note_entries" json:"note_entries"`
}

type ProjectField struct {
	Name  string `bson:"name" json:"name"`
	Value string `bson:"value" json:"value"`
}

type NoteEntry struct {
	ID         string    `bson:"id" json:"id"`
	Date       time.Time `bson:"date" json:"date"`
	Heading    string    `bson:"heading" json:"heading"`
	Subheading string    `bson:"subheading,omitempty" json:"subheading,omitempty"`
	Content    string    `bson:"content" json:"content"` // rich text (HTML)
}

// ProjectByID returns the project with the given embedded id, or nil.
func (cf *ClientFile) ProjectByID(projectID string) *Project {
	for i := range cf.Projects {
		if cf.Projects[i].ID == projectID {
			return &cf.Projects[i]
		}
	}
	return nil
}
