package models

import "time"

// Folder types
const (
	FolderTypeDocuments = "documents"
	FolderTypePhotos    = "photos"
	FolderTypeVideos    = "videos"
	FolderTypeGeneral   = "general"
)

// Folder file types
const (
	FileTypePDF   = "pdf"
	FileTypeWord  = "word"
	FileTypeExcel = "excel"
	FileTypeImage = "image"
	FileTypeVideo = "video"
	FileTypeOther = "other"
)

type Folder struct {
	ID    string       `bson:"id" json:"id"`
	Name  string       `bson:"name" json:"name"`
	Type  string       `bson:"type" json:"type"`
	Files []FolderFile `bson:"files" json:"files"`
}

type FolderFile struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	FileType    string    `bson:"file_type" json:"file_type"`
	Size        string    `bson:"size" json:"size"` // human-readable, denormalized at upload time
	SizeInBytes *int64    `bson:"size_in_bytes,omitempty" json:"size_in_bytes,omitempty"`
	UploadDate  time.Time `bson:"upload_date" json:"upload_date"`
	PreviewURL  string    `bson:"preview_url,omitempty" json:"preview_url,omitempty"`   // signed, short-lived; refresh on demand
	StoragePath string    `bson:"storage_path,omitempty" json:"storage_path,omitempty"` // durable B2 object name
	SHA1Hash    string    `bson:"sha1_hash,omitempty" json:"sha1_hash,omitempty"`
}

// FolderByID returns the folder with the given embedded id, or nil.
func (p *Project) FolderByID(folderID string) *Folder {
	for i := range p.Folders {
		if p.Folders[i].ID == folderID {
			return &p.Folders[i]
		}
	}
	return nil
}

// FileByID returns the folder file with the given embedded id, or nil.
func (f *Folder) FileByID(fileID string) *FolderFile {
	for i := range f.Files {
		if f.Files[i].ID == fileID {
			return &f.Files[i]
		}
	}
	return nil
}
