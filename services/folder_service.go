package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"casefile/models"
	"casefile/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type FolderService struct {
	clientCollection *mongo.Collection
	clientService    *ClientService
	projectService   *ProjectService
	b2Service        *B2Service
	maxFileSize      int64
}

type UsageSummary struct {
	TotalBytes int64  `json:"total_bytes"`
	Formatted  string `json:"formatted"`
	MaxBytes   int64  `json:"max_bytes"`
}

func NewFolderService(db *mongo.Database, clientService *ClientService, projectService *ProjectService, b2Service *B2Service, maxFileSize int64) *FolderService {
	return &FolderService{
		clientCollection: db.Collection("client_files"),
		clientService:    clientService,
		projectService:   projectService,
		b2Service:        b2Service,
		maxFileSize:      maxFileSize,
	}
}

// AddFolder creates a typed folder inside a project.
func (s *FolderService) AddFolder(ctx context.Context, ownerID primitive.ObjectID, clientID, projectID, name, folderType string) (*models.Folder, error) {
	if err := utils.ValidateFolderName(name); err != nil {
		return nil, err
	}
	if err := utils.ValidateFolderType(folderType); err != nil {
		return nil, err
	}

	client, project, err := s.findProject(ctx, ownerID, clientID, projectID)
	if err != nil {
		return nil, err
	}

	folder := models.Folder{
		ID:    uuid.NewString(),
		Name:  name,
		Type:  folderType,
		Files: []models.FolderFile{},
	}
	project.Folders = append(project.Folders, folder)

	if err := s.projectService.saveProjects(ctx, client); err != nil {
		return nil, err
	}
	return &folder, nil
}

// RenameFolder renames a folder. Folder names are free-form; extension
// preservation applies to files, not folders.
func (s *FolderService) RenameFolder(ctx context.Context, ownerID primitive.ObjectID, clientID, projectID, folderID, name string) error {
	if err := utils.ValidateFolderName(name); err != nil {
		return err
	}

	client, _, folder, err := s.findFolder(ctx, ownerID, clientID, projectID, folderID)
	if err != nil {
		return err
	}

	folder.Name = name
	return s.projectService.saveProjects(ctx, client)
}

// DeleteFolder permanently removes a folder and its stored documents.
func (s *FolderService) DeleteFolder(ctx context.Context, ownerID primitive.ObjectID, clientID, projectID, folderID string) error {
	client, project, folder, err := s.findFolder(ctx, ownerID, clientID, projectID, folderID)
	if err != nil {
		return err
	}

	for _, file := range folder.Files {
		if err := s.b2Service.DeleteObject(ctx, file.StoragePath); err != nil {
			utils.LogWarning("failed to delete stored object %s: %v", file.StoragePath, err)
		}
	}

	for i := range project.Folders {
		if project.Folders[i].ID == folderID {
			project.Folders = append(project.Folders[:i], project.Folders[i+1:]...)
			break
		}
	}
	return s.projectService.saveProjects(ctx, client)
}

// UploadFiles streams each uploaded document into B2 and records it in the
// folder. The human-readable size string is denormalized from the byte count
// at upload time.
func (s *FolderService) UploadFiles(ctx context.Context, ownerID primitive.ObjectID, clientID, projectID, folderID string, headers []*multipart.FileHeader) ([]models.FolderFile, error) {
	client, _, folder, err := s.findFolder(ctx, ownerID, clientID, projectID, folderID)
	if err != nil {
		return nil, err
	}

	var uploaded []models.FolderFile
	for _, header := range headers {
		if err := utils.ValidateFileName(header.Filename); err != nil {
			return nil, err
		}
		if err := utils.ValidateFileSize(header.Size, s.maxFileSize); err != nil {
			return nil, err
		}

		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file %s: %w", header.Filename, err)
		}

		result, err := s.b2Service.UploadFile(ctx, file, header.Filename, clientID, projectID, folderID)
		file.Close()
		if err != nil {
			return nil, err
		}

		size := result.Size
		folderFile := models.FolderFile{
			ID:          uuid.NewString(),
			Name:        header.Filename,
			FileType:    utils.FileTypeForName(header.Filename),
			Size:        utils.FormatSize(size),
			SizeInBytes: &size,
			UploadDate:  time.Now(),
			PreviewURL:  result.PreviewURL,
			StoragePath: result.StoragePath,
			SHA1Hash:    result.SHA1,
		}
		folder.Files = append(folder.Files, folderFile)
		uploaded = append(uploaded, folderFile)
	}

	if err := s.projectService.saveProjects(ctx, client); err != nil {
		return nil, err
	}
	return uploaded, nil
}

// RenameFile applies a display-name edit. Files with a protected extension
// keep it regardless of what the user typed.
func (s *FolderService) RenameFile(ctx context.Context, ownerID primitive.ObjectID, clientID, projectID, folderID, fileID, newName string) (*models.FolderFile, error) {
	client, _, folder, err := s.findFolder(ctx, ownerID, clientID, projectID, folderID)
	if err != nil {
		return nil, err
	}

	file := folder.FileByID(fileID)
	if file == nil {
		return nil, fmt.Errorf("file not found")
	}

	file.Name = utils.PreserveExtensionName(file.Name, newName)
	file.FileType = utils.FileTypeForName(file.Name)

	if err := s.projectService.saveProjects(ctx, client); err != nil {
		return nil, err
	}
	return file, nil
}

// DeleteFile permanently removes a document from storage and the folder.
func (s *FolderService) DeleteFile(ctx context.Context, ownerID primitive.ObjectID, clientID, projectID, folderID, fileID string) error {
	client, _, folder, err := s.findFolder(ctx, ownerID, clientID, projectID, folderID)
	if err != nil {
		return err
	}

	file := folder.FileByID(fileID)
	if file == nil {
		return fmt.Errorf("file not found")
	}

	if err := s.b2Service.DeleteObject(ctx, file.StoragePath); err != nil {
		return err
	}

	for i := range folder.Files {
		if folder.Files[i].ID == fileID {
			folder.Files = append(folder.Files[:i], folder.Files[i+1:]...)
			break
		}
	}
	return s.projectService.saveProjects(ctx, client)
}

// RefreshPreviewURL re-signs the short-lived preview URL from the durable
// storage path and persists it.
func (s *FolderService) RefreshPreviewURL(ctx context.Context, ownerID primitive.ObjectID, clientID, projectID, folderID, fileID string) (string, error) {
	client, _, folder, err := s.findFolder(ctx, ownerID, clientID, projectID, folderID)
	if err != nil {
		return "", err
	}

	file := folder.FileByID(fileID)
	if file == nil {
		return "", fmt.Errorf("file not found")
	}
	if file.StoragePath == "" {
		return "", fmt.Errorf("file has no stored object")
	}

	previewURL, err := s.b2Service.GetSignedURL(ctx, file.StoragePath, URLTypePreview)
	if err != nil {
		return "", err
	}

	file.PreviewURL = previewURL
	if err := s.projectService.saveProjects(ctx, client); err != nil {
		return "", err
	}
	return previewURL, nil
}

// DownloadURL signs a longer-lived download URL. Not persisted.
func (s *FolderService) DownloadURL(ctx context.Context, ownerID primitive.ObjectID, clientID, projectID, folderID, fileID string) (string, error) {
	_, _, folder, err := s.findFolder(ctx, ownerID, clientID, projectID, folderID)
	if err != nil {
		return "", err
	}

	file := folder.FileByID(fileID)
	if file == nil {
		return "", fmt.Errorf("file not found")
	}
	if file.StoragePath == "" {
		return "", fmt.Errorf("file has no stored object")
	}

	return s.b2Service.GetSignedURL(ctx, file.StoragePath, URLTypeDownload)
}

// Usage aggregates stored bytes across all of the owner's client files.
func (s *FolderService) Usage(ctx context.Context, ownerID primitive.ObjectID, maxStorage int64) (*UsageSummary, error) {
	files, err := s.clientService.ownerFiles(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	total := utils.TotalStorageBytes(files)
	return &UsageSummary{
		TotalBytes: total,
		Formatted:  utils.FormatSize(total),
		MaxBytes:   maxStorage,
	}, nil
}

func (s *FolderService) findProject(ctx context.Context, ownerID primitive.ObjectID, clientID, projectID string) (*models.ClientFile, *models.Project, error) {
	client, err := s.clientService.GetClient(ctx, clientID, ownerID)
	if err != nil {
		return nil, nil, err
	}

	project := client.ProjectByID(projectID)
	if project == nil {
		return nil, nil, fmt.Errorf("project not found")
	}
	return client, project, nil
}

func (s *FolderService) findFolder(ctx context.Context, ownerID primitive.ObjectID, clientID, projectID, folderID string) (*models.ClientFile, *models.Project, *models.Folder, error) {
	client, project, err := s.findProject(ctx, ownerID, clientID, projectID)
	if err != nil {
		return nil, nil, nil, err
	}

	folder := project.FolderByID(folderID)
	if folder == nil {
		return nil, nil, nil, fmt.Errorf("folder not found")
	}
	return client, project, folder, nil
}
