package services

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/kurin/blazer/b2"
)

// B2Service stores document bytes in a private Backblaze B2 bucket. The
// object name is the durable storage path kept on the FolderFile record;
// preview and download URLs are signed and expire.
type B2Service struct {
	client     *b2.Client
	bucketName string
	bucket     *b2.Bucket
}

type UploadResult struct {
	StoragePath string
	PreviewURL  string
	Size        int64
	SHA1        string
}

type URLType string

const (
	URLTypeDownload URLType = "download"
	URLTypePreview  URLType = "preview"
)

func NewB2Service(keyID, applicationKey, bucketName string) (*B2Service, error) {
	ctx := context.Background()

	client, err := b2.NewClient(ctx, keyID, applicationKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create B2 client: %w", err)
	}

	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket %s: %w", bucketName, err)
	}

	return &B2Service{
		client:     client,
		bucketName: bucketName,
		bucket:     bucket,
	}, nil
}

// UploadFile streams a document into B2 under a collision-free object name
// scoped to its folder, hashing the bytes as they pass through.
func (s *B2Service) UploadFile(ctx context.Context, file multipart.File, filename, clientFileID, projectID, folderID string) (*UploadResult, error) {
	storedName := uuid.NewString() + filepath.Ext(filename)
	objectName := fmt.Sprintf("clients/%s/%s/%s/%s", clientFileID, projectID, folderID, storedName)

	obj := s.bucket.Object(objectName)
	writer := obj.NewWriter(ctx)

	hasher := sha1.New()
	multiWriter := io.MultiWriter(writer, hasher)

	size, err := io.Copy(multiWriter, file)
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to upload file to B2: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close B2 writer: %w", err)
	}

	previewURL, err := s.GetSignedURL(ctx, objectName, URLTypePreview)
	if err != nil {
		return nil, err
	}

	return &UploadResult{
		StoragePath: objectName,
		PreviewURL:  previewURL,
		Size:        size,
		SHA1:        hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

// GetSignedURL generates a signed URL based on the type (download or preview)
func (s *B2Service) GetSignedURL(ctx context.Context, objectName string, urlType URLType) (string, error) {
	var duration time.Duration

	switch urlType {
	case URLTypeDownload:
		duration = 24 * time.Hour
	case URLTypePreview:
		duration = 1 * time.Hour
	default:
		duration = 1 * time.Hour
	}

	obj := s.bucket.Object(objectName)
	urlObj, err := obj.AuthURL(ctx, duration, "GET")
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL for %s: %w", objectName, err)
	}

	return urlObj.String(), nil
}

// DeleteObject removes an object from the bucket by its storage path.
func (s *B2Service) DeleteObject(ctx context.Context, objectName string) error {
	if objectName == "" {
		return nil
	}

	obj := s.bucket.Object(objectName)
	if err := obj.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete B2 object %s: %w", objectName, err)
	}
	return nil
}
