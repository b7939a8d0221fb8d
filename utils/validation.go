package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"casefile/models"
)

// Client file validation
func ValidateClientName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("client name cannot be empty")
	}

	if len(name) > 255 {
		return fmt.Errorf("client name too long (max 255 characters)")
	}

	if !utf8.ValidString(name) {
		return fmt.Errorf("client name contains invalid UTF-8 characters")
	}

	return nil
}

func ValidateClientType(clientType string) error {
	if clientType == models.ClientTypeBusiness || clientType == models.ClientTypeIndividual {
		return nil
	}
	return fmt.Errorf("invalid client type: %s. Allowed types: %s, %s",
		clientType, models.ClientTypeBusiness, models.ClientTypeIndividual)
}

// Project validation
func ValidateProjectStatus(status string) error {
	allowedStatuses := []string{models.ProjectStatusLive, models.ProjectStatusPending, models.ProjectStatusCompleted}
	for _, allowed := range allowedStatuses {
		if status == allowed {
			return nil
		}
	}
	return fmt.Errorf("invalid project status: %s. Allowed statuses: %s", status, strings.Join(allowedStatuses, ", "))
}

// Folder validation
func ValidateFolderName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("folder name cannot be empty")
	}

	if len(name) > 255 {
		return fmt.Errorf("folder name too long (max 255 characters)")
	}

	if !utf8.ValidString(name) {
		return fmt.Errorf("folder name contains invalid UTF-8 characters")
	}

	invalidChars := []string{"<", ">", ":", "\"", "|", "?", "*", "\x00", "/", "\\"}
	for _, char := range invalidChars {
		if strings.Contains(name, char) {
			return fmt.Errorf("folder name contains invalid character: %s", char)
		}
	}

	return nil
}

func ValidateFolderType(folderType string) error {
	allowedTypes := []string{models.FolderTypeDocuments, models.FolderTypePhotos, models.FolderTypeVideos, models.FolderTypeGeneral}
	for _, allowed := range allowedTypes {
		if folderType == allowed {
			return nil
		}
	}
	return fmt.Errorf("invalid folder type: %s. Allowed types: %s", folderType, strings.Join(allowedTypes, ", "))
}

// File validation
func ValidateFileName(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	if len(filename) > 255 {
		return fmt.Errorf("filename too long (max 255 characters)")
	}

	if !utf8.ValidString(filename) {
		return fmt.Errorf("filename contains invalid UTF-8 characters")
	}

	invalidChars := []string{"<", ">", ":", "\"", "|", "?", "*", "\x00"}
	for _, char := range invalidChars {
		if strings.Contains(filename, char) {
			return fmt.Errorf("filename contains invalid character: %s", char)
		}
	}

	return nil
}

func ValidateFileSize(size, maxSize int64) error {
	if size > maxSize {
		return fmt.Errorf("file size %d bytes exceeds maximum allowed size of %d bytes", size, maxSize)
	}
	return nil
}

// Share validation
func ValidateAccessCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("access code cannot be empty")
	}

	if len(code) < 4 || len(code) > 32 {
		return fmt.Errorf("access code must be between 4 and 32 characters")
	}

	return nil
}

func ValidateShareType(shareType string) error {
	if shareType == models.ShareTypeFile || shareType == models.ShareTypeNote {
		return nil
	}
	return fmt.Errorf("invalid share type: %s. Allowed types: %s, %s",
		shareType, models.ShareTypeFile, models.ShareTypeNote)
}

// Email validation
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	return nil
}
