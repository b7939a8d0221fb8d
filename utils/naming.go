package utils

import (
	"fmt"
	"strings"

	"casefile/models"
)

// protectedExtensions is the allow-list of functional file extensions that
// must survive any display-name edit unchanged.
var protectedExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".ppt": true, ".pptx": true, ".txt": true, ".rtf": true, ".csv": true,
	".odt": true, ".ods": true,
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true,
	".webp": true, ".svg": true, ".heic": true, ".tiff": true,
	".mp4": true, ".mov": true, ".avi": true, ".mkv": true, ".webm": true,
	".m4v": true, ".wmv": true,
	".mp3": true, ".wav": true, ".m4a": true, ".ogg": true, ".flac": true,
	".zip": true, ".rar": true, ".7z": true, ".tar": true, ".gz": true,
}

// HasProtectedExtension reports whether name ends in a known document, image,
// video, audio or archive extension. The check is case-insensitive.
func HasProtectedExtension(name string) bool {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return false
	}
	return protectedExtensions[strings.ToLower(name[idx:])]
}

// PreserveExtensionName applies a user's display-name edit without ever losing
// a protected extension. When the original name carries a protected extension
// the result is always the trimmed basename of the user input plus the
// original extension; any extension the user typed is discarded. Empty input
// leaves the original name unchanged; names without a protected extension
// rename freely.
func PreserveExtensionName(originalName, userInput string) string {
	trimmed := strings.TrimSpace(userInput)
	if trimmed == "" {
		return originalName
	}

	if !HasProtectedExtension(originalName) {
		return trimmed
	}

	ext := originalName[strings.LastIndex(originalName, "."):]

	base := trimmed
	if HasProtectedExtension(trimmed) {
		base = strings.TrimSpace(trimmed[:strings.LastIndex(trimmed, ".")])
	}
	if base == "" {
		return originalName
	}
	return base + ext
}

// FileTypeForName classifies an uploaded file by its extension for display
// grouping. Unknown extensions fall through to "other".
func FileTypeForName(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return models.FileTypeOther
	}
	switch strings.ToLower(name[idx:]) {
	case ".pdf":
		return models.FileTypePDF
	case ".doc", ".docx", ".txt", ".rtf", ".odt":
		return models.FileTypeWord
	case ".xls", ".xlsx", ".csv", ".ods":
		return models.FileTypeExcel
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp", ".svg", ".heic", ".tiff":
		return models.FileTypeImage
	case ".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v", ".wmv":
		return models.FileTypeVideo
	default:
		return models.FileTypeOther
	}
}

// TotalStorageBytes sums the exact byte size of every file in every folder in
// every project across the given client files. Files without an exact size
// count as zero.
func TotalStorageBytes(files []models.ClientFile) int64 {
	var total int64
	for _, file := range files {
		for _, project := range file.Projects {
			for _, folder := range project.Folders {
				for _, folderFile := range folder.Files {
					if folderFile.SizeInBytes != nil {
						total += *folderFile.SizeInBytes
					}
				}
			}
		}
	}
	return total
}

// FormatSize renders a byte count with binary (1024) thresholds: whole bytes
// below 1 KB, one decimal for KB and MB, two decimals for GB.
func FormatSize(bytes int64) string {
	const unit = 1024
	switch {
	case bytes < unit:
		return fmt.Sprintf("%d B", bytes)
	case bytes < unit*unit:
		return fmt.Sprintf("%.1f KB", float64(bytes)/unit)
	case bytes < unit*unit*unit:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(unit*unit))
	default:
		return fmt.Sprintf("%.2f GB", float64(bytes)/(unit*unit*unit))
	}
}
