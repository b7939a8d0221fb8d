package utils

import (
	"testing"

	"casefile/models"

	"github.com/stretchr/testify/assert"
)

func TestHasProtectedExtension(t *testing.T) {
	assert.True(t, HasProtectedExtension("report.pdf"))
	assert.True(t, HasProtectedExtension("photo.JPG"), "extension check is case-insensitive")
	assert.True(t, HasProtectedExtension("archive.tar"))
	assert.False(t, HasProtectedExtension("notes"))
	assert.False(t, HasProtectedExtension("binary.xyz"))
	assert.False(t, HasProtectedExtension(""))
}

func TestPreserveExtensionName(t *testing.T) {
	tests := []struct {
		name     string
		original string
		input    string
		want     string
	}{
		{name: "protected extension always wins", original: "report.pdf", input: "final version.docx", want: "final version.pdf"},
		{name: "free rename without protected extension", original: "notes", input: "new name.txt", want: "new name.txt"},
		{name: "empty input keeps original", original: "report.pdf", input: "   ", want: "report.pdf"},
		{name: "extension appended when input has none", original: "photo.JPG", input: "holiday", want: "holiday.JPG"},
		{name: "input trimmed", original: "scan.png", input: "  receipt  ", want: "receipt.png"},
		{name: "input that is only an extension keeps original", original: "report.pdf", input: ".docx", want: "report.pdf"},
		{name: "unprotected dot suffix kept as basename", original: "report.pdf", input: "v1.2 final", want: "v1.2 final.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PreserveExtensionName(tt.original, tt.input))
		})
	}
}

func TestFileTypeForName(t *testing.T) {
	assert.Equal(t, models.FileTypePDF, FileTypeForName("contract.pdf"))
	assert.Equal(t, models.FileTypeWord, FileTypeForName("letter.DOCX"))
	assert.Equal(t, models.FileTypeExcel, FileTypeForName("accounts.xlsx"))
	assert.Equal(t, models.FileTypeImage, FileTypeForName("site.jpeg"))
	assert.Equal(t, models.FileTypeVideo, FileTypeForName("walkthrough.mp4"))
	assert.Equal(t, models.FileTypeOther, FileTypeForName("data.bin"))
	assert.Equal(t, models.FileTypeOther, FileTypeForName("README"))
}

func TestTotalStorageBytes(t *testing.T) {
	size1 := int64(1024)
	size2 := int64(2048)

	files := []models.ClientFile{
		{
			Projects: []models.Project{
				{
					Folders: []models.Folder{
						{Files: []models.FolderFile{
							{SizeInBytes: &size1},
							{SizeInBytes: nil}, // legacy record without exact size
						}},
					},
				},
			},
		},
		{
			Projects: []models.Project{
				{Folders: []models.Folder{{Files: []models.FolderFile{{SizeInBytes: &size2}}}}},
				{Folders: nil},
			},
		},
	}

	assert.Equal(t, int64(3072), TotalStorageBytes(files))
	assert.Equal(t, int64(0), TotalStorageBytes(nil))
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{500, "500 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{2048, "2.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{1073741824, "1.00 GB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.bytes), "bytes=%d", tt.bytes)
	}
}
