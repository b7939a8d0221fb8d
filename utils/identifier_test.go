package utils

import (
	"testing"

	"casefile/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseReferenceFormat(t *testing.T) {
	tests := []struct {
		name    string
		example string
		prefix  string
		pad     int
	}{
		{name: "trailing digits", example: "PRJ-0007", prefix: "PRJ-", pad: 4},
		{name: "default example", example: "REF-001", prefix: "REF-", pad: 3},
		{name: "single digit", example: "A9", prefix: "A", pad: 1},
		{name: "no trailing digits", example: "CASE", prefix: "CASE-", pad: 3},
		{name: "empty example", example: "", prefix: "REF-", pad: 3},
		{name: "surrounding whitespace", example: "  PRJ-0007  ", prefix: "PRJ-", pad: 4},
		{name: "digits only", example: "0042", prefix: "", pad: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format := ParseReferenceFormat(tt.example)
			assert.Equal(t, tt.prefix, format.Prefix)
			assert.Equal(t, tt.pad, format.Pad)
		})
	}
}

func TestNextReference(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		example  string
		want     string
	}{
		{name: "empty population", existing: nil, example: "PRJ-0007", want: "PRJ-0001"},
		{name: "max plus one, gaps ignored", existing: []string{"PRJ-0001", "PRJ-0003"}, example: "PRJ-0001", want: "PRJ-0004"},
		{name: "prefix match is case sensitive", existing: []string{"prj-0009"}, example: "PRJ-0001", want: "PRJ-0001"},
		{name: "non-numeric tails discarded", existing: []string{"PRJ-ABC", "PRJ-0002x", "PRJ-"}, example: "PRJ-0001", want: "PRJ-0001"},
		{name: "zero tail discarded", existing: []string{"PRJ-000"}, example: "PRJ-001", want: "PRJ-001"},
		{name: "width grows past padding", existing: []string{"PRJ-999"}, example: "PRJ-001", want: "PRJ-1000"},
		{name: "default example when blank", existing: nil, example: "", want: "REF-001"},
		{name: "unrelated prefixes invisible", existing: []string{"INV-0005", "PRJ-0002"}, example: "PRJ-0001", want: "PRJ-0003"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextReference(tt.existing, tt.example))
		})
	}
}

func TestNextReferenceNeverReusesMax(t *testing.T) {
	existing := []string{"REF-001", "REF-002", "REF-003"}

	next := NextReference(existing, "REF-001")
	assert.Equal(t, "REF-004", next)

	// deleting intermediate values must not resurrect them
	assert.Equal(t, "REF-004", NextReference([]string{"REF-003"}, "REF-001"))
}

func TestIsDuplicateReference(t *testing.T) {
	fileA := models.ClientFile{ID: primitive.NewObjectID(), Reference: "acme"}
	fileB := models.ClientFile{ID: primitive.NewObjectID(), Reference: "REF-002"}
	fileC := models.ClientFile{ID: primitive.NewObjectID()}
	files := []models.ClientFile{fileA, fileB, fileC}

	assert.True(t, IsDuplicateReference(files, " Acme ", ""), "case and whitespace are ignored")
	assert.True(t, IsDuplicateReference(files, "ref-002", ""))
	assert.False(t, IsDuplicateReference(files, "REF-003", ""))

	// blank candidates are never duplicates
	assert.False(t, IsDuplicateReference(files, "", ""))
	assert.False(t, IsDuplicateReference(files, "   ", ""))

	// the file being edited is not compared against itself
	assert.False(t, IsDuplicateReference(files, "ACME", fileA.ID.Hex()))
	assert.True(t, IsDuplicateReference(files, "ACME", fileB.ID.Hex()))
}

func TestIsDuplicateProjectNumber(t *testing.T) {
	files := []models.ClientFile{
		{
			ID: primitive.NewObjectID(),
			Projects: []models.Project{
				{ID: "p1", ProjectNumber: "PRJ-001"},
				{ID: "p2"},
			},
		},
		{
			ID: primitive.NewObjectID(),
			Projects: []models.Project{
				{ID: "p3", ProjectNumber: "PRJ-002"},
			},
		},
	}

	// uniqueness spans projects across all files
	assert.True(t, IsDuplicateProjectNumber(files, "prj-002", ""))
	assert.True(t, IsDuplicateProjectNumber(files, " PRJ-001 ", ""))
	assert.False(t, IsDuplicateProjectNumber(files, "PRJ-003", ""))
	assert.False(t, IsDuplicateProjectNumber(files, "", ""))
	assert.False(t, IsDuplicateProjectNumber(files, "PRJ-001", "p1"))
}

func TestCollectHelpers(t *testing.T) {
	files := []models.ClientFile{
		{Reference: "REF-001", Projects: []models.Project{{ID: "a", ProjectNumber: "PRJ-001"}, {ID: "b"}}},
		{Projects: []models.Project{{ID: "c", ProjectNumber: "PRJ-002"}}},
	}

	assert.Equal(t, []string{"REF-001"}, CollectReferences(files))
	assert.Equal(t, []string{"PRJ-001", "PRJ-002"}, CollectProjectNumbers(files))
}
