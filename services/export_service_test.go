package services

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"casefile/models"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func exportCanvas() (*fpdf.Fpdf, func(string) string) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	return pdf, translate
}

func exportFixture() *models.ClientFile {
	return &models.ClientFile{
		ID:        primitive.NewObjectID(),
		Name:      "Acme Holdings",
		Type:      models.ClientTypeBusiness,
		Reference: "REF-001",
		Phone:     "021 555 0100",
		Projects: []models.Project{
			{
				ID:            "proj-1",
				ProjectNumber: "PRJ-001",
				Name:          "Factory Extension",
				Status:        models.ProjectStatusLive,
				Fields: []models.ProjectField{
					{Name: "Site", Value: "12 Mill Road"},
					{Name: "Engineer", Value: "T. Naidoo"},
				},
				Folders: []models.Folder{
					{ID: "f1", Name: "Drawings", Type: models.FolderTypeDocuments, Files: []models.FolderFile{{ID: "d1", Name: "plan.pdf"}}},
					{ID: "f2", Name: "Site Photos", Type: models.FolderTypePhotos},
				},
			},
			{
				ID:     "proj-2",
				Name:   "Boundary Dispute",
				Status: models.ProjectStatusPending,
				NoteEntries: []models.NoteEntry{
					{ID: "n1", Heading: "Call", Content: "<p>Spoke with <b>counsel</b> about the&nbsp;survey.</p>"},
					{ID: "n2", Content: "<p>   </p>"},
				},
			},
		},
	}
}

func TestNotesTextPrefersStructuredEntries(t *testing.T) {
	s := NewExportService()

	project := &models.Project{
		Notes: "legacy text",
		NoteEntries: []models.NoteEntry{
			{Content: "<p>First entry.</p>"},
			{Content: "  "},
			{Content: "<div>Second <i>entry</i>.</div>"},
		},
	}

	assert.Equal(t, "First entry. Second entry.", s.NotesText(project))
}

func TestNotesTextFallsBackToLegacyField(t *testing.T) {
	s := NewExportService()

	// no entries at all
	assert.Equal(t, "legacy text", s.NotesText(&models.Project{Notes: " legacy text "}))

	// entries exist but are all blank after stripping
	project := &models.Project{
		Notes:       "legacy text",
		NoteEntries: []models.NoteEntry{{Content: "<p> </p>"}, {Content: ""}},
	}
	assert.Equal(t, "legacy text", s.NotesText(project))

	// nothing anywhere
	assert.Equal(t, "", s.NotesText(&models.Project{}))
}

func TestNotesTextStripsMarkupAndEntities(t *testing.T) {
	s := NewExportService()

	project := &models.Project{
		NoteEntries: []models.NoteEntry{
			{Content: "<p>Survey &amp; transfer<br>complete.</p>"},
		},
	}

	text := s.NotesText(project)
	assert.NotContains(t, text, "<")
	assert.Contains(t, text, "Survey & transfer")
}

func TestExportFilename(t *testing.T) {
	date := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "AcmeCo_2026-03-14.pdf", ExportFilename("Acme & Co!", date))
	assert.Equal(t, "Smith_Family-Trust_2026-03-14.pdf", ExportFilename("Smith_Family-Trust", date))
	assert.Equal(t, "client-file_2026-03-14.pdf", ExportFilename("***", date))

	long := ExportFilename(strings.Repeat("a", 80), date)
	assert.Equal(t, strings.Repeat("a", 50)+"_2026-03-14.pdf", long)
}

func TestClientCardLines(t *testing.T) {
	full := exportFixture()
	assert.Equal(t, []string{
		"Type: Business",
		"Reference: REF-001",
		"Phone: 021 555 0100",
	}, clientCardLines(full))

	minimal := &models.ClientFile{Name: "J Doe", Type: models.ClientTypeIndividual}
	assert.Equal(t, []string{"Type: Individual"}, clientCardLines(minimal), "type line is mandatory, the rest optional")
}

func TestSelectProjects(t *testing.T) {
	client := exportFixture()

	// no subset: natural order
	all := selectProjects(client, nil)
	require.Len(t, all, 2)
	assert.Equal(t, "proj-1", all[0].ID)

	// subset order is honoured, unknown ids skipped
	subset := selectProjects(client, []string{"proj-2", "missing", "proj-1"})
	require.Len(t, subset, 2)
	assert.Equal(t, "proj-2", subset[0].ID)
	assert.Equal(t, "proj-1", subset[1].ID)
}

func TestExportClientFileProducesPDF(t *testing.T) {
	s := NewExportService()

	result, err := s.ExportClientFile(exportFixture(), nil, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "AcmeHoldings_2026-03-14.pdf", result.Filename)
	assert.True(t, bytes.HasPrefix(result.PDF, []byte("%PDF")))
	assert.Greater(t, len(result.PDF), 1000)
}

func TestExportClientFilePaginatesLongReports(t *testing.T) {
	s := NewExportService()

	client := exportFixture()
	for i := 0; i < 30; i++ {
		client.Projects = append(client.Projects, models.Project{
			ID:     fmt.Sprintf("bulk-%d", i),
			Name:   fmt.Sprintf("Project %d", i),
			Status: models.ProjectStatusPending,
			Fields: []models.ProjectField{
				{Name: "Stage", Value: "Planning"},
				{Name: "Budget", Value: "Unconfirmed"},
			},
			Notes: strings.Repeat("Progress note with enough text to wrap across several lines. ", 6),
		})
	}

	short, err := s.ExportClientFile(client, []string{"proj-1"}, time.Now())
	require.NoError(t, err)

	long, err := s.ExportClientFile(client, nil, time.Now())
	require.NoError(t, err)

	assert.Greater(t, len(long.PDF), len(short.PDF), "more projects produce more pages")
}

func TestEnsureRoomNeverEntersFooterBand(t *testing.T) {
	s := NewExportService()
	pdf, _ := exportCanvas()

	limit := exportPageHeight - exportFooterBand
	for y := 200.0; y < limit+10; y += 3.5 {
		cursor := s.ensureRoom(pdf, layoutCursor{y: y}, exportLineHeight)
		assert.LessOrEqual(t, cursor.y+exportLineHeight, limit,
			"a line granted room at y=%.1f must finish above the footer band", y)
	}
}

func TestDrawProjectBreaksNotesBeforeFooterBand(t *testing.T) {
	s := NewExportService()
	pdf, translate := exportCanvas()

	project := &models.Project{
		ID:     "p1",
		Name:   "Boundary Dispute",
		Status: models.ProjectStatusPending,
		Notes:  strings.Repeat("A paragraph long enough to wrap over many lines on the page. ", 10),
	}

	// start where the section header fits but the paragraph cannot: the
	// wrapped lines must spill onto a fresh page, never into the band
	start := layoutCursor{y: exportPageHeight - exportFooterBand - exportMinProjectRoom}
	end := s.drawProject(pdf, translate, project, start)

	assert.Equal(t, 2, pdf.PageCount(), "overflowing notes open a new page")
	assert.Greater(t, end.y, exportHeaderBand+exportSectionGap, "the paragraph continued below the repeated header band")
	assert.LessOrEqual(t, end.y, exportPageHeight-exportFooterBand, "the cursor never lands inside the footer band")
}

func TestDrawProjectStaysOnPageWhenRoomSuffices(t *testing.T) {
	s := NewExportService()
	pdf, translate := exportCanvas()

	project := &models.Project{ID: "p1", Name: "Short", Status: models.ProjectStatusLive, Notes: "One line."}

	end := s.drawProject(pdf, translate, project, layoutCursor{y: exportHeaderBand + exportSectionGap})

	assert.Equal(t, 1, pdf.PageCount())
	assert.LessOrEqual(t, end.y, exportPageHeight-exportFooterBand)
}

func TestDrawClientCardNeverSplits(t *testing.T) {
	s := NewExportService()
	pdf, translate := exportCanvas()

	client := exportFixture()
	cardHeight := 2*exportCardPadding + exportLineHeight + float64(len(clientCardLines(client)))*exportLineHeight

	// too close to the band for the whole card: it must move intact
	start := layoutCursor{y: exportPageHeight - exportFooterBand - cardHeight/2}
	end := s.drawClientCard(pdf, translate, client, start)

	assert.Equal(t, 2, pdf.PageCount(), "a card that cannot fit whole starts a new page")
	assert.Equal(t, exportHeaderBand+exportSectionGap+cardHeight+exportSectionGap, end.y,
		"the card occupies one contiguous block at the top of the fresh page")
}

func TestExportClientFileSkipsUnknownProjects(t *testing.T) {
	s := NewExportService()

	result, err := s.ExportClientFile(exportFixture(), []string{"missing-1", "missing-2"}, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(result.PDF, []byte("%PDF")), "an empty selection still renders header and client card")
}
