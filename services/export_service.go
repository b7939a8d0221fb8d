package services

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"casefile/models"

	"github.com/go-pdf/fpdf"
	"github.com/microcosm-cc/bluemonday"
)

// Page geometry in millimetres (A4 portrait).
const (
	exportPageWidth   = 210.0
	exportPageHeight  = 297.0
	exportMargin      = 14.0
	exportHeaderBand  = 26.0
	exportFooterBand  = 16.0
	exportLineHeight  = 6.0
	exportCardPadding = 5.0
	exportSectionGap  = 8.0
	exportRowHeight   = 7.0

	// Minimum room for a project section: title, subtitle and at least one
	// table row. A project never starts closer to the footer than this.
	exportMinProjectRoom = 26.0
)

const exportContentWidth = exportPageWidth - 2*exportMargin

const exportAttribution = "Generated by CaseFile"

var exportFilenamePattern = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// ExportService renders a client file's projects into a paginated PDF report.
type ExportService struct {
	stripper *bluemonday.Policy
}

type ExportResult struct {
	Filename string
	PDF      []byte
}

func NewExportService() *ExportService {
	return &ExportService{stripper: bluemonday.StrictPolicy()}
}

// layoutCursor is the vertical position threaded through every drawing step.
// Steps take a cursor in and hand an updated one back; nothing draws below
// exportPageHeight-exportFooterBand, the band reserved for the footer stamp.
type layoutCursor struct {
	y float64
}

// ExportClientFile lays out the report for the selected projects, in the
// order the subset was provided, defaulting to the file's natural project
// order. Unknown project ids are skipped. Input is assumed well-formed; a
// composition failure propagates to the caller.
func (s *ExportService) ExportClientFile(client *models.ClientFile, projectIDs []string, now time.Time) (*ExportResult, error) {
	projects := selectProjects(client, projectIDs)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	cursor := s.drawHeader(pdf, translate, now)
	cursor = s.drawClientCard(pdf, translate, client, cursor)

	for i := range projects {
		cursor = s.drawProject(pdf, translate, &projects[i], cursor)
	}

	s.stampFooters(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to compose report: %w", err)
	}

	return &ExportResult{
		Filename: ExportFilename(client.Name, now),
		PDF:      buf.Bytes(),
	}, nil
}

// drawHeader paints the brand band and places the generation date once, at
// the top of page 1's flow. Subsequent pages repeat the band fill only.
func (s *ExportService) drawHeader(pdf *fpdf.Fpdf, translate func(string) string, now time.Time) layoutCursor {
	s.fillHeaderBand(pdf)

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(exportMargin, 8)
	pdf.CellFormat(exportContentWidth/2, 8, "CaseFile", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(exportContentWidth/2, 8, translate("Generated "+now.Format("2 Jan 2006")), "", 0, "R", false, 0, "")

	pdf.SetTextColor(30, 30, 30)
	return layoutCursor{y: exportHeaderBand + exportSectionGap}
}

func (s *ExportService) fillHeaderBand(pdf *fpdf.Fpdf) {
	pdf.SetFillColor(28, 54, 92)
	pdf.Rect(0, 0, exportPageWidth, exportHeaderBand, "F")
}

// drawClientCard renders the client summary card. Its height is computed
// from the literal line count before anything is drawn, so the page-break
// test runs up front and the card is never split across pages.
func (s *ExportService) drawClientCard(pdf *fpdf.Fpdf, translate func(string) string, client *models.ClientFile, cursor layoutCursor) layoutCursor {
	lines := clientCardLines(client)
	cardHeight := 2*exportCardPadding + exportLineHeight + float64(len(lines))*exportLineHeight

	cursor = s.ensureRoom(pdf, cursor, cardHeight+exportSectionGap)

	pdf.SetFillColor(243, 245, 248)
	pdf.Rect(exportMargin, cursor.y, exportContentWidth, cardHeight, "F")

	y := cursor.y + exportCardPadding
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetXY(exportMargin+exportCardPadding, y)
	pdf.CellFormat(exportContentWidth-2*exportCardPadding, exportLineHeight, translate(client.Name), "", 0, "L", false, 0, "")
	y += exportLineHeight

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range lines {
		pdf.SetXY(exportMargin+exportCardPadding, y)
		pdf.CellFormat(exportContentWidth-2*exportCardPadding, exportLineHeight, translate(line), "", 0, "L", false, 0, "")
		y += exportLineHeight
	}

	return layoutCursor{y: cursor.y + cardHeight + exportSectionGap}
}

// clientCardLines builds the card body: the type line is mandatory, the
// reference, phone and email lines appear only when present.
func clientCardLines(client *models.ClientFile) []string {
	lines := []string{"Type: " + client.Type}
	if client.Reference != "" {
		lines = append(lines, "Reference: "+client.Reference)
	}
	if client.Phone != "" {
		lines = append(lines, "Phone: "+client.Phone)
	}
	if client.Email != "" {
		lines = append(lines, "Email: "+client.Email)
	}
	return lines
}

func (s *ExportService) drawProject(pdf *fpdf.Fpdf, translate func(string) string, project *models.Project, cursor layoutCursor) layoutCursor {
	cursor = s.ensureRoom(pdf, cursor, exportMinProjectRoom)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(exportMargin, cursor.y)
	pdf.CellFormat(exportContentWidth, exportLineHeight, translate(project.Name), "", 0, "L", false, 0, "")
	cursor.y += exportLineHeight

	identifier := project.ProjectNumber
	if identifier == "" {
		identifier = project.ID
	}
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.SetXY(exportMargin, cursor.y)
	pdf.CellFormat(exportContentWidth, exportLineHeight, translate(identifier+" · "+project.Status), "", 0, "L", false, 0, "")
	pdf.SetTextColor(30, 30, 30)
	cursor.y += exportLineHeight

	if len(project.Fields) > 0 {
		// the table renderer reports the final vertical position it reached
		cursor.y = s.renderFieldTable(pdf, translate, cursor.y, project.Fields)
		cursor.y += 2
	}

	if len(project.Folders) > 0 {
		pdf.SetFont("Helvetica", "", 10)
		for _, folder := range project.Folders {
			cursor = s.ensureRoom(pdf, cursor, exportLineHeight)
			pdf.SetXY(exportMargin, cursor.y)
			pdf.CellFormat(exportContentWidth, exportLineHeight, translate("• "+folderSummaryLine(&folder)), "", 0, "L", false, 0, "")
			cursor.y += exportLineHeight
		}
	}

	if notes := s.NotesText(project); notes != "" {
		cursor = s.ensureRoom(pdf, cursor, 2*exportLineHeight)
		pdf.SetFont("Helvetica", "", 10)
		for _, line := range pdf.SplitText(translate(notes), exportContentWidth) {
			cursor = s.ensureRoom(pdf, cursor, exportLineHeight)
			pdf.SetXY(exportMargin, cursor.y)
			pdf.CellFormat(exportContentWidth, exportLineHeight, line, "", 0, "L", false, 0, "")
			cursor.y += exportLineHeight
		}
	}

	cursor.y += exportSectionGap
	return cursor
}

// renderFieldTable draws the two-column field/value table starting at y and
// returns the vertical position just below the last row, breaking to a new
// page between rows when the footer band would be reached.
func (s *ExportService) renderFieldTable(pdf *fpdf.Fpdf, translate func(string) string, y float64, fields []models.ProjectField) float64 {
	colWidth := exportContentWidth / 2

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(228, 232, 238)
	pdf.SetXY(exportMargin, y)
	pdf.CellFormat(colWidth, exportRowHeight, "Field", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colWidth, exportRowHeight, "Value", "1", 1, "L", true, 0, "")
	y += exportRowHeight

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetFillColor(248, 249, 251)
	for i, field := range fields {
		if y+exportRowHeight > exportPageHeight-exportFooterBand {
			s.newPage(pdf)
			y = exportHeaderBand + exportSectionGap
		}
		fill := i%2 == 1
		pdf.SetXY(exportMargin, y)
		pdf.CellFormat(colWidth, exportRowHeight, translate(field.Name), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidth, exportRowHeight, translate(field.Value), "1", 1, "L", fill, 0, "")
		y += exportRowHeight
	}

	return y
}

func folderSummaryLine(folder *models.Folder) string {
	count := len(folder.Files)
	suffix := "files"
	if count == 1 {
		suffix = "file"
	}
	return fmt.Sprintf("%s — %d %s", folder.Name, count, suffix)
}

// NotesText prefers the structured note entries: tags stripped, blank
// entries dropped, the rest concatenated with single spaces. When no entry
// survives it falls back to the legacy free-text notes field.
func (s *ExportService) NotesText(project *models.Project) string {
	var parts []string
	for _, entry := range project.NoteEntries {
		text := html.UnescapeString(s.stripper.Sanitize(entry.Content))
		text = strings.Join(strings.Fields(text), " ")
		if text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	return strings.TrimSpace(project.Notes)
}

// ensureRoom starts a new page when fewer than needed millimetres remain
// above the reserved footer band.
func (s *ExportService) ensureRoom(pdf *fpdf.Fpdf, cursor layoutCursor, needed float64) layoutCursor {
	if cursor.y+needed <= exportPageHeight-exportFooterBand {
		return cursor
	}
	s.newPage(pdf)
	return layoutCursor{y: exportHeaderBand + exportSectionGap}
}

func (s *ExportService) newPage(pdf *fpdf.Fpdf) {
	pdf.AddPage()
	s.fillHeaderBand(pdf)
	pdf.SetTextColor(30, 30, 30)
}

// stampFooters revisits every physical page after composition and stamps
// the divider, attribution and page counter inside the reserved band.
func (s *ExportService) stampFooters(pdf *fpdf.Fpdf) {
	total := pdf.PageCount()
	for page := 1; page <= total; page++ {
		pdf.SetPage(page)

		lineY := exportPageHeight - exportFooterBand + 4
		pdf.SetDrawColor(205, 205, 205)
		pdf.Line(exportMargin, lineY, exportPageWidth-exportMargin, lineY)

		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(130, 130, 130)
		pdf.SetXY(exportMargin, lineY+2)
		pdf.CellFormat(exportContentWidth/2, 5, exportAttribution, "", 0, "L", false, 0, "")
		pdf.CellFormat(exportContentWidth/2, 5, fmt.Sprintf("Page %d of %d", page, total), "", 0, "R", false, 0, "")
	}
	pdf.SetTextColor(30, 30, 30)
}

// selectProjects returns the projects to lay out, honouring the order of the
// requested subset and skipping ids that match nothing.
func selectProjects(client *models.ClientFile, projectIDs []string) []models.Project {
	if len(projectIDs) == 0 {
		return client.Projects
	}

	var selected []models.Project
	for _, id := range projectIDs {
		if project := client.ProjectByID(id); project != nil {
			selected = append(selected, *project)
		}
	}
	return selected
}

// ExportFilename derives the download name from the client's display name:
// everything outside [A-Za-z0-9_-] stripped, capped at 50 characters, plus
// the generation date.
func ExportFilename(displayName string, now time.Time) string {
	name := exportFilenamePattern.ReplaceAllString(displayName, "")
	if len(name) > 50 {
		name = name[:50]
	}
	if name == "" {
		name = "client-file"
	}
	return fmt.Sprintf("%s_%s.pdf", name, now.Format("2006-01-02"))
}
