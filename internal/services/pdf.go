package services

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/yasharthbajpai/speech-to-text/internal/domain"
)

type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

// WriteReport renders a meeting report for the given transcription result
// and writes the PDF to w. The service keeps no documents, so the report is
// produced inline from whatever the client sends back.
func (s *PDFService) WriteReport(w io.Writer, transcript string, result domain.NormalizedResult) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Meeting Report", false)
	pdf.SetAuthor("Voice-to-Action", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Meeting Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	generatedAt := result.MeetingSummary.GeneratedAt
	if generatedAt == "" {
		generatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", generatedAt))
	pdf.Ln(12)

	if result.CalendarEvent != nil {
		event := result.CalendarEvent
		lines := []string{
			fmt.Sprintf("Title: %s", event.Title),
			fmt.Sprintf("Date: %s", event.Date),
		}
		if event.Time != "" {
			lines = append(lines, fmt.Sprintf("Time: %s", event.Time))
		}
		if len(event.Participants) > 0 {
			lines = append(lines, fmt.Sprintf("Participants: %s", strings.Join(event.Participants, ", ")))
		}
		s.writeSection(pdf, "Meeting Details", lines, false)
		pdf.Ln(8)
	}

	if transcript != "" {
		s.writeSection(pdf, "Transcript", []string{transcript}, false)
		pdf.Ln(8)
	}

	if len(result.TodoItems) > 0 {
		items := make([]string, 0, len(result.TodoItems))
		for _, item := range result.TodoItems {
			items = append(items, fmt.Sprintf("%s (%s, %s)", item.Task, item.Assignee, item.Deadline))
		}
		s.writeSection(pdf, "Action Items", items, true)
		pdf.Ln(8)
	}

	s.writeSection(pdf, "Key Points", result.MeetingSummary.KeyPoints, true)
	pdf.Ln(8)
	s.writeSection(pdf, "Decisions", result.MeetingSummary.Decisions, true)
	pdf.Ln(8)
	s.writeSection(pdf, "Next Steps", result.MeetingSummary.NextSteps, true)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}

	return nil
}

func (s *PDFService) writeSection(pdf *gofpdf.Fpdf, title string, lines []string, bullet bool) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, title)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)

	wrote := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		text := line
		if bullet {
			text = fmt.Sprintf("- %s", line)
		}
		pdf.MultiCell(0, 6, text, "", "L", false)
		wrote = true
	}

	if !wrote {
		pdf.MultiCell(0, 6, "(none)", "", "L", false)
	}
}
