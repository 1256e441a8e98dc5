package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/carelog-backend/internal/logger"
	"github.com/yungbote/carelog-backend/internal/normalization"
	"github.com/yungbote/carelog-backend/internal/pdf"
	"github.com/yungbote/carelog-backend/internal/repos"
	"github.com/yungbote/carelog-backend/internal/types"
)

// ExportResult carries a finished PDF plus the download filename.
type ExportResult struct {
	PDF      []byte
	FileName string
}

type ExportService interface {
	// ExportSummary renders an already-generated markdown summary to PDF.
	ExportSummary(ctx context.Context, userID, patientID uuid.UUID, summaryText string) (*ExportResult, error)
	// ExportRecord renders the patient's raw notes and medications to PDF
	// without involving the AI pipeline.
	ExportRecord(ctx context.Context, userID, patientID uuid.UUID, filter NoteFilter) (*ExportResult, error)
}

type exportService struct {
	db             *gorm.DB
	log            *logger.Logger
	patientRepo    repos.PatientRepo
	noteRepo       repos.NoteRepo
	medicationRepo repos.MedicationRepo
	style          pdf.Style
}

func NewExportService(
	db *gorm.DB,
	log *logger.Logger,
	patientRepo repos.PatientRepo,
	noteRepo repos.NoteRepo,
	medicationRepo repos.MedicationRepo,
	style pdf.Style,
) ExportService {
	return &exportService{
		db:             db,
		log:            log.With("service", "ExportService"),
		patientRepo:    patientRepo,
		noteRepo:       noteRepo,
		medicationRepo: medicationRepo,
		style:          style,
	}
}

func (es *exportService) ExportSummary(ctx context.Context, userID, patientID uuid.UUID, summaryText string) (*ExportResult, error) {
	patient, err := es.ownedPatient(ctx, userID, patientID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(summaryText) == "" {
		return nil, fmt.Errorf("summary text is empty")
	}

	raw, err := es.render(ctx, summaryText)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		PDF:      raw,
		FileName: SummaryFileName(patient.FullName(), time.Now()),
	}, nil
}

func (es *exportService) ExportRecord(ctx context.Context, userID, patientID uuid.UUID, filter NoteFilter) (*ExportResult, error) {
	patient, err := es.ownedPatient(ctx, userID, patientID)
	if err != nil {
		return nil, err
	}
	notes, err := es.noteRepo.GetByPatientID(ctx, nil, patientID, filter.Start, filter.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}
	selected := SelectNotes(notes, filter)
	meds, err := es.medicationRepo.GetByPatientID(ctx, nil, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load medications: %w", err)
	}

	markdown := buildRecordMarkdown(patient, selected, meds, filter)
	raw, err := es.render(ctx, markdown)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		PDF:      raw,
		FileName: RecordFileName(patient.FullName(), filter.Start, filter.End, time.Now()),
	}, nil
}

func (es *exportService) render(ctx context.Context, markdown string) ([]byte, error) {
	builder := pdf.NewFpdfBuilder(es.style)
	engine := pdf.NewEngine(builder, es.style)
	if err := engine.Render(ctx, markdown); err != nil {
		return nil, err
	}
	raw, err := builder.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to produce PDF: %w", err)
	}
	return raw, nil
}

func (es *exportService) ownedPatient(ctx context.Context, userID, patientID uuid.UUID) (*types.Patient, error) {
	patient, err := es.patientRepo.GetOwned(ctx, nil, userID, patientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}
	return patient, nil
}

// SummaryFileName is summary_{name}_{YYYY-MM-DD}.pdf with the patient name
// sanitized for filesystem use.
func SummaryFileName(patientName string, generated time.Time) string {
	name := normalization.SanitizeFileName(patientName)
	if name == "" {
		name = "patient"
	}
	return fmt.Sprintf("summary_%s_%s.pdf", name, generated.Format("2006-01-02"))
}

// RecordFileName is {name}_{startDD-MM-YYYY}_to_{endDD-MM-YYYY}_generated_{DD-MM-YYYY}.pdf;
// the period segment is present only when a date filter was applied.
func RecordFileName(patientName string, start, end *time.Time, generated time.Time) string {
	name := normalization.SanitizeFileName(patientName)
	if name == "" {
		name = "patient"
	}
	var sb strings.Builder
	sb.WriteString(name)
	if start != nil && end != nil {
		fmt.Fprintf(&sb, "_%s_to_%s", start.Format("02-01-2006"), end.Format("02-01-2006"))
	}
	fmt.Fprintf(&sb, "_generated_%s.pdf", generated.Format("02-01-2006"))
	return sb.String()
}

// buildRecordMarkdown produces the raw-record document in the same markdown
// dialect the summary instruction mandates, so one layout path serves both.
func buildRecordMarkdown(patient *types.Patient, notes []*types.Note, meds []*types.Medication, filter NoteFilter) string {
	var sb strings.Builder

	sb.WriteString("## Patient Record\n\n")
	fmt.Fprintf(&sb, "**Patient:** %s\n", normalization.SanitizeText(patient.FullName()))
	if patient.Diagnosis != "" {
		fmt.Fprintf(&sb, "**Diagnosis:** %s\n", normalization.SanitizeText(patient.Diagnosis))
	}
	if filter.Start != nil || filter.End != nil {
		from := "beginning of record"
		to := "present"
		if filter.Start != nil {
			from = filter.Start.Format("2006-01-02")
		}
		if filter.End != nil {
			to = filter.End.Format("2006-01-02")
		}
		fmt.Fprintf(&sb, "**Period:** %s to %s\n", from, to)
	}
	if len(filter.Tags) > 0 {
		fmt.Fprintf(&sb, "**Tags:** %s\n", strings.Join(filter.Tags, ", "))
	}

	if len(meds) > 0 {
		sb.WriteString("\n### Medications\n\n")
		sb.WriteString("| Name | Dosage | Schedule | Status |\n")
		sb.WriteString("| :--- | :--- | :--- | :--- |\n")
		for _, med := range meds {
			status := "Active"
			if !med.Active {
				status = "Inactive"
			}
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
				tableCell(med.Name), tableCell(med.Dosage), tableCell(med.Schedule), status)
		}
	}

	sb.WriteString("\n### Daily Notes\n")
	if len(notes) == 0 {
		sb.WriteString("\nNo notes recorded for the selected period.\n")
	}
	for _, note := range notes {
		sb.WriteString("\n---\n\n")
		fmt.Fprintf(&sb, "#### %s\n\n", note.Date.Format("2006-01-02"))
		if note.Mood != nil {
			if label := MoodLabel(*note.Mood); label != "" {
				fmt.Fprintf(&sb, "* **Mood:** %s\n", label)
			}
		}
		if note.SleepTime != nil && *note.SleepTime != "" {
			fmt.Fprintf(&sb, "* **Sleep time:** %s\n", normalization.SanitizeText(*note.SleepTime))
		}
		if note.WakeTime != nil && *note.WakeTime != "" {
			fmt.Fprintf(&sb, "* **Wake time:** %s\n", normalization.SanitizeText(*note.WakeTime))
		}
		if tags := note.TagList(); len(tags) > 0 {
			fmt.Fprintf(&sb, "* **Tags:** %s\n", strings.Join(tags, ", "))
		}
		if detail := normalization.SanitizeText(note.Detail); detail != "" {
			fmt.Fprintf(&sb, "\n%s\n", detail)
		}
		if len(note.HourlyEntries) > 0 {
			sb.WriteString("\n| Time | Entry |\n")
			sb.WriteString("| :--- | :--- |\n")
			for _, entry := range note.HourlyEntries {
				fmt.Fprintf(&sb, "| %s | %s |\n",
					tableCell(entry.Time), tableCell(entry.Description))
			}
		}
	}
	return sb.String()
}

// tableCell keeps user text from breaking the table row syntax.
func tableCell(s string) string {
	s = normalization.SanitizeText(s)
	s = strings.ReplaceAll(s, "|", "/")
	s = strings.ReplaceAll(s, "\n", " ")
	if s == "" {
		return " "
	}
	return s
}
