package services

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/carelog-backend/internal/types"
)

func TestSummaryFileName(t *testing.T) {
	generated := time.Date(2026, 5, 14, 10, 0, 0, 0, time.UTC)
	got := SummaryFileName("María José", generated)
	want := "summary_María_José_2026-05-14.pdf"
	if got != want {
		t.Fatalf("SummaryFileName = %q, want %q", got, want)
	}
}

func TestSummaryFileName_EmptyNameFallsBack(t *testing.T) {
	generated := time.Date(2026, 5, 14, 10, 0, 0, 0, time.UTC)
	got := SummaryFileName("<<<>>>", generated)
	if !strings.HasPrefix(got, "summary_patient_") {
		t.Fatalf("expected fallback name, got %q", got)
	}
}

func TestRecordFileName_WithAndWithoutPeriod(t *testing.T) {
	generated := time.Date(2026, 5, 14, 10, 0, 0, 0, time.UTC)
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	got := RecordFileName("Ana Gómez", &start, &end, generated)
	want := "Ana_Gómez_01-05-2026_to_10-05-2026_generated_14-05-2026.pdf"
	if got != want {
		t.Fatalf("RecordFileName = %q, want %q", got, want)
	}

	got = RecordFileName("Ana Gómez", nil, nil, generated)
	want = "Ana_Gómez_generated_14-05-2026.pdf"
	if got != want {
		t.Fatalf("RecordFileName without period = %q, want %q", got, want)
	}
}

func TestBuildRecordMarkdown_Structure(t *testing.T) {
	mood := 4
	patient := &types.Patient{ID: uuid.New(), FirstName: "Ana", Diagnosis: "ASD"}
	note := &types.Note{
		ID:     uuid.New(),
		Date:   day(2026, 5, 2),
		Mood:   &mood,
		Detail: "Good day overall",
	}
	note.HourlyEntries = []types.HourlyEntry{{Time: "10:00", Description: "Park | walk"}}
	meds := []*types.Medication{
		{ID: uuid.New(), Name: "Risperidone", Dosage: "0.5mg", Schedule: "morning", Active: true},
	}

	md := buildRecordMarkdown(patient, []*types.Note{note}, meds, NoteFilter{})

	if !strings.Contains(md, "## Patient Record") {
		t.Fatalf("missing document heading:\n%s", md)
	}
	if !strings.Contains(md, "#### 2026-05-02") {
		t.Fatalf("missing day heading:\n%s", md)
	}
	if !strings.Contains(md, "* **Mood:** Good") {
		t.Fatalf("missing mood bullet:\n%s", md)
	}
	if !strings.Contains(md, "| Risperidone | 0.5mg | morning | Active |") {
		t.Fatalf("missing medication row:\n%s", md)
	}
	// A pipe inside a cell must not create an extra column.
	if !strings.Contains(md, "| 10:00 | Park / walk |") {
		t.Fatalf("cell pipe not escaped:\n%s", md)
	}
}

func TestBuildRecordMarkdown_NoNotes(t *testing.T) {
	patient := &types.Patient{ID: uuid.New(), FirstName: "Ana"}
	md := buildRecordMarkdown(patient, nil, nil, NoteFilter{})
	if !strings.Contains(md, "No notes recorded") {
		t.Fatalf("expected empty-state line:\n%s", md)
	}
}
