package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/carelog-backend/internal/logger"
	"github.com/yungbote/carelog-backend/internal/types"
)

type fakePatientRepo struct {
	patient *types.Patient
}

func (f *fakePatientRepo) Create(ctx context.Context, tx *gorm.DB, patients []*types.Patient) ([]*types.Patient, error) {
	return patients, nil
}

func (f *fakePatientRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Patient, error) {
	if f.patient == nil {
		return []*types.Patient{}, nil
	}
	return []*types.Patient{f.patient}, nil
}

func (f *fakePatientRepo) GetOwned(ctx context.Context, tx *gorm.DB, userID, patientID uuid.UUID) (*types.Patient, error) {
	if f.patient == nil || f.patient.ID != patientID || f.patient.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.patient, nil
}

func (f *fakePatientRepo) Update(ctx context.Context, tx *gorm.DB, patient *types.Patient) error {
	return nil
}

func (f *fakePatientRepo) Delete(ctx context.Context, tx *gorm.DB, userID, patientID uuid.UUID) error {
	return nil
}

type fakeNoteRepo struct {
	notes []*types.Note
}

func (f *fakeNoteRepo) Create(ctx context.Context, tx *gorm.DB, notes []*types.Note) ([]*types.Note, error) {
	return notes, nil
}

func (f *fakeNoteRepo) GetByID(ctx context.Context, tx *gorm.DB, noteID uuid.UUID) (*types.Note, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNoteRepo) GetByPatientID(ctx context.Context, tx *gorm.DB, patientID uuid.UUID, start, end *time.Time) ([]*types.Note, error) {
	return f.notes, nil
}

func (f *fakeNoteRepo) Update(ctx context.Context, tx *gorm.DB, note *types.Note) error { return nil }

func (f *fakeNoteRepo) Delete(ctx context.Context, tx *gorm.DB, noteID uuid.UUID) error { return nil }

func (f *fakeNoteRepo) ReplaceHourlyEntries(ctx context.Context, tx *gorm.DB, noteID uuid.UUID, entries []types.HourlyEntry) error {
	return nil
}

type fakeAIClient struct {
	response string
	err      error
	lastUser string
}

func (f *fakeAIClient) GenerateText(ctx context.Context, system, user string) (string, error) {
	f.lastUser = user
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func testSummaryService(t *testing.T, patient *types.Patient, notes []*types.Note, client AIClient) SummaryService {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return NewSummaryService(nil, log, &fakePatientRepo{patient: patient}, &fakeNoteRepo{notes: notes}, client)
}

func TestSummaryGenerate_PatientNotOwned(t *testing.T) {
	svc := testSummaryService(t, nil, nil, &fakeAIClient{response: "ok"})
	_, err := svc.Generate(context.Background(), uuid.New(), uuid.New(), NoteFilter{})
	if !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestSummaryGenerate_NoNotesAtAll(t *testing.T) {
	userID := uuid.New()
	patient := &types.Patient{ID: uuid.New(), UserID: userID, FirstName: "Ana"}
	svc := testSummaryService(t, patient, nil, &fakeAIClient{response: "ok"})

	_, err := svc.Generate(context.Background(), userID, patient.ID, NoteFilter{})
	if !errors.Is(err, ErrNoNotes) {
		t.Fatalf("expected ErrNoNotes, got %v", err)
	}
}

func TestSummaryGenerate_FilterMatchesNothing(t *testing.T) {
	userID := uuid.New()
	patient := &types.Patient{ID: uuid.New(), UserID: userID, FirstName: "Ana"}
	notes := []*types.Note{noteOn(t, day(2026, 3, 1), "Sueño")}
	svc := testSummaryService(t, patient, notes, &fakeAIClient{response: "ok"})

	_, err := svc.Generate(context.Background(), userID, patient.ID, NoteFilter{Tags: []string{"Crisis"}})
	if !errors.Is(err, ErrNoMatchingNotes) {
		t.Fatalf("expected ErrNoMatchingNotes, got %v", err)
	}
}

func TestSummaryGenerate_InvalidRange(t *testing.T) {
	userID := uuid.New()
	patient := &types.Patient{ID: uuid.New(), UserID: userID, FirstName: "Ana"}
	svc := testSummaryService(t, patient, nil, &fakeAIClient{response: "ok"})

	start := day(2026, 3, 10)
	end := day(2026, 3, 1)
	_, err := svc.Generate(context.Background(), userID, patient.ID, NoteFilter{Start: &start, End: &end})
	if !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestSummaryGenerate_NilClientNotConfigured(t *testing.T) {
	userID := uuid.New()
	patient := &types.Patient{ID: uuid.New(), UserID: userID, FirstName: "Ana"}
	notes := []*types.Note{noteOn(t, day(2026, 3, 1))}
	svc := testSummaryService(t, patient, notes, nil)

	_, err := svc.Generate(context.Background(), userID, patient.ID, NoteFilter{})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSummaryGenerate_UpstreamFailureWrapped(t *testing.T) {
	userID := uuid.New()
	patient := &types.Patient{ID: uuid.New(), UserID: userID, FirstName: "Ana"}
	notes := []*types.Note{noteOn(t, day(2026, 3, 1))}
	svc := testSummaryService(t, patient, notes, &fakeAIClient{err: errors.New("boom")})

	_, err := svc.Generate(context.Background(), userID, patient.ID, NoteFilter{})
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestSummaryGenerate_Success(t *testing.T) {
	userID := uuid.New()
	patient := &types.Patient{ID: uuid.New(), UserID: userID, FirstName: "Ana", LastName: "Gómez"}
	notes := []*types.Note{
		noteOn(t, day(2026, 3, 2)),
		noteOn(t, day(2026, 3, 1)),
	}
	client := &fakeAIClient{response: "## Behavioral Summary\n\ntext"}
	svc := testSummaryService(t, patient, notes, client)

	result, err := svc.Generate(context.Background(), userID, patient.ID, NoteFilter{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.SummaryText != client.response {
		t.Fatalf("unexpected summary text %q", result.SummaryText)
	}
	if result.PatientName != "Ana Gómez" {
		t.Fatalf("unexpected patient name %q", result.PatientName)
	}
	if result.NoteCount != 2 {
		t.Fatalf("expected note count 2, got %d", result.NoteCount)
	}
	if !strings.Contains(client.lastUser, "2026-03-02") {
		t.Fatalf("prompt missing note dates:\n%s", client.lastUser)
	}
}
