package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/carelog-backend/internal/logger"
	"github.com/yungbote/carelog-backend/internal/normalization"
	"github.com/yungbote/carelog-backend/internal/repos"
	"github.com/yungbote/carelog-backend/internal/types"
)

// NoteFilter is the user's selection criteria: an optional inclusive day
// range and an optional tag set (OR semantics across tags).
type NoteFilter struct {
	Start *time.Time
	End   *time.Time
	Tags  []string
}

func (f NoteFilter) Active() bool {
	return f.Start != nil || f.End != nil || len(f.Tags) > 0
}

type NoteInput struct {
	Date          time.Time
	SleepTime     *string
	WakeTime      *string
	Mood          *int
	Detail        string
	Tags          []string
	HourlyEntries []HourlyEntryInput
}

type HourlyEntryInput struct {
	Time        string
	Description string
}

type NoteService interface {
	ListForPatient(ctx context.Context, userID, patientID uuid.UUID, filter NoteFilter) ([]*types.Note, error)
	Create(ctx context.Context, userID, patientID uuid.UUID, input NoteInput) (*types.Note, error)
	Update(ctx context.Context, userID, patientID, noteID uuid.UUID, input NoteInput) (*types.Note, error)
	Delete(ctx context.Context, userID, patientID, noteID uuid.UUID) error
}

type noteService struct {
	db          *gorm.DB
	log         *logger.Logger
	patientRepo repos.PatientRepo
	noteRepo    repos.NoteRepo
}

func NewNoteService(db *gorm.DB, log *logger.Logger, patientRepo repos.PatientRepo, noteRepo repos.NoteRepo) NoteService {
	return &noteService{
		db:          db,
		log:         log.With("service", "NoteService"),
		patientRepo: patientRepo,
		noteRepo:    noteRepo,
	}
}

// SelectNotes filters an already-fetched note set against the criteria and
// returns them ordered date-descending. Always returns a non-nil slice.
func SelectNotes(notes []*types.Note, filter NoteFilter) []*types.Note {
	selected := make([]*types.Note, 0, len(notes))
	for _, note := range notes {
		if filter.Start != nil && dayNumber(note.Date) < dayNumber(*filter.Start) {
			continue
		}
		if filter.End != nil && dayNumber(note.Date) > dayNumber(*filter.End) {
			continue
		}
		if len(filter.Tags) > 0 && !tagsIntersect(note.TagList(), filter.Tags) {
			continue
		}
		selected = append(selected, note)
	}
	sortNotesByDateDesc(selected)
	return selected
}

// dayNumber compares dates at day granularity; time-of-day never matters.
func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

func tagsIntersect(noteTags, wanted []string) bool {
	for _, tag := range noteTags {
		for _, w := range wanted {
			if tag == w {
				return true
			}
		}
	}
	return false
}

func sortNotesByDateDesc(notes []*types.Note) {
	for i := 1; i < len(notes); i++ {
		for j := i; j > 0 && dayNumber(notes[j].Date) > dayNumber(notes[j-1].Date); j-- {
			notes[j], notes[j-1] = notes[j-1], notes[j]
		}
	}
}

func (ns *noteService) ListForPatient(ctx context.Context, userID, patientID uuid.UUID, filter NoteFilter) ([]*types.Note, error) {
	if _, err := ns.patientRepo.GetOwned(ctx, nil, userID, patientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}
	notes, err := ns.noteRepo.GetByPatientID(ctx, nil, patientID, filter.Start, filter.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}
	return SelectNotes(notes, filter), nil
}

func (ns *noteService) Create(ctx context.Context, userID, patientID uuid.UUID, input NoteInput) (*types.Note, error) {
	if _, err := ns.patientRepo.GetOwned(ctx, nil, userID, patientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}

	note := &types.Note{
		ID:        uuid.New(),
		PatientID: patientID,
	}
	applyNoteInput(note, input)

	if err := ns.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ns.noteRepo.Create(ctx, tx, []*types.Note{note}); err != nil {
			return err
		}
		return ns.noteRepo.ReplaceHourlyEntries(ctx, tx, note.ID, hourlyEntriesFromInput(input.HourlyEntries))
	}); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return ns.noteRepo.GetByID(ctx, nil, note.ID)
}

func (ns *noteService) Update(ctx context.Context, userID, patientID, noteID uuid.UUID, input NoteInput) (*types.Note, error) {
	note, err := ns.ownedNote(ctx, userID, patientID, noteID)
	if err != nil {
		return nil, err
	}
	applyNoteInput(note, input)

	if err := ns.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ns.noteRepo.Update(ctx, tx, note); err != nil {
			return err
		}
		return ns.noteRepo.ReplaceHourlyEntries(ctx, tx, note.ID, hourlyEntriesFromInput(input.HourlyEntries))
	}); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return ns.noteRepo.GetByID(ctx, nil, note.ID)
}

func (ns *noteService) Delete(ctx context.Context, userID, patientID, noteID uuid.UUID) error {
	if _, err := ns.ownedNote(ctx, userID, patientID, noteID); err != nil {
		return err
	}
	if err := ns.noteRepo.Delete(ctx, nil, noteID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

func (ns *noteService) ownedNote(ctx context.Context, userID, patientID, noteID uuid.UUID) (*types.Note, error) {
	if _, err := ns.patientRepo.GetOwned(ctx, nil, userID, patientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}
	note, err := ns.noteRepo.GetByID(ctx, nil, noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to load note: %w", err)
	}
	if note.PatientID != patientID {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

func applyNoteInput(note *types.Note, input NoteInput) {
	note.Date = input.Date
	note.SleepTime = normalization.ParseInputStringPtr(input.SleepTime)
	note.WakeTime = normalization.ParseInputStringPtr(input.WakeTime)
	note.Mood = input.Mood
	note.Detail = normalization.SanitizeText(input.Detail)

	tags := make([]string, 0, len(input.Tags))
	for _, tag := range input.Tags {
		if clean := normalization.SanitizeText(tag); clean != "" {
			tags = append(tags, clean)
		}
	}
	_ = note.SetTags(tags)
}

func hourlyEntriesFromInput(inputs []HourlyEntryInput) []types.HourlyEntry {
	entries := make([]types.HourlyEntry, 0, len(inputs))
	for _, in := range inputs {
		entries = append(entries, types.HourlyEntry{
			Time:        normalization.SanitizeText(in.Time),
			Description: normalization.SanitizeText(in.Description),
		})
	}
	return entries
}
