package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/carelog-backend/internal/logger"
	"github.com/yungbote/carelog-backend/internal/repos"
	"github.com/yungbote/carelog-backend/internal/types"
)

// SummaryResult is the outcome of one generation run, including enough
// metadata for the frontend to label the summary it displays.
type SummaryResult struct {
	SummaryText string
	PatientName string
	NoteCount   int
	Start       *time.Time
	End         *time.Time
	Tags        []string
}

type SummaryService interface {
	Generate(ctx context.Context, userID, patientID uuid.UUID, filter NoteFilter) (*SummaryResult, error)
}

type summaryService struct {
	db          *gorm.DB
	log         *logger.Logger
	patientRepo repos.PatientRepo
	noteRepo    repos.NoteRepo
	aiClient    AIClient
}

// NewSummaryService accepts a nil aiClient: the service still constructs and
// every Generate call fails with ErrNotConfigured until a key is provided.
func NewSummaryService(db *gorm.DB, log *logger.Logger, patientRepo repos.PatientRepo, noteRepo repos.NoteRepo, aiClient AIClient) SummaryService {
	return &summaryService{
		db:          db,
		log:         log.With("service", "SummaryService"),
		patientRepo: patientRepo,
		noteRepo:    noteRepo,
		aiClient:    aiClient,
	}
}

func (ss *summaryService) Generate(ctx context.Context, userID, patientID uuid.UUID, filter NoteFilter) (*SummaryResult, error) {
	if filter.Start != nil && filter.End != nil && filter.End.Before(*filter.Start) {
		return nil, ErrInvalidFilter
	}

	var patient *types.Patient
	var notes []*types.Note

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := ss.patientRepo.GetOwned(gctx, nil, userID, patientID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPatientNotFound
			}
			return fmt.Errorf("failed to load patient: %w", err)
		}
		patient = p
		return nil
	})
	g.Go(func() error {
		n, err := ss.noteRepo.GetByPatientID(gctx, nil, patientID, filter.Start, filter.End)
		if err != nil {
			return fmt.Errorf("failed to load notes: %w", err)
		}
		notes = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(notes) == 0 && !filter.Active() {
		return nil, ErrNoNotes
	}
	selected := SelectNotes(notes, filter)
	if len(selected) == 0 {
		if filter.Active() {
			return nil, ErrNoMatchingNotes
		}
		return nil, ErrNoNotes
	}

	if ss.aiClient == nil {
		return nil, ErrNotConfigured
	}

	system, user, err := BuildSummaryPrompt(patient, selected, filter.Start, filter.End)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	ss.log.Info("Generating summary",
		"patient_id", patientID.String(),
		"note_count", len(selected),
	)
	text, err := ss.aiClient.GenerateText(ctx, system, user)
	if err != nil {
		ss.log.Error("Summary generation failed", "patient_id", patientID.String(), "error", err)
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return &SummaryResult{
		SummaryText: text,
		PatientName: patient.FullName(),
		NoteCount:   len(selected),
		Start:       filter.Start,
		End:         filter.End,
		Tags:        filter.Tags,
	}, nil
}
