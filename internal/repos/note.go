package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/carelog-backend/internal/logger"
	"github.com/yungbote/carelog-backend/internal/types"
)

type NoteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, notes []*types.Note) ([]*types.Note, error)
	GetByID(ctx context.Context, tx *gorm.DB, noteID uuid.UUID) (*types.Note, error)
	// GetByPatientID returns the patient's notes ordered by date descending,
	// optionally restricted to an inclusive [start, end] day range, with
	// hourly entries preloaded in position order.
	GetByPatientID(ctx context.Context, tx *gorm.DB, patientID uuid.UUID, start, end *time.Time) ([]*types.Note, error)
	Update(ctx context.Context, tx *gorm.DB, note *types.Note) error
	Delete(ctx context.Context, tx *gorm.DB, noteID uuid.UUID) error
	ReplaceHourlyEntries(ctx context.Context, tx *gorm.DB, noteID uuid.UUID, entries []types.HourlyEntry) error
}

type noteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNoteRepo(db *gorm.DB, baseLog *logger.Logger) NoteRepo {
	repoLog := baseLog.With("repo", "NoteRepo")
	return &noteRepo{db: db, log: repoLog}
}

func (nr *noteRepo) Create(ctx context.Context, tx *gorm.DB, notes []*types.Note) ([]*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	if len(notes) == 0 {
		return []*types.Note{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (nr *noteRepo) GetByID(ctx context.Context, tx *gorm.DB, noteID uuid.UUID) (*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	var result types.Note
	if err := transaction.WithContext(ctx).
		Preload("HourlyEntries", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", noteID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (nr *noteRepo) GetByPatientID(ctx context.Context, tx *gorm.DB, patientID uuid.UUID, start, end *time.Time) ([]*types.Note, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	query := transaction.WithContext(ctx).
		Preload("HourlyEntries", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("patient_id = ?", patientID)
	if start != nil {
		query = query.Where("date >= ?", startOfDay(*start))
	}
	if end != nil {
		query = query.Where("date < ?", startOfDay(*end).AddDate(0, 0, 1))
	}
	var results []*types.Note
	if err := query.Order("date DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (nr *noteRepo) Update(ctx context.Context, tx *gorm.DB, note *types.Note) error {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	if note == nil || note.ID == uuid.Nil {
		return errors.New("note with id required")
	}
	return transaction.WithContext(ctx).Omit("HourlyEntries").Save(note).Error
}

func (nr *noteRepo) Delete(ctx context.Context, tx *gorm.DB, noteID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	res := transaction.WithContext(ctx).Where("id = ?", noteID).Delete(&types.Note{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (nr *noteRepo) ReplaceHourlyEntries(ctx context.Context, tx *gorm.DB, noteID uuid.UUID, entries []types.HourlyEntry) error {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	if err := transaction.WithContext(ctx).
		Unscoped().
		Where("note_id = ?", noteID).
		Delete(&types.HourlyEntry{}).Error; err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	for i := range entries {
		entries[i].ID = uuid.New()
		entries[i].NoteID = noteID
		entries[i].Position = i
	}
	return transaction.WithContext(ctx).Create(&entries).Error
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
