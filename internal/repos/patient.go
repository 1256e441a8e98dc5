package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/carelog-backend/internal/logger"
	"github.com/yungbote/carelog-backend/internal/types"
)

type PatientRepo interface {
	Create(ctx context.Context, tx *gorm.DB, patients []*types.Patient) ([]*types.Patient, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Patient, error)
	GetOwned(ctx context.Context, tx *gorm.DB, userID, patientID uuid.UUID) (*types.Patient, error)
	Update(ctx context.Context, tx *gorm.DB, patient *types.Patient) error
	Delete(ctx context.Context, tx *gorm.DB, userID, patientID uuid.UUID) error
}

type patientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPatientRepo(db *gorm.DB, baseLog *logger.Logger) PatientRepo {
	repoLog := baseLog.With("repo", "PatientRepo")
	return &patientRepo{db: db, log: repoLog}
}

func (pr *patientRepo) Create(ctx context.Context, tx *gorm.DB, patients []*types.Patient) ([]*types.Patient, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(patients) == 0 {
		return []*types.Patient{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

func (pr *patientRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Patient, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Patient
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("first_name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetOwned returns nil, gorm.ErrRecordNotFound for both a missing patient and
// a patient owned by someone else; callers must not distinguish the two.
func (pr *patientRepo) GetOwned(ctx context.Context, tx *gorm.DB, userID, patientID uuid.UUID) (*types.Patient, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.Patient
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", patientID, userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *patientRepo) Update(ctx context.Context, tx *gorm.DB, patient *types.Patient) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if patient == nil || patient.ID == uuid.Nil {
		return errors.New("patient with id required")
	}
	return transaction.WithContext(ctx).Save(patient).Error
}

func (pr *patientRepo) Delete(ctx context.Context, tx *gorm.DB, userID, patientID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	res := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", patientID, userID).
		Delete(&types.Patient{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
