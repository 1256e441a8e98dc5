package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/carelog-backend/internal/logger"
	"github.com/yungbote/carelog-backend/internal/types"
)

type MedicationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, medications []*types.Medication) ([]*types.Medication, error)
	GetByID(ctx context.Context, tx *gorm.DB, medicationID uuid.UUID) (*types.Medication, error)
	GetByPatientID(ctx context.Context, tx *gorm.DB, patientID uuid.UUID) ([]*types.Medication, error)
	Update(ctx context.Context, tx *gorm.DB, medication *types.Medication) error
	Delete(ctx context.Context, tx *gorm.DB, medicationID uuid.UUID) error
}

type medicationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMedicationRepo(db *gorm.DB, baseLog *logger.Logger) MedicationRepo {
	repoLog := baseLog.With("repo", "MedicationRepo")
	return &medicationRepo{db: db, log: repoLog}
}

func (mr *medicationRepo) Create(ctx context.Context, tx *gorm.DB, medications []*types.Medication) ([]*types.Medication, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(medications) == 0 {
		return []*types.Medication{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&medications).Error; err != nil {
		return nil, err
	}
	return medications, nil
}

func (mr *medicationRepo) GetByID(ctx context.Context, tx *gorm.DB, medicationID uuid.UUID) (*types.Medication, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var result types.Medication
	if err := transaction.WithContext(ctx).
		Where("id = ?", medicationID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (mr *medicationRepo) GetByPatientID(ctx context.Context, tx *gorm.DB, patientID uuid.UUID) ([]*types.Medication, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.Medication
	if err := transaction.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("active DESC, name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *medicationRepo) Update(ctx context.Context, tx *gorm.DB, medication *types.Medication) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if medication == nil || medication.ID == uuid.Nil {
		return errors.New("medication with id required")
	}
	return transaction.WithContext(ctx).Save(medication).Error
}

func (mr *medicationRepo) Delete(ctx context.Context, tx *gorm.DB, medicationID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	res := transaction.WithContext(ctx).Where("id = ?", medicationID).Delete(&types.Medication{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
