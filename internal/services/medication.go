package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/carelog-backend/internal/logger"
	"github.com/yungbote/carelog-backend/internal/normalization"
	"github.com/yungbote/carelog-backend/internal/repos"
	"github.com/yungbote/carelog-backend/internal/types"
)

type MedicationInput struct {
	Name     string
	Dosage   string
	Schedule string
	Notes    string
	Active   bool
}

type MedicationService interface {
	ListForPatient(ctx context.Context, userID, patientID uuid.UUID) ([]*types.Medication, error)
	Create(ctx context.Context, userID, patientID uuid.UUID, input MedicationInput) (*types.Medication, error)
	Update(ctx context.Context, userID, patientID, medicationID uuid.UUID, input MedicationInput) (*types.Medication, error)
	Delete(ctx context.Context, userID, patientID, medicationID uuid.UUID) error
}

type medicationService struct {
	db             *gorm.DB
	log            *logger.Logger
	patientRepo    repos.PatientRepo
	medicationRepo repos.MedicationRepo
}

func NewMedicationService(db *gorm.DB, log *logger.Logger, patientRepo repos.PatientRepo, medicationRepo repos.MedicationRepo) MedicationService {
	return &medicationService{
		db:             db,
		log:            log.With("service", "MedicationService"),
		patientRepo:    patientRepo,
		medicationRepo: medicationRepo,
	}
}

func (ms *medicationService) ListForPatient(ctx context.Context, userID, patientID uuid.UUID) ([]*types.Medication, error) {
	if err := ms.checkOwnership(ctx, userID, patientID); err != nil {
		return nil, err
	}
	meds, err := ms.medicationRepo.GetByPatientID(ctx, nil, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	return meds, nil
}

func (ms *medicationService) Create(ctx context.Context, userID, patientID uuid.UUID, input MedicationInput) (*types.Medication, error) {
	if err := ms.checkOwnership(ctx, userID, patientID); err != nil {
		return nil, err
	}
	med := &types.Medication{
		ID:        uuid.New(),
		PatientID: patientID,
	}
	applyMedicationInput(med, input)
	if med.Name == "" {
		return nil, fmt.Errorf("a medication name is required")
	}
	if _, err := ms.medicationRepo.Create(ctx, nil, []*types.Medication{med}); err != nil {
		return nil, fmt.Errorf("failed to create medication: %w", err)
	}
	return med, nil
}

func (ms *medicationService) Update(ctx context.Context, userID, patientID, medicationID uuid.UUID, input MedicationInput) (*types.Medication, error) {
	med, err := ms.ownedMedication(ctx, userID, patientID, medicationID)
	if err != nil {
		return nil, err
	}
	applyMedicationInput(med, input)
	if med.Name == "" {
		return nil, fmt.Errorf("a medication name is required")
	}
	if err := ms.medicationRepo.Update(ctx, nil, med); err != nil {
		return nil, fmt.Errorf("failed to update medication: %w", err)
	}
	return med, nil
}

func (ms *medicationService) Delete(ctx context.Context, userID, patientID, medicationID uuid.UUID) error {
	if _, err := ms.ownedMedication(ctx, userID, patientID, medicationID); err != nil {
		return err
	}
	if err := ms.medicationRepo.Delete(ctx, nil, medicationID); err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}
	return nil
}

func (ms *medicationService) checkOwnership(ctx context.Context, userID, patientID uuid.UUID) error {
	if _, err := ms.patientRepo.GetOwned(ctx, nil, userID, patientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPatientNotFound
		}
		return fmt.Errorf("failed to load patient: %w", err)
	}
	return nil
}

func (ms *medicationService) ownedMedication(ctx context.Context, userID, patientID, medicationID uuid.UUID) (*types.Medication, error) {
	if err := ms.checkOwnership(ctx, userID, patientID); err != nil {
		return nil, err
	}
	med, err := ms.medicationRepo.GetByID(ctx, nil, medicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMedicationNotFound
		}
		return nil, fmt.Errorf("failed to load medication: %w", err)
	}
	if med.PatientID != patientID {
		return nil, ErrMedicationNotFound
	}
	return med, nil
}

func applyMedicationInput(med *types.Medication, input MedicationInput) {
	med.Name = normalization.SanitizeText(input.Name)
	med.Dosage = normalization.SanitizeText(input.Dosage)
	med.Schedule = normalization.SanitizeText(input.Schedule)
	med.Notes = normalization.SanitizeText(input.Notes)
	med.Active = input.Active
}
