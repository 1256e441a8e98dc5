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

type PatientInput struct {
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
	Diagnosis   string
	AvatarColor string
}

type PatientService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*types.Patient, error)
	Get(ctx context.Context, userID, patientID uuid.UUID) (*types.Patient, error)
	Create(ctx context.Context, userID uuid.UUID, input PatientInput) (*types.Patient, error)
	Update(ctx context.Context, userID, patientID uuid.UUID, input PatientInput) (*types.Patient, error)
	Delete(ctx context.Context, userID, patientID uuid.UUID) error
	SetAvatarImage(ctx context.Context, userID, patientID uuid.UUID, raw []byte) (*types.Patient, error)
}

type patientService struct {
	db            *gorm.DB
	log           *logger.Logger
	patientRepo   repos.PatientRepo
	avatarService AvatarService
}

func NewPatientService(db *gorm.DB, log *logger.Logger, patientRepo repos.PatientRepo, avatarService AvatarService) PatientService {
	return &patientService{
		db:            db,
		log:           log.With("service", "PatientService"),
		patientRepo:   patientRepo,
		avatarService: avatarService,
	}
}

func (ps *patientService) List(ctx context.Context, userID uuid.UUID) ([]*types.Patient, error) {
	patients, err := ps.patientRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (ps *patientService) Get(ctx context.Context, userID, patientID uuid.UUID) (*types.Patient, error) {
	patient, err := ps.patientRepo.GetOwned(ctx, nil, userID, patientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}
	return patient, nil
}

func (ps *patientService) Create(ctx context.Context, userID uuid.UUID, input PatientInput) (*types.Patient, error) {
	patient := &types.Patient{
		ID:     uuid.New(),
		UserID: userID,
	}
	applyPatientInput(patient, input)
	if patient.FirstName == "" {
		return nil, fmt.Errorf("a first name is required")
	}
	if err := ps.avatarService.EnsurePatientAvatar(patient); err != nil {
		ps.log.Warn("Failed to generate patient avatar", "error", err)
	}
	if _, err := ps.patientRepo.Create(ctx, nil, []*types.Patient{patient}); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return patient, nil
}

func (ps *patientService) Update(ctx context.Context, userID, patientID uuid.UUID, input PatientInput) (*types.Patient, error) {
	patient, err := ps.Get(ctx, userID, patientID)
	if err != nil {
		return nil, err
	}
	nameChanged := patient.FirstName != normalization.SanitizeText(input.FirstName) ||
		patient.LastName != normalization.SanitizeText(input.LastName)
	colorChanged := input.AvatarColor != "" && patient.AvatarColor != input.AvatarColor

	applyPatientInput(patient, input)
	if patient.FirstName == "" {
		return nil, fmt.Errorf("a first name is required")
	}
	if nameChanged || colorChanged {
		if err := ps.avatarService.EnsurePatientAvatar(patient); err != nil {
			ps.log.Warn("Failed to regenerate patient avatar", "error", err)
		}
	}
	if err := ps.patientRepo.Update(ctx, nil, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return patient, nil
}

func (ps *patientService) Delete(ctx context.Context, userID, patientID uuid.UUID) error {
	if err := ps.patientRepo.Delete(ctx, nil, userID, patientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPatientNotFound
		}
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

func (ps *patientService) SetAvatarImage(ctx context.Context, userID, patientID uuid.UUID, raw []byte) (*types.Patient, error) {
	patient, err := ps.Get(ctx, userID, patientID)
	if err != nil {
		return nil, err
	}
	if err := ps.avatarService.SetPatientAvatarFromImage(patient, raw); err != nil {
		return nil, fmt.Errorf("failed to process avatar image: %w", err)
	}
	if err := ps.patientRepo.Update(ctx, nil, patient); err != nil {
		return nil, fmt.Errorf("failed to save patient avatar: %w", err)
	}
	return patient, nil
}

func applyPatientInput(patient *types.Patient, input PatientInput) {
	patient.FirstName = normalization.SanitizeText(input.FirstName)
	patient.LastName = normalization.SanitizeText(input.LastName)
	patient.DateOfBirth = input.DateOfBirth
	patient.Diagnosis = normalization.SanitizeText(input.Diagnosis)
	if input.AvatarColor != "" {
		patient.AvatarColor = input.AvatarColor
	}
}
