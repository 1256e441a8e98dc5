package services

import "errors"

// Service-level sentinels; handlers map these onto HTTP statuses. Ownership
// failures surface as not-found so patient existence never leaks.
var (
	ErrPatientNotFound    = errors.New("patient not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrMedicationNotFound = errors.New("medication not found")
	ErrInvalidFilter      = errors.New("invalid filter parameters")
	ErrNoNotes            = errors.New("patient has no notes")
	ErrNoMatchingNotes    = errors.New("no notes match the selected filters")
	ErrNotConfigured      = errors.New("summary generation is not configured")
	ErrGenerationFailed   = errors.New("summary generation failed")
)
