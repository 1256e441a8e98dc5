package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/carelog-backend/internal/services"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

var errInternal = errors.New("internal server error")

// respondServiceError maps the service sentinels onto HTTP statuses; anything
// unmapped is a 500. 500-class responses carry only the sentinel (or generic)
// message: wrapped detail goes to the gin error log, never to the client.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPatientNotFound):
		RespondError(c, http.StatusNotFound, "patient_not_found", services.ErrPatientNotFound)
	case errors.Is(err, services.ErrNoteNotFound):
		RespondError(c, http.StatusNotFound, "note_not_found", services.ErrNoteNotFound)
	case errors.Is(err, services.ErrMedicationNotFound):
		RespondError(c, http.StatusNotFound, "medication_not_found", services.ErrMedicationNotFound)
	case errors.Is(err, services.ErrInvalidFilter):
		RespondError(c, http.StatusBadRequest, "invalid_filter", services.ErrInvalidFilter)
	case errors.Is(err, services.ErrNoNotes):
		RespondError(c, http.StatusBadRequest, "no_notes", services.ErrNoNotes)
	case errors.Is(err, services.ErrNoMatchingNotes):
		RespondError(c, http.StatusBadRequest, "no_matching_notes", services.ErrNoMatchingNotes)
	case errors.Is(err, services.ErrNotConfigured):
		_ = c.Error(err)
		RespondError(c, http.StatusInternalServerError, "not_configured", services.ErrNotConfigured)
	case errors.Is(err, services.ErrGenerationFailed):
		_ = c.Error(err)
		RespondError(c, http.StatusInternalServerError, "generation_failed", services.ErrGenerationFailed)
	default:
		_ = c.Error(err)
		RespondError(c, http.StatusInternalServerError, "internal", errInternal)
	}
}
