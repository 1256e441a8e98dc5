package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/carelog-backend/internal/services"
)

func recordServiceError(t *testing.T, err error) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondServiceError(c, err)
	return w, c
}

func TestRespondServiceError_GenerationFailureHidesUpstreamDetail(t *testing.T) {
	upstream := errors.New(`Post "https://api.openai.com/v1/chat/completions": dial tcp 10.0.0.1:443: connect refused`)
	wrapped := fmt.Errorf("%w: %v", services.ErrGenerationFailed, upstream)

	w, c := recordServiceError(t, wrapped)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, services.ErrGenerationFailed.Error()) {
		t.Fatalf("expected the generic generation message, got %s", body)
	}
	if strings.Contains(body, "dial tcp") || strings.Contains(body, "api.openai.com") {
		t.Fatalf("upstream detail leaked to client: %s", body)
	}
	// Full detail must still reach the request error log.
	if len(c.Errors) == 0 || !strings.Contains(c.Errors.String(), "dial tcp") {
		t.Fatalf("wrapped detail missing from logged errors: %v", c.Errors)
	}
}

func TestRespondServiceError_UnknownErrorHidesDetail(t *testing.T) {
	w, c := recordServiceError(t, fmt.Errorf("failed to load notes: pq: connection reset by peer"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "pq:") || strings.Contains(body, "connection reset") {
		t.Fatalf("database detail leaked to client: %s", body)
	}
	if !strings.Contains(body, "internal server error") {
		t.Fatalf("expected generic message, got %s", body)
	}
	if len(c.Errors) == 0 {
		t.Fatalf("unmapped error was not recorded for the request log")
	}
}

func TestRespondServiceError_SentinelStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{services.ErrPatientNotFound, http.StatusNotFound, "patient_not_found"},
		{services.ErrNoteNotFound, http.StatusNotFound, "note_not_found"},
		{services.ErrMedicationNotFound, http.StatusNotFound, "medication_not_found"},
		{services.ErrInvalidFilter, http.StatusBadRequest, "invalid_filter"},
		{services.ErrNoNotes, http.StatusBadRequest, "no_notes"},
		{services.ErrNoMatchingNotes, http.StatusBadRequest, "no_matching_notes"},
		{services.ErrNotConfigured, http.StatusInternalServerError, "not_configured"},
	}
	for _, tc := range cases {
		w, _ := recordServiceError(t, tc.err)
		if w.Code != tc.status {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.status, w.Code)
		}
		if !strings.Contains(w.Body.String(), tc.code) {
			t.Fatalf("%v: expected code %q in body %s", tc.err, tc.code, w.Body.String())
		}
	}
}
