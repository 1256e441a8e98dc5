package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/carelog-backend/internal/requestdata"
	"github.com/yungbote/carelog-backend/internal/services"
)

type ExportHandler struct {
	exportService services.ExportService
}

func NewExportHandler(exportService services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportSummary takes the previously generated markdown in the request body
// and streams the rendered PDF back as a download.
func (eh *ExportHandler) ExportSummary(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid patient id"))
		return
	}
	var req struct {
		SummaryText string `json:"summary_text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	result, err := eh.exportService.ExportSummary(c.Request.Context(), rd.UserID, patientID, req.SummaryText)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	writePDF(c, result)
}

// ExportRecord renders the raw notes and medications without the AI step.
// Filters come from the same query params as the note list.
func (eh *ExportHandler) ExportRecord(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid patient id"))
		return
	}
	filter, err := parseNoteFilter(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_filter", err)
		return
	}
	result, err := eh.exportService.ExportRecord(c.Request.Context(), rd.UserID, patientID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	writePDF(c, result)
}

func writePDF(c *gin.Context, result *services.ExportResult) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, "application/pdf", result.PDF)
}
