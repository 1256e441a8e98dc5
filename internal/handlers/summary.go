package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/carelog-backend/internal/requestdata"
	"github.com/yungbote/carelog-backend/internal/services"
)

type SummaryHandler struct {
	summaryService services.SummaryService
}

func NewSummaryHandler(summaryService services.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

type summaryRequest struct {
	PatientID string   `json:"patient_id"`
	StartDate *string  `json:"start_date"`
	EndDate   *string  `json:"end_date"`
	Tags      []string `json:"tags"`
}

type summaryPeriod struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

type summaryResponse struct {
	SummaryText string         `json:"summary_text"`
	PatientName string         `json:"patient_name"`
	NoteCount   int            `json:"note_count"`
	Period      *summaryPeriod `json:"period,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
}

func (sh *SummaryHandler) Generate(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	var req summaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid patient id"))
		return
	}

	var filter services.NoteFilter
	if req.StartDate != nil && *req.StartDate != "" {
		start, pErr := time.Parse("2006-01-02", *req.StartDate)
		if pErr != nil {
			RespondError(c, http.StatusBadRequest, "invalid_filter", fmt.Errorf("start_date must be YYYY-MM-DD"))
			return
		}
		filter.Start = &start
	}
	if req.EndDate != nil && *req.EndDate != "" {
		end, pErr := time.Parse("2006-01-02", *req.EndDate)
		if pErr != nil {
			RespondError(c, http.StatusBadRequest, "invalid_filter", fmt.Errorf("end_date must be YYYY-MM-DD"))
			return
		}
		filter.End = &end
	}
	for _, tag := range req.Tags {
		if tag != "" {
			filter.Tags = append(filter.Tags, tag)
		}
	}

	result, err := sh.summaryService.Generate(c.Request.Context(), rd.UserID, patientID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := summaryResponse{
		SummaryText: result.SummaryText,
		PatientName: result.PatientName,
		NoteCount:   result.NoteCount,
		Tags:        result.Tags,
	}
	if result.Start != nil || result.End != nil {
		period := &summaryPeriod{}
		if result.Start != nil {
			period.Start = result.Start.Format("2006-01-02")
		}
		if result.End != nil {
			period.End = result.End.Format("2006-01-02")
		}
		resp.Period = period
	}
	RespondOK(c, resp)
}
