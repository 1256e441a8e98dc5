package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/carelog-backend/internal/requestdata"
	"github.com/yungbote/carelog-backend/internal/services"
)

type NoteHandler struct {
	noteService services.NoteService
}

func NewNoteHandler(noteService services.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

type noteRequest struct {
	Date          string  `json:"date"`
	SleepTime     *string `json:"sleep_time"`
	WakeTime      *string `json:"wake_time"`
	Mood          *int    `json:"mood"`
	Detail        string  `json:"detail"`
	Tags          []string `json:"tags"`
	HourlyEntries []struct {
		Time        string `json:"time"`
		Description string `json:"description"`
	} `json:"hourly_entries"`
}

func (nr noteRequest) toInput() (services.NoteInput, error) {
	date, err := time.Parse("2006-01-02", nr.Date)
	if err != nil {
		return services.NoteInput{}, fmt.Errorf("date must be YYYY-MM-DD")
	}
	if nr.Mood != nil && (*nr.Mood < 1 || *nr.Mood > 5) {
		return services.NoteInput{}, fmt.Errorf("mood must be between 1 and 5")
	}
	input := services.NoteInput{
		Date:      date,
		SleepTime: nr.SleepTime,
		WakeTime:  nr.WakeTime,
		Mood:      nr.Mood,
		Detail:    nr.Detail,
		Tags:      nr.Tags,
	}
	for _, e := range nr.HourlyEntries {
		input.HourlyEntries = append(input.HourlyEntries, services.HourlyEntryInput{
			Time:        e.Time,
			Description: e.Description,
		})
	}
	return input, nil
}

// parseNoteFilter reads start/end/tags query params. Dates are YYYY-MM-DD;
// tags may repeat or be comma-separated.
func parseNoteFilter(c *gin.Context) (services.NoteFilter, error) {
	var filter services.NoteFilter
	if v := strings.TrimSpace(c.Query("start")); v != "" {
		start, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, fmt.Errorf("start must be YYYY-MM-DD")
		}
		filter.Start = &start
	}
	if v := strings.TrimSpace(c.Query("end")); v != "" {
		end, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, fmt.Errorf("end must be YYYY-MM-DD")
		}
		filter.End = &end
	}
	for _, raw := range c.QueryArray("tags") {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				filter.Tags = append(filter.Tags, tag)
			}
		}
	}
	return filter, nil
}

func (nh *NoteHandler) List(c *gin.Context) {
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
	notes, err := nh.noteService.ListForPatient(c.Request.Context(), rd.UserID, patientID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"notes": notes})
}

func (nh *NoteHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid patient id"))
		return
	}
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	note, err := nh.noteService.Create(c.Request.Context(), rd.UserID, patientID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"note": note})
}

func (nh *NoteHandler) Update(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid patient id"))
		return
	}
	noteID, err := uuid.Parse(c.Param("note_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid note id"))
		return
	}
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	note, err := nh.noteService.Update(c.Request.Context(), rd.UserID, patientID, noteID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"note": note})
}

func (nh *NoteHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid patient id"))
		return
	}
	noteID, err := uuid.Parse(c.Param("note_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid note id"))
		return
	}
	if err := nh.noteService.Delete(c.Request.Context(), rd.UserID, patientID, noteID); err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
