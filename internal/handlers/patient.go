package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/carelog-backend/internal/requestdata"
	"github.com/yungbote/carelog-backend/internal/services"
)

type PatientHandler struct {
	patientService services.PatientService
}

func NewPatientHandler(patientService services.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

type patientRequest struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	DateOfBirth *string `json:"date_of_birth"`
	Diagnosis   string  `json:"diagnosis"`
	AvatarColor string  `json:"avatar_color"`
}

func (pr patientRequest) toInput() (services.PatientInput, error) {
	input := services.PatientInput{
		FirstName:   pr.FirstName,
		LastName:    pr.LastName,
		Diagnosis:   pr.Diagnosis,
		AvatarColor: pr.AvatarColor,
	}
	if pr.DateOfBirth != nil && *pr.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", *pr.DateOfBirth)
		if err != nil {
			return input, fmt.Errorf("date_of_birth must be YYYY-MM-DD")
		}
		input.DateOfBirth = &dob
	}
	return input, nil
}

func (ph *PatientHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	patients, err := ph.patientService.List(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"patients": patients})
}

func (ph *PatientHandler) Get(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid patient id"))
		return
	}
	patient, err := ph.patientService.Get(c.Request.Context(), rd.UserID, patientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"patient": patient})
}

func (ph *PatientHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var req patientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	patient, err := ph.patientService.Create(c.Request.Context(), rd.UserID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"patient": patient})
}

func (ph *PatientHandler) Update(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid patient id"))
		return
	}
	var req patientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	patient, err := ph.patientService.Update(c.Request.Context(), rd.UserID, patientID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"patient": patient})
}

func (ph *PatientHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid patient id"))
		return
	}
	if err := ph.patientService.Delete(c.Request.Context(), rd.UserID, patientID); err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// UploadAvatar accepts a raw image body (or multipart "avatar" field) and
// replaces the patient's generated avatar with it.
func (ph *PatientHandler) UploadAvatar(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid patient id"))
		return
	}

	var raw []byte
	if file, fErr := c.FormFile("avatar"); fErr == nil {
		f, oErr := file.Open()
		if oErr != nil {
			RespondError(c, http.StatusBadRequest, "invalid_file", oErr)
			return
		}
		defer f.Close()
		raw, err = io.ReadAll(io.LimitReader(f, 10<<20))
	} else {
		raw, err = io.ReadAll(io.LimitReader(c.Request.Body, 10<<20))
	}
	if err != nil || len(raw) == 0 {
		RespondError(c, http.StatusBadRequest, "invalid_file", fmt.Errorf("no image data received"))
		return
	}

	patient, err := ph.patientService.SetAvatarImage(c.Request.Context(), rd.UserID, patientID, raw)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"patient": patient})
}
