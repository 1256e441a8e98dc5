package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/carelog-backend/internal/requestdata"
	"github.com/yungbote/carelog-backend/internal/services"
)

type MedicationHandler struct {
	medicationService services.MedicationService
}

func NewMedicationHandler(medicationService services.MedicationService) *MedicationHandler {
	return &MedicationHandler{medicationService: medicationService}
}

type medicationRequest struct {
	Name     string `json:"name"`
	Dosage   string `json:"dosage"`
	Schedule string `json:"schedule"`
	Notes    string `json:"notes"`
	Active   *bool  `json:"active"`
}

func (mr medicationRequest) toInput() services.MedicationInput {
	active := true
	if mr.Active != nil {
		active = *mr.Active
	}
	return services.MedicationInput{
		Name:     mr.Name,
		Dosage:   mr.Dosage,
		Schedule: mr.Schedule,
		Notes:    mr.Notes,
		Active:   active,
	}
}

func (mh *MedicationHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid patient id"))
		return
	}
	meds, err := mh.medicationService.ListForPatient(c.Request.Context(), rd.UserID, patientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"medications": meds})
}

func (mh *MedicationHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid patient id"))
		return
	}
	var req medicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	med, err := mh.medicationService.Create(c.Request.Context(), rd.UserID, patientID, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"medication": med})
}

func (mh *MedicationHandler) Update(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid patient id"))
		return
	}
	medicationID, err := uuid.Parse(c.Param("medication_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid medication id"))
		return
	}
	var req medicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	med, err := mh.medicationService.Update(c.Request.Context(), rd.UserID, patientID, medicationID, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"medication": med})
}

func (mh *MedicationHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid patient id"))
		return
	}
	medicationID, err := uuid.Parse(c.Param("medication_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid medication id"))
		return
	}
	if err := mh.medicationService.Delete(c.Request.Context(), rd.UserID, patientID, medicationID); err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
