package handlers

import (
	"fmt"
	"net/http"

	"hospital-services/internal/models"
	"hospital-services/internal/remote"
	"hospital-services/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MedicalRecordHandler handles medical record requests. The reference set
// differs from appointments (patient, doctor, optional appointment) but the
// validation algorithm is the same.
type MedicalRecordHandler struct {
	DB        *gorm.DB
	Validator *remote.Validator
}

// NewMedicalRecordHandler creates a new MedicalRecordHandler.
func NewMedicalRecordHandler(db *gorm.DB, validator *remote.Validator) *MedicalRecordHandler {
	return &MedicalRecordHandler{DB: db, Validator: validator}
}

// ListMedicalRecords returns all medical records.
func (h *MedicalRecordHandler) ListMedicalRecords(c *gin.Context) {
	var records []models.MedicalRecord
	if err := h.DB.Find(&records).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch medical records: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, records)
}

// CreateMedicalRecordRequest represents the request body for creating a medical record.
type CreateMedicalRecordRequest struct {
	PatientID     uint   `json:"patient_id" binding:"required"`
	DoctorID      uint   `json:"doctor_id" binding:"required"`
	AppointmentID *uint  `json:"appointment_id"`
	Subject       string `json:"subject" binding:"required"`
	Content       string `json:"content" binding:"required"`
	Diagnosis     string `json:"diagnosis"`
	Symptoms      string `json:"symptoms"`
	Treatment     string `json:"treatment"`
	Prescription  string `json:"prescription"`
}

// CreateMedicalRecord creates a medical record after verifying patient,
// doctor, and, when supplied, the appointment reference, in that order.
// An absent appointment id skips that check entirely.
func (h *MedicalRecordHandler) CreateMedicalRecord(c *gin.Context) {
	var req CreateMedicalRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	result := h.Validator.Validate(c.Request.Context(), []remote.Reference{
		{Name: "patient", Service: "patient", ID: &req.PatientID, Required: true},
		{Name: "doctor", Service: "doctor", ID: &req.DoctorID, Required: true},
		{Name: "appointment", Service: "appointment", ID: req.AppointmentID},
	})
	if !result.OK() {
		respondReferenceFailure(c, result)
		return
	}

	record := models.MedicalRecord{
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		AppointmentID: req.AppointmentID,
		Subject:       req.Subject,
		Content:       req.Content,
		Diagnosis:     req.Diagnosis,
		Symptoms:      req.Symptoms,
		Treatment:     req.Treatment,
		Prescription:  req.Prescription,
	}

	if err := h.DB.Create(&record).Error; err != nil {
		utils.InternalServerError(c, "Failed to create medical record: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, record)
}

// GetMedicalRecordByID fetches a single medical record.
func (h *MedicalRecordHandler) GetMedicalRecordByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var record models.MedicalRecord
	if err := h.DB.First(&record, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Medical record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, record)
}

// UpdateMedicalRecordRequest represents the request body for updating a medical record.
type UpdateMedicalRecordRequest struct {
	PatientID     *uint  `json:"patient_id"`
	DoctorID      *uint  `json:"doctor_id"`
	AppointmentID *uint  `json:"appointment_id"`
	Subject       string `json:"subject"`
	Content       string `json:"content"`
	Diagnosis     string `json:"diagnosis"`
	Symptoms      string `json:"symptoms"`
	Treatment     string `json:"treatment"`
	Prescription  string `json:"prescription"`
}

// UpdateMedicalRecord updates a medical record. References present in the
// body are re-validated with the same ordering as create; absent ones are
// left untouched and unchecked.
func (h *MedicalRecordHandler) UpdateMedicalRecord(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var record models.MedicalRecord
	if err := h.DB.First(&record, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Medical record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	result := h.Validator.Validate(c.Request.Context(), []remote.Reference{
		{Name: "patient", Service: "patient", ID: req.PatientID},
		{Name: "doctor", Service: "doctor", ID: req.DoctorID},
		{Name: "appointment", Service: "appointment", ID: req.AppointmentID},
	})
	if !result.OK() {
		respondReferenceFailure(c, result)
		return
	}

	if req.PatientID != nil {
		record.PatientID = *req.PatientID
	}
	if req.DoctorID != nil {
		record.DoctorID = *req.DoctorID
	}
	if req.AppointmentID != nil {
		record.AppointmentID = req.AppointmentID
	}
	if req.Subject != "" {
		record.Subject = req.Subject
	}
	if req.Content != "" {
		record.Content = req.Content
	}
	if req.Diagnosis != "" {
		record.Diagnosis = req.Diagnosis
	}
	if req.Symptoms != "" {
		record.Symptoms = req.Symptoms
	}
	if req.Treatment != "" {
		record.Treatment = req.Treatment
	}
	if req.Prescription != "" {
		record.Prescription = req.Prescription
	}

	if err := h.DB.Save(&record).Error; err != nil {
		utils.InternalServerError(c, "Failed to update medical record: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, record)
}

// DeleteMedicalRecord removes a medical record.
func (h *MedicalRecordHandler) DeleteMedicalRecord(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var record models.MedicalRecord
	if err := h.DB.First(&record, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Medical record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&record).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete medical record: "+err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

// GetMedicalRecordsByPatient lists a patient's records. The patient
// reference is verified with its owning service before the local read.
func (h *MedicalRecordHandler) GetMedicalRecordsByPatient(c *gin.Context) {
	patientID, ok := parseIDParam(c, "patientID")
	if !ok {
		return
	}

	result := h.Validator.Validate(c.Request.Context(), []remote.Reference{
		{Name: "patient", Service: "patient", ID: &patientID, Required: true},
	})
	if !result.OK() {
		respondReferenceFailure(c, result)
		return
	}

	var records []models.MedicalRecord
	if err := h.DB.Where("patient_id = ?", patientID).Find(&records).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch medical records: "+err.Error())
		return
	}
	if len(records) == 0 {
		utils.NotFound(c, fmt.Sprintf("No medical records found for patient ID: %d", patientID))
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetMedicalRecordsByDoctor lists a doctor's records, with the doctor
// reference verified first.
func (h *MedicalRecordHandler) GetMedicalRecordsByDoctor(c *gin.Context) {
	doctorID, ok := parseIDParam(c, "doctorID")
	if !ok {
		return
	}

	result := h.Validator.Validate(c.Request.Context(), []remote.Reference{
		{Name: "doctor", Service: "doctor", ID: &doctorID, Required: true},
	})
	if !result.OK() {
		respondReferenceFailure(c, result)
		return
	}

	var records []models.MedicalRecord
	if err := h.DB.Where("doctor_id = ?", doctorID).Find(&records).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch medical records: "+err.Error())
		return
	}
	if len(records) == 0 {
		utils.NotFound(c, fmt.Sprintf("No medical records found for doctor ID: %d", doctorID))
		return
	}

	c.JSON(http.StatusOK, records)
}
