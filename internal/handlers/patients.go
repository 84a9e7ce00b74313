package handlers

import (
	"net/http"

	"hospital-services/internal/models"
	"hospital-services/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PatientHandler handles patient role record requests.
type PatientHandler struct {
	DB *gorm.DB
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{DB: db}
}

// ListPatients returns all patients.
func (h *PatientHandler) ListPatients(c *gin.Context) {
	var patients []models.Patient
	if err := h.DB.Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, patients)
}

// CreatePatientRequest represents the request body for creating a patient.
// Only the account reference is mandatory: the provisioning coordinator
// creates patients with role-appropriate defaults and the profile is filled
// in later.
type CreatePatientRequest struct {
	UserID         uint   `json:"user_id" binding:"required"`
	FullName       string `json:"full_name"`
	DateOfBirth    string `json:"date_of_birth"`
	Gender         string `json:"gender"`
	PhoneNumber    string `json:"phone_number"`
	Address        string `json:"address"`
	BloodType      string `json:"blood_type"`
	MedicalHistory string `json:"medical_history"`
}

// CreatePatient creates a patient record. The account reference is not
// re-checked here: creation is driven by the accounts service's coordinator,
// which has just created the account, and checking back would be circular.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient := models.Patient{
		UserID:         req.UserID,
		FullName:       req.FullName,
		DateOfBirth:    req.DateOfBirth,
		Gender:         req.Gender,
		PhoneNumber:    req.PhoneNumber,
		Address:        req.Address,
		BloodType:      req.BloodType,
		MedicalHistory: req.MedicalHistory,
	}

	if err := h.DB.Create(&patient).Error; err != nil {
		// One role record per account, enforced by the unique index.
		utils.BadRequest(c, "Failed to create patient: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, patient)
}

// GetPatientByID fetches a single patient. This is the endpoint consumed by
// the remote existence checker of the appointment and medical record
// services.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, patient)
}

// UpdatePatientRequest represents the request body for updating a patient.
type UpdatePatientRequest struct {
	FullName       string `json:"full_name"`
	DateOfBirth    string `json:"date_of_birth"`
	Gender         string `json:"gender"`
	PhoneNumber    string `json:"phone_number"`
	Address        string `json:"address"`
	BloodType      string `json:"blood_type"`
	MedicalHistory string `json:"medical_history"`
}

// UpdatePatient updates a patient's profile fields. Absent fields are left
// unchanged, so the same handler serves both PUT and PATCH.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.FullName != "" {
		patient.FullName = req.FullName
	}
	if req.DateOfBirth != "" {
		patient.DateOfBirth = req.DateOfBirth
	}
	if req.Gender != "" {
		patient.Gender = req.Gender
	}
	if req.PhoneNumber != "" {
		patient.PhoneNumber = req.PhoneNumber
	}
	if req.Address != "" {
		patient.Address = req.Address
	}
	if req.BloodType != "" {
		patient.BloodType = req.BloodType
	}
	if req.MedicalHistory != "" {
		patient.MedicalHistory = req.MedicalHistory
	}

	if err := h.DB.Save(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to update patient: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, patient)
}

// DeletePatient removes a patient record.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete patient: "+err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

// GetPatientByUserID fetches the patient record backing an account.
func (h *PatientHandler) GetPatientByUserID(c *gin.Context) {
	userID, ok := parseIDParam(c, "userID")
	if !ok {
		return
	}

	var patient models.Patient
	if err := h.DB.Where("user_id = ?", userID).First(&patient).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found for this user")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, patient)
}
