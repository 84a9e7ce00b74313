package handlers

import (
	"net/http"

	"hospital-services/internal/models"
	"hospital-services/internal/remote"
	"hospital-services/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AppointmentHandler handles appointment requests. Writes that reference
// other services' entities go through the reference validator first.
type AppointmentHandler struct {
	DB        *gorm.DB
	Validator *remote.Validator
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, validator *remote.Validator) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Validator: validator}
}

// ListAppointments returns all appointments.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	var appointments []models.Appointment
	if err := h.DB.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// CreateAppointmentRequest represents the request body for creating an appointment.
type CreateAppointmentRequest struct {
	PatientID       uint   `json:"patient_id" binding:"required"`
	DoctorID        uint   `json:"doctor_id" binding:"required"`
	AppointmentDate string `json:"appointment_date" binding:"required"`
	AppointmentTime string `json:"appointment_time" binding:"required"`
	Reason          string `json:"reason"`
}

// CreateAppointment creates an appointment after verifying the patient and
// doctor references, in that order, with the owning services. No local write
// happens when validation fails.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	result := h.Validator.Validate(c.Request.Context(), []remote.Reference{
		{Name: "patient", Service: "patient", ID: &req.PatientID, Required: true},
		{Name: "doctor", Service: "doctor", ID: &req.DoctorID, Required: true},
	})
	if !result.OK() {
		respondReferenceFailure(c, result)
		return
	}

	appointment := models.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Reason:          req.Reason,
		Status:          models.StatusPending,
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// GetAppointmentByID fetches a single appointment. Consumed by the medical
// record service's remote existence checker.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// UpdateAppointmentRequest represents the request body for updating an appointment.
type UpdateAppointmentRequest struct {
	PatientID       *uint  `json:"patient_id"`
	DoctorID        *uint  `json:"doctor_id"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Reason          string `json:"reason"`
}

// UpdateAppointment updates an appointment. Any reference present in the
// body is re-validated before the write, with the same ordering and
// short-circuit behavior as create.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	result := h.Validator.Validate(c.Request.Context(), []remote.Reference{
		{Name: "patient", Service: "patient", ID: req.PatientID},
		{Name: "doctor", Service: "doctor", ID: req.DoctorID},
	})
	if !result.OK() {
		respondReferenceFailure(c, result)
		return
	}

	if req.PatientID != nil {
		appointment.PatientID = *req.PatientID
	}
	if req.DoctorID != nil {
		appointment.DoctorID = *req.DoctorID
	}
	if req.AppointmentDate != "" {
		appointment.AppointmentDate = req.AppointmentDate
	}
	if req.AppointmentTime != "" {
		appointment.AppointmentTime = req.AppointmentTime
	}
	if req.Reason != "" {
		appointment.Reason = req.Reason
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// UpdateAppointmentStatusRequest represents the request body for a status change.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=pending confirmed canceled done"`
}

// UpdateAppointmentStatus changes an appointment's status. No references are
// touched, so no remote checks run.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	appointment.Status = req.Status
	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment status: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// DeleteAppointment removes an appointment.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete appointment: "+err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}
