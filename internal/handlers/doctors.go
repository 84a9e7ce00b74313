package handlers

import (
	"net/http"

	"hospital-services/internal/models"
	"hospital-services/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DoctorHandler handles doctor role record requests.
type DoctorHandler struct {
	DB *gorm.DB
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB) *DoctorHandler {
	return &DoctorHandler{DB: db}
}

// ListDoctors returns all doctors.
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	var doctors []models.Doctor
	if err := h.DB.Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, doctors)
}

// CreateDoctorRequest represents the request body for creating a doctor.
type CreateDoctorRequest struct {
	UserID            uint   `json:"user_id" binding:"required"`
	FullName          string `json:"full_name"`
	Specialization    string `json:"specialization"`
	YearsOfExperience int    `json:"years_of_experience"`
	LicenseNumber     string `json:"license_number"`
	PhoneNumber       string `json:"phone_number"`
}

// CreateDoctor creates a doctor record. Like patients, the account reference
// is upheld by the provisioning coordinator, not re-checked here.
func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var req CreateDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctor := models.Doctor{
		UserID:            req.UserID,
		FullName:          req.FullName,
		Specialization:    req.Specialization,
		YearsOfExperience: req.YearsOfExperience,
		LicenseNumber:     req.LicenseNumber,
		PhoneNumber:       req.PhoneNumber,
	}

	if err := h.DB.Create(&doctor).Error; err != nil {
		utils.BadRequest(c, "Failed to create doctor: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, doctor)
}

// GetDoctorByID fetches a single doctor. Consumed by the remote existence
// checker of the appointment and medical record services.
func (h *DoctorHandler) GetDoctorByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, doctor)
}

// UpdateDoctorRequest represents the request body for updating a doctor.
type UpdateDoctorRequest struct {
	FullName          string `json:"full_name"`
	Specialization    string `json:"specialization"`
	YearsOfExperience *int   `json:"years_of_experience"`
	LicenseNumber     string `json:"license_number"`
	PhoneNumber       string `json:"phone_number"`
}

// UpdateDoctor updates a doctor's profile fields.
func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.FullName != "" {
		doctor.FullName = req.FullName
	}
	if req.Specialization != "" {
		doctor.Specialization = req.Specialization
	}
	if req.YearsOfExperience != nil {
		doctor.YearsOfExperience = *req.YearsOfExperience
	}
	if req.LicenseNumber != "" {
		doctor.LicenseNumber = req.LicenseNumber
	}
	if req.PhoneNumber != "" {
		doctor.PhoneNumber = req.PhoneNumber
	}

	if err := h.DB.Save(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to update doctor: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, doctor)
}

// DeleteDoctor removes a doctor record.
func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete doctor: "+err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

// GetDoctorsBySpecialization lists doctors matching a specialization
// (substring match, case handled by the collation).
func (h *DoctorHandler) GetDoctorsBySpecialization(c *gin.Context) {
	specialization := c.Param("specialization")

	var doctors []models.Doctor
	if err := h.DB.Where("specialization LIKE ?", "%"+specialization+"%").Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, doctors)
}
