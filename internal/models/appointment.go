package models

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCanceled  AppointmentStatus = "canceled"
	StatusDone      AppointmentStatus = "done"
)

// Appointment represents a scheduled medical appointment. PatientID and
// DoctorID are foreign references into other services, validated at write
// time only.
type Appointment struct {
	BaseModel
	PatientID       uint              `gorm:"index;not null" json:"patient_id"`
	DoctorID        uint              `gorm:"index;not null" json:"doctor_id"`
	AppointmentDate string            `gorm:"size:10" json:"appointment_date"`
	AppointmentTime string            `gorm:"size:8" json:"appointment_time"`
	Status          AppointmentStatus `gorm:"size:20;default:'pending'" json:"status"`
	Reason          string            `gorm:"type:text" json:"reason"`
}
