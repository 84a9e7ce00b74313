package models

// MedicalRecord represents an entry in a patient's medical history.
// PatientID and DoctorID are required foreign references; AppointmentID is
// optional. All three are validated against the owning services at write
// time.
type MedicalRecord struct {
	BaseModel
	PatientID     uint   `gorm:"index;not null" json:"patient_id"`
	DoctorID      uint   `gorm:"index;not null" json:"doctor_id"`
	AppointmentID *uint  `json:"appointment_id,omitempty"`
	Subject       string `gorm:"size:200;not null" json:"subject"`
	Content       string `gorm:"type:text" json:"content"`
	Diagnosis     string `gorm:"type:text" json:"diagnosis,omitempty"`
	Symptoms      string `gorm:"type:text" json:"symptoms,omitempty"`
	Treatment     string `gorm:"type:text" json:"treatment,omitempty"`
	Prescription  string `gorm:"type:text" json:"prescription,omitempty"`
}
