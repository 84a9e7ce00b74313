package models

// Patient is the role record owned by the patient service. UserID points at
// an account in the accounts service; the reference is validated by the
// provisioning coordinator at creation time, not enforced by the store.
type Patient struct {
	BaseModel
	UserID         uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName       string `gorm:"size:100" json:"full_name"`
	DateOfBirth    string `gorm:"size:10" json:"date_of_birth"`
	Gender         string `gorm:"size:10" json:"gender"` // Male / Female / Other
	PhoneNumber    string `gorm:"size:20" json:"phone_number"`
	Address        string `gorm:"type:text" json:"address"`
	BloodType      string `gorm:"size:3" json:"blood_type,omitempty"` // A+, O-, etc.
	MedicalHistory string `gorm:"type:text" json:"medical_history"`
}
