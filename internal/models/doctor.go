package models

// Doctor is the role record owned by the doctor service. UserID points at an
// account in the accounts service.
type Doctor struct {
	BaseModel
	UserID            uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName          string `gorm:"size:100" json:"full_name"`
	Specialization    string `gorm:"size:100" json:"specialization"`
	YearsOfExperience int    `json:"years_of_experience"`
	LicenseNumber     string `gorm:"size:50" json:"license_number"`
	PhoneNumber       string `gorm:"size:20" json:"phone_number"`
}
