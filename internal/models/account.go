package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Account represents a login account in the accounts service. Role records
// (Patient, Doctor) live in their own services and point back here by user_id.
type Account struct {
	BaseModel
	Email       string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password    string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	FullName    string `gorm:"size:100" json:"full_name"`
	Role        Role   `gorm:"size:20;default:'patient'" json:"role"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
	IsStaff     bool   `gorm:"default:false" json:"is_staff"`
	IsSuperuser bool   `gorm:"default:false" json:"is_superuser"`

	// Relations (not always preloaded)
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

// AccountSanitized represents the account data that is safe to send in API responses.
type AccountSanitized struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"is_active"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

// SetPassword hashes a password and sets it on the account
func (a *Account) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the account's hashed password
func (a *Account) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password))
	return err == nil
}

// Sanitize creates an AccountSanitized struct from an Account, excluding sensitive data.
func (a *Account) Sanitize() AccountSanitized {
	return AccountSanitized{
		ID:        a.ID,
		Email:     a.Email,
		FullName:  a.FullName,
		Role:      a.Role,
		IsActive:  a.IsActive,
		IsStaff:   a.IsStaff,
		CreatedAt: a.CreatedAt,
	}
}
