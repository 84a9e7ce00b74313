package models

import (
	"time"
)

// RefreshToken represents a JWT refresh token in the accounts database
type RefreshToken struct {
	BaseModel
	UserID    uint      `gorm:"index" json:"user_id"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `gorm:"default:false" json:"is_revoked"`

	// Define the relationship to Account
	Account Account `gorm:"foreignKey:UserID" json:"-"`
}
