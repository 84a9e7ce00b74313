package models

import (
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// BaseModel contains common columns for all tables. Records are keyed by an
// auto-assigned numeric identifier; cross-service references carry these IDs
// and nothing else.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// InitDB opens the service's database and migrates the tables it owns.
// Every service connects only to its own schema; cross-service data is
// reached through the HTTP API, never through a shared connection.
func InitDB(config DatabaseConfig, entities ...interface{}) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(config.DSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if len(entities) > 0 {
		if err := db.AutoMigrate(entities...); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	DSN string
}
