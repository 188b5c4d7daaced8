package models

import (
	"time"

	"gorm.io/gorm"
)

// Base contains common columns for all tables
type Base struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// All lists every model managed by AutoMigrate (SQLite and tests).
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&FamilyMember{},
		&Destination{},
		&Transaction{},
		&AuditLog{},
	}
}
