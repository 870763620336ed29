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
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// DateLayout is the wire format for calendar dates (planner events,
// transactions). Times of day use TimeLayout.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)
