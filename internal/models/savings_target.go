package models

import "time"

// SavingsTarget represents a named savings goal with funded progress
type SavingsTarget struct {
	Base
	UserID        uint       `gorm:"not null;index" json:"user_id"`
	Name          string     `gorm:"not null" json:"name"`
	TargetAmount  float64    `gorm:"not null" json:"target_amount"`
	CurrentAmount float64    `gorm:"default:0" json:"current_amount"`
	Deadline      *time.Time `json:"deadline,omitempty"`
}
