package models

// BusinessStatus represents the operational status of a business
type BusinessStatus string

const (
	BusinessStatusActive   BusinessStatus = "active"
	BusinessStatusInactive BusinessStatus = "inactive"
	BusinessStatusPending  BusinessStatus = "pending"
)

// Business represents a tracked business venture
type Business struct {
	Base
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Industry    string         `json:"industry"`
	Revenue     float64        `gorm:"default:0" json:"revenue"`
	Status      BusinessStatus `gorm:"not null;default:active" json:"status"`

	Departments []Department `gorm:"foreignKey:BusinessID" json:"departments,omitempty"`
}

// Department represents a unit within a business
type Department struct {
	Base
	UserID     uint   `gorm:"not null;index" json:"user_id"`
	BusinessID uint   `gorm:"not null;index" json:"business_id"`
	Name       string `gorm:"not null" json:"name"`
}
