package models

// Investment represents a held position with its cost and current value
type Investment struct {
	Base
	UserID       uint    `gorm:"not null;index" json:"user_id"`
	Name         string  `gorm:"not null" json:"name"`
	Type         string  `gorm:"not null" json:"type"`
	Amount       float64 `gorm:"not null" json:"amount"`
	CurrentValue float64 `gorm:"not null" json:"current_value"`
	Notes        string  `json:"notes"`
}

// Gain returns the absolute gain or loss on the position.
func (i *Investment) Gain() float64 {
	return i.CurrentValue - i.Amount
}
