package models

// TransactionType represents the direction of a ledger entry.
// Amounts are stored non-negative; the sign is implied by the type.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a single ledger entry
type Transaction struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Category    string          `gorm:"not null" json:"category"`
	Description string          `json:"description"`
	Date        string          `gorm:"not null;type:date" json:"date"`
}
