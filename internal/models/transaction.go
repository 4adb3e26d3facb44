package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// FallbackCategory is assigned when a transaction is recorded without one.
const FallbackCategory = "Lainnya"

// Transaction represents a single financial entry. Dates are stored as
// fixed-width ISO strings (YYYY-MM-DD) so that range filters and ordering
// can compare them lexicographically.
type Transaction struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Type      TransactionType `gorm:"not null;index" json:"type"`
	Amount    float64         `gorm:"not null" json:"amount"`
	Date      string          `gorm:"size:10;not null;index" json:"date"`
	Category  string          `gorm:"not null;index" json:"category"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"createdAt"`
}
