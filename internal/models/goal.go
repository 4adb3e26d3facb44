package models

import "time"

// DefaultGoalName is assigned when a goal is created without a name.
const DefaultGoalName = "Target baru"

// Goal represents a savings goal. Saved is only mutated by explicit goal
// updates; it is never derived from transactions.
type Goal struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Saved     float64   `gorm:"not null" json:"saved"`
	Deadline  string    `gorm:"size:10;not null" json:"deadline"`
	CreatedAt time.Time `json:"createdAt"`
}
