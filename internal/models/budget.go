package models

import "strings"

// Storage key scheme for the budgets collection. The global limit and all
// per-category limits live in one table; a limit's identity is derived from
// its category name, so renaming a category means delete + recreate.
const (
	globalLimitKey    = "global"
	categoryKeyPrefix = "cat:"
)

// BudgetLimit is a spending limit: either the single global limit or a limit
// scoped to one category. Use GlobalLimit or CategoryLimit to construct one.
type BudgetLimit struct {
	Amount   float64
	Category string // empty for the global limit
}

// GlobalLimit returns the store-wide spending limit.
func GlobalLimit(amount float64) BudgetLimit {
	return BudgetLimit{Amount: amount}
}

// CategoryLimit returns a spending limit scoped to a single category.
func CategoryLimit(category string, amount float64) BudgetLimit {
	return BudgetLimit{Amount: amount, Category: category}
}

// IsGlobal reports whether the limit applies store-wide.
func (l BudgetLimit) IsGlobal() bool { return l.Category == "" }

// Record encodes the limit into its storage row.
func (l BudgetLimit) Record() BudgetRecord {
	if l.IsGlobal() {
		return BudgetRecord{ID: globalLimitKey, Amount: l.Amount}
	}
	return BudgetRecord{ID: categoryKeyPrefix + l.Category, Amount: l.Amount, Category: l.Category}
}

// CategoryRecordID returns the storage key for a category limit.
func CategoryRecordID(category string) string {
	return categoryKeyPrefix + category
}

// BudgetRecord is the storage encoding of a BudgetLimit. The synthetic string
// key ("global" or "cat:<name>") only exists at this layer.
type BudgetRecord struct {
	ID       string  `gorm:"primaryKey" json:"id"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category,omitempty"`
}

// TableName names the budgets collection.
func (BudgetRecord) TableName() string { return "budgets" }

// Limit decodes the row back into a BudgetLimit. It reports false for rows
// whose key matches neither scheme.
func (r BudgetRecord) Limit() (BudgetLimit, bool) {
	switch {
	case r.ID == globalLimitKey:
		return GlobalLimit(r.Amount), true
	case strings.HasPrefix(r.ID, categoryKeyPrefix):
		return CategoryLimit(r.Category, r.Amount), true
	default:
		return BudgetLimit{}, false
	}
}

// BudgetSummary is the reduced view of the budgets collection.
type BudgetSummary struct {
	Global     float64            `json:"global"`
	Categories map[string]float64 `json:"categories"`
}
