// Package services implements the repositories and derived analytics over
// the local object store.
package services

import (
	"time"

	"uangsaku/internal/models"
)

// CategoryAll is the sentinel filter value meaning "do not filter by category".
const CategoryAll = "all"

// TransactionFilter narrows a transaction listing. Zero-value fields are
// ignored; all present filters apply conjunctively.
type TransactionFilter struct {
	StartDate string
	EndDate   string
	Category  string
	Query     string
}

// TransactionInput carries caller-supplied fields for a new transaction.
// Zero values fall back to the documented defaults.
type TransactionInput struct {
	Type      models.TransactionType
	Amount    float64
	Date      string
	Category  string
	Note      string
	CreatedAt time.Time
}

// TransactionChanges carries the fields of an update. Nil fields keep the
// stored value; the merged record replaces the stored one wholesale.
type TransactionChanges struct {
	Type     *models.TransactionType
	Amount   *float64
	Date     *string
	Category *string
	Note     *string
}

// TransactionServicer defines transaction repository operations.
type TransactionServicer interface {
	Add(input TransactionInput) (*models.Transaction, error)
	Get(id uint) (*models.Transaction, error)
	Update(id uint, changes TransactionChanges) (*models.Transaction, error)
	Delete(id uint) error
	List(filter TransactionFilter) ([]models.Transaction, error)
	Clear() error
}

// BudgetServicer defines budget repository operations.
type BudgetServicer interface {
	SaveGlobalLimit(amount float64) error
	SaveCategoryLimit(category string, amount float64) error
	RemoveCategoryLimit(category string) error
	GetBudgets() (*models.BudgetSummary, error)
	Clear() error
}

// GoalInput carries caller-supplied fields for a new goal. Zero values fall
// back to the documented defaults.
type GoalInput struct {
	Name      string
	Amount    float64
	Saved     float64
	Deadline  string
	CreatedAt time.Time
}

// GoalChanges carries the fields of a goal update. Nil fields keep the
// stored value.
type GoalChanges struct {
	Name     *string
	Amount   *float64
	Saved    *float64
	Deadline *string
}

// GoalServicer defines goal repository operations.
type GoalServicer interface {
	Add(input GoalInput) (*models.Goal, error)
	Get(id uint) (*models.Goal, error)
	Update(id uint, changes GoalChanges) (*models.Goal, error)
	Delete(id uint) error
	List() ([]models.Goal, error)
	Clear() error
}

// SettingsServicer defines settings repository operations. Get returns nil
// for keys that are neither stored nor defaulted.
type SettingsServicer interface {
	Set(key string, value any) error
	Get(key string) (any, error)
	GetAll() (map[string]any, error)
	Clear() error
}

// AnalyticsServicer defines the derived read-only aggregates.
type AnalyticsServicer interface {
	Summarize() (*Summary, error)
	DailyCashflow(days int) ([]CashflowPoint, error)
	MonthlyComparison(months int) ([]MonthlyPoint, error)
	CategoryTotalsCurrentMonth() (map[string]float64, error)
}

// SyncServicer defines whole-store export, destructive import, and reset.
type SyncServicer interface {
	Export() (*Snapshot, error)
	Import(raw []byte) error
	Reset() error
}
