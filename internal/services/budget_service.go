package services

import (
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"uangsaku/internal/models"
	"uangsaku/internal/store"
)

// Alert levels, ordered by severity.
const (
	AlertSafe   = "safe"
	AlertWarn   = "warn"
	AlertDanger = "danger"
)

// warn thresholds differ between the global limit and category limits
const (
	globalWarnRatio   = 0.75
	categoryWarnRatio = 0.85
)

// GlobalAlertLabel labels the store-wide budget alert.
const GlobalAlertLabel = "Limit global"

// BudgetAlert reports how much of a configured limit the current month's
// expenses consume.
type BudgetAlert struct {
	Label string  `json:"label"`
	Limit float64 `json:"limit"`
	Used  float64 `json:"used"`
	Level string  `json:"level"`
}

// budgetService handles the global and per-category spending limits.
type budgetService struct {
	store *store.Store
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(st *store.Store) BudgetServicer {
	return &budgetService{store: st}
}

// SaveGlobalLimit upserts the store-wide spending limit.
func (s *budgetService) SaveGlobalLimit(amount float64) error {
	return s.upsert(models.GlobalLimit(amount))
}

// SaveCategoryLimit upserts the limit for one category. An empty category is
// a no-op.
func (s *budgetService) SaveCategoryLimit(category string, amount float64) error {
	if category == "" {
		return nil
	}
	return s.upsert(models.CategoryLimit(category, amount))
}

func (s *budgetService) upsert(limit models.BudgetLimit) error {
	record := limit.Record()
	return s.store.Write(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error
	})
}

// RemoveCategoryLimit deletes the limit for one category. Removing an absent
// limit is not an error.
func (s *budgetService) RemoveCategoryLimit(category string) error {
	return s.store.Write(func(tx *gorm.DB) error {
		return tx.Delete(&models.BudgetRecord{}, "id = ?", models.CategoryRecordID(category)).Error
	})
}

// GetBudgets reduces the budgets collection into its summary view. Rows with
// unrecognized keys are skipped.
func (s *budgetService) GetBudgets() (*models.BudgetSummary, error) {
	var records []models.BudgetRecord
	err := s.store.Read(func(tx *gorm.DB) error {
		return tx.Find(&records).Error
	})
	if err != nil {
		return nil, err
	}

	summary := &models.BudgetSummary{Categories: map[string]float64{}}
	for _, record := range records {
		limit, ok := record.Limit()
		if !ok {
			continue
		}
		if limit.IsGlobal() {
			summary.Global = limit.Amount
		} else {
			summary.Categories[limit.Category] = limit.Amount
		}
	}
	return summary, nil
}

// Clear removes every budget record.
func (s *budgetService) Clear() error {
	return s.store.Write(func(tx *gorm.DB) error {
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.BudgetRecord{}).Error
	})
}

// BuildBudgetAlerts computes alert levels from the current calendar month's
// expenses. The global alert is emitted only when a global limit is set;
// every configured category limit yields an alert, even a zero one (which
// can never leave "safe"). Category alerts are ordered by category name.
func BuildBudgetAlerts(transactions []models.Transaction, budgets models.BudgetSummary) []BudgetAlert {
	month := time.Now().UTC().Format("2006-01")

	var expenses []models.Transaction
	var totalExpense float64
	for _, txn := range transactions {
		if txn.Type == models.TransactionTypeExpense && strings.HasPrefix(txn.Date, month) {
			expenses = append(expenses, txn)
			totalExpense += txn.Amount
		}
	}

	var alerts []BudgetAlert
	if budgets.Global != 0 {
		alerts = append(alerts, BudgetAlert{
			Label: GlobalAlertLabel,
			Limit: budgets.Global,
			Used:  totalExpense,
			Level: alertLevel(totalExpense/budgets.Global, globalWarnRatio),
		})
	}

	categories := make([]string, 0, len(budgets.Categories))
	for category := range budgets.Categories {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		limit := budgets.Categories[category]
		var used float64
		for _, txn := range expenses {
			if txn.Category == category {
				used += txn.Amount
			}
		}
		ratio := 0.0
		if limit != 0 {
			ratio = used / limit
		}
		alerts = append(alerts, BudgetAlert{
			Label: category,
			Limit: limit,
			Used:  used,
			Level: alertLevel(ratio, categoryWarnRatio),
		})
	}

	return alerts
}

func alertLevel(ratio, warnAt float64) string {
	switch {
	case ratio >= 1:
		return AlertDanger
	case ratio >= warnAt:
		return AlertWarn
	default:
		return AlertSafe
	}
}
