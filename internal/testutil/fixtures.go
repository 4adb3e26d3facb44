package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"uangsaku/internal/models"
	"uangsaku/internal/store"
)

// CreateTestTransaction seeds a transaction with the given type, amount,
// date, and category.
func CreateTestTransaction(t *testing.T, st *store.Store, txnType models.TransactionType, amount float64, date, category string) *models.Transaction {
	t.Helper()

	txn := &models.Transaction{
		Type:      txnType,
		Amount:    amount,
		Date:      date,
		Category:  category,
		Note:      fmt.Sprintf("test note %d", dbCounter.Add(1)),
		CreatedAt: time.Now().UTC(),
	}
	err := st.Write(func(tx *gorm.DB) error {
		return tx.Create(txn).Error
	})
	if err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return txn
}

// CreateTestGoal seeds a goal with the given target, saved amount, and
// deadline.
func CreateTestGoal(t *testing.T, st *store.Store, amount, saved float64, deadline string) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		Name:      fmt.Sprintf("Test Goal %d", dbCounter.Add(1)),
		Amount:    amount,
		Saved:     saved,
		Deadline:  deadline,
		CreatedAt: time.Now().UTC(),
	}
	err := st.Write(func(tx *gorm.DB) error {
		return tx.Create(goal).Error
	})
	if err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// ISODate formats a date offset days from now in the store's date format.
func ISODate(offsetDays int) string {
	return time.Now().UTC().AddDate(0, 0, offsetDays).Format("2006-01-02")
}

// CurrentMonthDate returns the first day of the current month, guaranteed to
// fall inside the current month bucket.
func CurrentMonthDate() string {
	return time.Now().UTC().Format("2006-01") + "-01"
}
