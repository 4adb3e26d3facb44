package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "uangsaku/internal/errors"
	"uangsaku/internal/models"
	"uangsaku/internal/store"
)

// transactionService handles transaction record operations.
type transactionService struct {
	store *store.Store
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(st *store.Store) TransactionServicer {
	return &transactionService{store: st}
}

// Add persists a new transaction. Missing input fields take the documented
// defaults: expense, amount 0, today's date, the fallback category, empty
// note, created now.
func (s *transactionService) Add(input TransactionInput) (*models.Transaction, error) {
	txn := &models.Transaction{
		Type:      input.Type,
		Amount:    input.Amount,
		Date:      input.Date,
		Category:  input.Category,
		Note:      input.Note,
		CreatedAt: input.CreatedAt,
	}
	if txn.Type == "" {
		txn.Type = models.TransactionTypeExpense
	}
	if txn.Date == "" {
		txn.Date = today()
	}
	if txn.Category == "" {
		txn.Category = models.FallbackCategory
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}

	err := s.store.Write(func(tx *gorm.DB) error {
		return tx.Create(txn).Error
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// Get returns the transaction with the given id.
func (s *transactionService) Get(id uint) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.store.Read(func(tx *gorm.DB) error {
		if err := tx.First(&txn, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTransactionNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// Update overlays changes on the stored record and writes the merged record
// back wholesale. The id never changes. Returns ErrTransactionNotFound if no
// record with the id exists; the read and the write are separate store
// transactions.
func (s *transactionService) Update(id uint, changes TransactionChanges) (*models.Transaction, error) {
	txn, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if changes.Type != nil {
		txn.Type = *changes.Type
	}
	if changes.Amount != nil {
		txn.Amount = *changes.Amount
	}
	if changes.Date != nil {
		txn.Date = *changes.Date
	}
	if changes.Category != nil {
		txn.Category = *changes.Category
	}
	if changes.Note != nil {
		txn.Note = *changes.Note
	}

	err = s.store.Write(func(tx *gorm.DB) error {
		return tx.Save(txn).Error
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// Delete removes the transaction with the given id. Deleting an absent id is
// not an error.
func (s *transactionService) Delete(id uint) error {
	return s.store.Write(func(tx *gorm.DB) error {
		return tx.Delete(&models.Transaction{}, id).Error
	})
}

// List returns transactions matching every present filter, ordered by date
// descending with ties broken by id descending. Date bounds compare the ISO
// strings directly, which is valid for the fixed-width format.
func (s *transactionService) List(filter TransactionFilter) ([]models.Transaction, error) {
	var items []models.Transaction
	err := s.store.Read(func(tx *gorm.DB) error {
		q := tx.Model(&models.Transaction{})
		if filter.StartDate != "" {
			q = q.Where("date >= ?", filter.StartDate)
		}
		if filter.EndDate != "" {
			q = q.Where("date <= ?", filter.EndDate)
		}
		if filter.Category != "" && filter.Category != CategoryAll {
			q = q.Where("category = ?", filter.Category)
		}
		if filter.Query != "" {
			pattern := "%" + escapeLike(strings.ToLower(filter.Query)) + "%"
			q = q.Where("LOWER(note) LIKE ? ESCAPE '\\'", pattern)
		}
		return q.Order("date DESC, id DESC").Find(&items).Error
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Clear removes every transaction.
func (s *transactionService) Clear() error {
	return s.store.Write(func(tx *gorm.DB) error {
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Transaction{}).Error
	})
}

// escapeLike neutralizes LIKE wildcards so note search is a plain substring
// match.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// today returns the current calendar date as an ISO string.
func today() string {
	return time.Now().UTC().Format("2006-01-02")
}
