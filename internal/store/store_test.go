package store

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apperrors "uangsaku/internal/errors"
	"uangsaku/internal/models"
)

var dbCounter atomic.Int64

func openTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:storetest%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	s, err := New(db)
	if err != nil {
		t.Fatalf("failed to provision store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		t.Cleanup(func() { _ = Shutdown() })

		path := filepath.Join(t.TempDir(), "test.db")
		first, err := Open(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := Open(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first != second {
			t.Error("expected repeated Open to return the same store")
		}
	})

	t.Run("reopens_after_shutdown", func(t *testing.T) {
		t.Cleanup(func() { _ = Shutdown() })

		path := filepath.Join(t.TempDir(), "test.db")
		first, err := Open(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := Shutdown(); err != nil {
			t.Fatalf("shutdown failed: %v", err)
		}
		second, err := Open(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first == second {
			t.Error("expected a fresh store after shutdown")
		}
	})

	t.Run("unavailable_database", func(t *testing.T) {
		t.Cleanup(func() { _ = Shutdown() })

		// A directory path cannot be opened as a database file.
		_, err := Open(t.TempDir())
		if err == nil {
			t.Fatal("expected an error")
		}
		appErr, ok := err.(*apperrors.AppError)
		if !ok {
			t.Fatalf("expected *AppError, got %T", err)
		}
		if appErr.Code != "STORE_UNAVAILABLE" {
			t.Errorf("expected STORE_UNAVAILABLE, got %s", appErr.Code)
		}
	})
}

func TestNew(t *testing.T) {
	t.Run("provisions_all_collections", func(t *testing.T) {
		s := openTestStore(t)

		err := s.Write(func(tx *gorm.DB) error {
			if err := tx.Create(&models.Transaction{Type: models.TransactionTypeExpense, Date: "2024-01-01", Category: "Lainnya"}).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.BudgetRecord{ID: "global", Amount: 100}).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.Goal{Name: "g", Deadline: "2024-01-01"}).Error; err != nil {
				return err
			}
			return tx.Create(&models.Setting{Key: "theme", Value: `"auto"`}).Error
		})
		if err != nil {
			t.Fatalf("expected all collections writable: %v", err)
		}
	})
}

func TestWrite(t *testing.T) {
	t.Run("rolls_back_on_error", func(t *testing.T) {
		s := openTestStore(t)

		err := s.Write(func(tx *gorm.DB) error {
			if err := tx.Create(&models.Goal{Name: "partial", Deadline: "2024-01-01"}).Error; err != nil {
				return err
			}
			return fmt.Errorf("boom")
		})
		if err == nil {
			t.Fatal("expected an error")
		}
		appErr, ok := err.(*apperrors.AppError)
		if !ok || appErr.Code != "TRANSACTION_ABORTED" {
			t.Fatalf("expected TRANSACTION_ABORTED, got %v", err)
		}

		var count int64
		readErr := s.Read(func(tx *gorm.DB) error {
			return tx.Model(&models.Goal{}).Count(&count).Error
		})
		if readErr != nil {
			t.Fatalf("unexpected read error: %v", readErr)
		}
		if count != 0 {
			t.Errorf("expected rollback to discard the write, found %d goals", count)
		}
	})

	t.Run("app_errors_keep_their_code", func(t *testing.T) {
		s := openTestStore(t)

		err := s.Write(func(tx *gorm.DB) error {
			return apperrors.ErrGoalNotFound
		})
		appErr, ok := err.(*apperrors.AppError)
		if !ok || appErr.Code != "GOAL_NOT_FOUND" {
			t.Fatalf("expected GOAL_NOT_FOUND to pass through, got %v", err)
		}
	})

	t.Run("commits_on_success", func(t *testing.T) {
		s := openTestStore(t)

		err := s.Write(func(tx *gorm.DB) error {
			return tx.Create(&models.Goal{Name: "kept", Deadline: "2024-01-01"}).Error
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var count int64
		_ = s.Read(func(tx *gorm.DB) error {
			return tx.Model(&models.Goal{}).Count(&count).Error
		})
		if count != 1 {
			t.Errorf("expected 1 goal, got %d", count)
		}
	})
}
