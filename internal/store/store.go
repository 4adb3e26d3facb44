// Package store implements the local object store engine: one SQLite
// database holding the four record collections, opened once per process
// and accessed through short transactions.
package store

import (
	"errors"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apperrors "uangsaku/internal/errors"
	"uangsaku/internal/models"
)

// collections lists every model provisioned at schema version 1. The
// transaction collection carries secondary indexes on date, type, and
// category (declared on the model's gorm tags).
var collections = []interface{}{
	&models.Transaction{},
	&models.BudgetRecord{},
	&models.Goal{},
	&models.Setting{},
}

// Store wraps the shared database handle. All repository reads and writes
// go through Read/Write so that each logical operation is one transaction.
type Store struct {
	db *gorm.DB
}

var (
	mu           sync.Mutex
	processStore *Store
)

// Open returns the process-wide store, creating the database file and
// provisioning the schema on first call. Repeated calls return the same
// store regardless of path. Failure to open or provision yields
// ErrStoreUnavailable.
func Open(path string) (*Store, error) {
	mu.Lock()
	defer mu.Unlock()

	if processStore != nil {
		return processStore, nil
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	s, err := New(db)
	if err != nil {
		return nil, err
	}

	processStore = s
	return processStore, nil
}

// New provisions the schema on an already-open database and returns a store
// that is not registered process-wide. Tests use this with in-memory SQLite.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(collections...); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return &Store{db: db}, nil
}

// Shutdown closes the process-wide store and clears the handle so a later
// Open provisions a fresh one.
func Shutdown() error {
	mu.Lock()
	defer mu.Unlock()

	if processStore == nil {
		return nil
	}

	s := processStore
	processStore = nil
	return s.Close()
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Read runs fn inside one transaction intended for reads only.
func (s *Store) Read(fn func(tx *gorm.DB) error) error {
	return s.run(fn)
}

// Write runs fn inside one transaction. Either every write in fn becomes
// visible or, on any error, none do.
func (s *Store) Write(fn func(tx *gorm.DB) error) error {
	return s.run(fn)
}

func (s *Store) run(fn func(tx *gorm.DB) error) error {
	err := s.db.Transaction(fn)
	if err == nil {
		return nil
	}

	// AppErrors raised inside fn (e.g. a not-found check) keep their code;
	// anything else means the transaction itself failed.
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Wrap(apperrors.ErrTransactionAborted, err)
}
