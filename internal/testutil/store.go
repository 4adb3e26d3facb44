// Package testutil provides test helpers for setting up in-memory stores,
// creating fixtures, and making assertions.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"uangsaku/internal/store"
)

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

// SetupTestStore creates an isolated in-memory SQLite store with the full
// schema provisioned.
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	st, err := store.New(db)
	if err != nil {
		t.Fatalf("failed to provision test store: %v", err)
	}
	return st
}

// TeardownTestStore closes the underlying database connection.
func TeardownTestStore(t *testing.T, st *store.Store) {
	t.Helper()

	if err := st.Close(); err != nil {
		t.Errorf("failed to close test store: %v", err)
	}
}
