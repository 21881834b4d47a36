package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/db"
)

// NewTestStore creates an in-memory SQLite store with the bootstrap schema
// applied. Tables named in manual are created without generated ids.
// The store is closed when the test completes.
func NewTestStore(t *testing.T, manual ...string) *db.Store {
	t.Helper()
	return openStore(t, ":memory:", manual)
}

// NewFileTestStore creates a file-backed SQLite store in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in
// the pool, which is required to test real concurrent writers.
func NewFileTestStore(t *testing.T, manual ...string) *db.Store {
	t.Helper()
	return openStore(t, filepath.Join(t.TempDir(), "concurrent_test.db"), manual)
}

func openStore(t *testing.T, path string, manual []string) *db.Store {
	t.Helper()
	ctx := context.Background()
	store, err := db.OpenSQLite(ctx, path, 0)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	if err := db.Migrate(ctx, store, manual); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return store
}

// NewTestUoW creates a UnitOfWork backed by the given test store.
func NewTestUoW(store *db.Store) db.UnitOfWork {
	return store.UnitOfWork()
}
