// Package testutil provides shared helpers for tests that need a real
// dataset. The SQLite driver is pure Go, so unlike a client-server
// database no environment setup is needed: each test gets its own dataset
// file under t.TempDir.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/antarctica/bas-air-unit-network-dataset/internal/repo"
)

// NewDB creates a fresh network dataset in a temporary directory, applies
// all migrations, and returns an open handle. The handle is closed and the
// file removed automatically when the test finishes.
func NewDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.gpkg")

	handle, err := repo.Open(path)
	if err != nil {
		t.Fatalf("testutil.NewDB: open: %v", err)
	}
	t.Cleanup(func() { handle.Close() })

	if err := repo.Migrate(handle); err != nil {
		t.Fatalf("testutil.NewDB: migrate: %v", err)
	}
	return handle
}
