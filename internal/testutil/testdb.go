package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nexusai/nexus-crm/internal/db"
)

// NewTestDB opens an in-memory CRM database: schema migrated, foreign keys
// on, the single KPI row present. Closed when the test ends.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	return openTestDB(t, ":memory:")
}

// NewTestFileDB is NewTestDB on a file under t.TempDir, for tests that need
// WAL mode or a pool of more than one connection.
func NewTestFileDB(t testing.TB) *sql.DB {
	t.Helper()
	return openTestDB(t, filepath.Join(t.TempDir(), "nexus.db"))
}

func openTestDB(t testing.TB, path string) *sql.DB {
	database, err := db.OpenDB(path)
	require.NoError(t, err, "open %s", path)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) *db.SQLiteUnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
