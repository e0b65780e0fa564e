package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.Migrate()
	require.NoError(t, err, "failed to create schema")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrate verifies that the schema is created and is idempotent
func TestMigrate(t *testing.T) {
	db := NewTestDB(t)

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", "project_index").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count, "project_index table not found")

	// Running migrations twice must not fail.
	require.NoError(t, db.Migrate())
}
