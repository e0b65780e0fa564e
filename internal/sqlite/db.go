package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DB{db}, nil
}

// Migrate creates the index schema if it does not exist yet. The index is
// rebuildable from record blobs, so there is no versioned migration history.
func (db *DB) Migrate() error {
	schema := `
CREATE TABLE IF NOT EXISTS project_index (
    id TEXT PRIMARY KEY,
    status TEXT NOT NULL,
    responsible TEXT NOT NULL DEFAULT '',
    last_modified TIMESTAMP NOT NULL,
    storage_key TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_project_status ON project_index(status);
`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
