package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wedgeworks/printdesk/internal/domain/project"
)

// ErrNotFound is returned when a requested index row doesn't exist
var ErrNotFound = errors.New("not found")

// IndexRepository persists one summary row per project record
type IndexRepository struct {
	db *DB
}

// NewIndexRepository creates a new IndexRepository
func NewIndexRepository(db *DB) *IndexRepository {
	return &IndexRepository{db: db}
}

// Upsert inserts or replaces the row for a project
func (r *IndexRepository) Upsert(ctx context.Context, row project.Summary) error {
	query := `
		INSERT INTO project_index (id, status, responsible, last_modified, storage_key)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			responsible = excluded.responsible,
			last_modified = excluded.last_modified,
			storage_key = excluded.storage_key
	`

	_, err := r.db.ExecContext(ctx, query,
		row.ID,
		row.Status,
		row.Responsible,
		row.LastModified,
		row.StorageKey,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert index row: %w", err)
	}

	return nil
}

// Get retrieves the index row for a project by ID
func (r *IndexRepository) Get(ctx context.Context, id string) (project.Summary, error) {
	query := `
		SELECT id, status, responsible, last_modified, storage_key
		FROM project_index
		WHERE id = ?
	`

	var row project.Summary
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&row.ID,
		&row.Status,
		&row.Responsible,
		&row.LastModified,
		&row.StorageKey,
	)

	if err == sql.ErrNoRows {
		return project.Summary{}, ErrNotFound
	}
	if err != nil {
		return project.Summary{}, fmt.Errorf("failed to get index row: %w", err)
	}

	return row, nil
}

// List returns all index rows, newest first, optionally filtered by status.
// An empty status means no filter.
func (r *IndexRepository) List(ctx context.Context, status project.Status) ([]project.Summary, error) {
	query := `
		SELECT id, status, responsible, last_modified, storage_key
		FROM project_index
		WHERE ? = '' OR status = ?
		ORDER BY last_modified DESC, id
	`

	rows, err := r.db.QueryContext(ctx, query, status, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list index rows: %w", err)
	}
	defer rows.Close()

	var summaries []project.Summary
	for rows.Next() {
		var row project.Summary
		err := rows.Scan(
			&row.ID,
			&row.Status,
			&row.Responsible,
			&row.LastModified,
			&row.StorageKey,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan index row: %w", err)
		}
		summaries = append(summaries, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating index rows: %w", err)
	}

	return summaries, nil
}

// Replace swaps the full index contents for the given rows in one
// transaction. Used by rebuild after scanning the record blobs.
func (r *IndexRepository) Replace(ctx context.Context, rows []project.Summary) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM project_index`); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}

	insert := `
		INSERT INTO project_index (id, status, responsible, last_modified, storage_key)
		VALUES (?, ?, ?, ?, ?)
	`
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, insert,
			row.ID, row.Status, row.Responsible, row.LastModified, row.StorageKey,
		); err != nil {
			return fmt.Errorf("failed to insert index row %s: %w", row.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Count returns the number of index rows
func (r *IndexRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM project_index`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count index rows: %w", err)
	}
	return count, nil
}
