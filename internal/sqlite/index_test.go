package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wedgeworks/printdesk/internal/domain/project"
)

func testRow(id string, status project.Status) project.Summary {
	return project.Summary{
		ID:           id,
		Status:       status,
		Responsible:  "alice",
		LastModified: time.Now().UTC(),
		StorageKey:   id + ".json",
	}
}

func TestIndexRepository_UpsertAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewIndexRepository(db)
	ctx := context.Background()

	row := testRow("p1", project.StatusReceived)
	require.NoError(t, repo.Upsert(ctx, row))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "p1", got.ID)
	require.Equal(t, project.StatusReceived, got.Status)
	require.Equal(t, "alice", got.Responsible)
	require.Equal(t, "p1.json", got.StorageKey)
	require.WithinDuration(t, row.LastModified, got.LastModified, time.Second)

	// Upsert with the same id replaces the row.
	row.Status = project.StatusShipped
	require.NoError(t, repo.Upsert(ctx, row))
	got, err = repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, project.StatusShipped, got.Status)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestIndexRepository_GetMissing(t *testing.T) {
	db := NewTestDB(t)
	repo := NewIndexRepository(db)

	_, err := repo.Get(context.Background(), "nonexistent")
	require.Equal(t, ErrNotFound, err)
}

func TestIndexRepository_ListFiltersByStatus(t *testing.T) {
	db := NewTestDB(t)
	repo := NewIndexRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testRow("p1", project.StatusReceived)))
	require.NoError(t, repo.Upsert(ctx, testRow("p2", project.StatusInProgress)))
	require.NoError(t, repo.Upsert(ctx, testRow("p3", project.StatusReceived)))

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	received, err := repo.List(ctx, project.StatusReceived)
	require.NoError(t, err)
	require.Len(t, received, 2)
	for _, row := range received {
		require.Equal(t, project.StatusReceived, row.Status)
	}

	shipped, err := repo.List(ctx, project.StatusShipped)
	require.NoError(t, err)
	require.Empty(t, shipped)
}

func TestIndexRepository_Replace(t *testing.T) {
	db := NewTestDB(t)
	repo := NewIndexRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testRow("old1", project.StatusReceived)))
	require.NoError(t, repo.Upsert(ctx, testRow("old2", project.StatusReceived)))

	replacement := []project.Summary{
		testRow("new1", project.StatusInProgress),
		testRow("new2", project.StatusOnHold),
		testRow("new3", project.StatusShipped),
	}
	require.NoError(t, repo.Replace(ctx, replacement))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	_, err = repo.Get(ctx, "old1")
	require.Equal(t, ErrNotFound, err)

	got, err := repo.Get(ctx, "new2")
	require.NoError(t, err)
	require.Equal(t, project.StatusOnHold, got.Status)
}

func TestIndexRepository_ReplaceWithEmpty(t *testing.T) {
	db := NewTestDB(t)
	repo := NewIndexRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testRow("p1", project.StatusReceived)))
	require.NoError(t, repo.Replace(ctx, nil))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}
