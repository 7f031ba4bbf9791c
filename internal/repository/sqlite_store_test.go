package repository

import (
	"context"
	"testing"
	"time"

	"github.com/example/boardsync/internal/domain"
	"github.com/example/boardsync/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	return NewSQLiteStore(testutil.NewTestDB(t))
}

func TestSQLiteStore_SaveAndLoadItem(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	g := testutil.NewTestGroup("Column")
	require.NoError(t, store.SaveGroup(ctx, g))

	due := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	it := testutil.NewTestItem("Persisted task",
		testutil.WithGroup(g.ID),
		testutil.WithPriority(domain.PriorityHigh),
		testutil.WithDueDate(due),
		testutil.WithItemPosition(12, 34),
	)
	require.NoError(t, store.SaveItem(ctx, it))

	items, err := store.LoadItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	got := items[0]
	assert.Equal(t, it.ID, got.ID)
	assert.Equal(t, "Persisted task", got.Title)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	require.NotNil(t, got.GroupID)
	assert.Equal(t, g.ID, *got.GroupID)
	require.NotNil(t, got.DueDate)
	assert.True(t, due.Equal(*got.DueDate))
	assert.Equal(t, 12.0, got.X)
	assert.Equal(t, 34.0, got.Y)
	assert.False(t, got.Deleted)
}

func TestSQLiteStore_SaveItemUpserts(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	it := testutil.NewTestItem("Original")
	require.NoError(t, store.SaveItem(ctx, it))

	it.Title = "Edited"
	it.Status = domain.ItemDone
	it.UpdatedAt = it.UpdatedAt.Add(time.Minute)
	require.NoError(t, store.SaveItem(ctx, it))

	items, err := store.LoadItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Edited", items[0].Title)
	assert.Equal(t, domain.ItemDone, items[0].Status)
}

func TestSQLiteStore_SaveAndLoadGroup(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	parent := testutil.NewTestGroup("Parent")
	require.NoError(t, store.SaveGroup(ctx, parent))

	child := testutil.NewTestGroup("Child",
		testutil.WithParent(parent.ID),
		testutil.WithGeometry(5, 6, 100, 80),
		testutil.WithPositionVersion(7),
	)
	require.NoError(t, store.SaveGroup(ctx, child))

	groups, err := store.LoadGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	var got *domain.Group
	for i := range groups {
		if groups[i].ID == child.ID {
			got = &groups[i]
		}
	}
	require.NotNil(t, got)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, parent.ID, *got.ParentID)
	assert.Equal(t, int64(7), got.PositionVersion)
	assert.Equal(t, 100.0, got.W)
}

func TestSQLiteStore_DeleteNotFound(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.DeleteItem(ctx, "missing"), ErrNotFound)
	assert.ErrorIs(t, store.DeleteGroup(ctx, "missing"), ErrNotFound)
}

func TestSQLiteStore_DeleteGroupUnassignsItems(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	g := testutil.NewTestGroup("Doomed")
	require.NoError(t, store.SaveGroup(ctx, g))
	it := testutil.NewTestItem("Member", testutil.WithGroup(g.ID))
	require.NoError(t, store.SaveItem(ctx, it))

	require.NoError(t, store.DeleteGroup(ctx, g.ID))

	items, err := store.LoadItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].GroupID, "FK sets the owning group to NULL")
}

func TestSQLiteStore_SaveSnapshot(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	g := testutil.NewTestGroup("Column")
	it := testutil.NewTestItem("Task", testutil.WithGroup(g.ID))
	require.NoError(t, store.SaveGroup(ctx, g))
	require.NoError(t, store.SaveItem(ctx, it))

	// Restore an older shape: item title rolled back, group moved back.
	snap := domain.Snapshot{
		Items:  []domain.Item{*it},
		Groups: []domain.Group{*g},
	}
	snap.Items[0].Title = "Rolled back"
	snap.Groups[0].X = 99

	require.NoError(t, store.SaveSnapshot(ctx, snap))

	items, err := store.LoadItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Rolled back", items[0].Title)

	groups, err := store.LoadGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, 99.0, groups[0].X)
}

func TestSQLiteStore_ChangesSince(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	watermark := time.Now().UTC().Add(-time.Hour)

	old := testutil.NewTestItem("Old news")
	old.CreatedAt = watermark.Add(-time.Hour)
	old.UpdatedAt = watermark.Add(-time.Hour)
	require.NoError(t, store.SaveItem(ctx, old))

	created := testutil.NewTestItem("Created after watermark")
	require.NoError(t, store.SaveItem(ctx, created))

	tombstone := testutil.NewTestItem("Tombstone", testutil.WithDeleted())
	require.NoError(t, store.SaveItem(ctx, tombstone))

	g := testutil.NewTestGroup("Moved group")
	g.CreatedAt = watermark.Add(-time.Hour)
	require.NoError(t, store.SaveGroup(ctx, g))

	changes, err := store.ChangesSince(ctx, watermark)
	require.NoError(t, err)
	require.Len(t, changes, 3, "row older than the watermark is not reported")

	ops := make(map[string]domain.ChangeOp)
	for _, c := range changes {
		ops[c.EntityID()] = c.Operation()
	}
	assert.Equal(t, domain.ChangeCreate, ops[created.ID])
	assert.Equal(t, domain.ChangeDelete, ops[tombstone.ID])
	assert.Equal(t, domain.ChangeUpdate, ops[g.ID])
	assert.NotContains(t, ops, old.ID)
}
