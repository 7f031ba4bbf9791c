package engine

import (
	"context"
	"testing"
	"time"

	"github.com/example/boardsync/internal/domain"
	"github.com/example/boardsync/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRemote_LockSuppressesAllEvents(t *testing.T) {
	te := setupEngine(t)
	ctx := context.Background()

	incoming := testutil.NewTestItem("From another session")
	te.eng.SetLock(domain.LockDrag, true)

	te.eng.ApplyRemote(ctx, domain.ItemChange{Op: domain.ChangeCreate, Item: *incoming})
	_, err := te.items.GetByID(ctx, incoming.ID)
	assert.Error(t, err, "no repository write while a gesture lock is active")

	// Clearing the lock lets an identical event through.
	te.eng.SetLock(domain.LockDrag, false)
	te.eng.ApplyRemote(ctx, domain.ItemChange{Op: domain.ChangeCreate, Item: *incoming})
	got, err := te.items.GetByID(ctx, incoming.ID)
	require.NoError(t, err)
	assert.Equal(t, "From another session", got.Title)
}

func TestApplyRemote_PendingWriteSuppressesUntilResolved(t *testing.T) {
	te := setupEngine(t)
	ctx := context.Background()

	release := make(chan struct{})
	local := testutil.NewTestItem("Local edit")
	err := te.eng.Perform(ctx, Operation{
		Name: "slow local edit",
		IDs:  []string{local.ID},
		Apply: func(ctx context.Context) error {
			return te.items.Put(ctx, *local)
		},
		Persist: func(ctx context.Context) error {
			<-release
			return nil
		},
	})
	require.NoError(t, err)

	// A remote edit for the same id arrives mid-flight: dropped, not merged.
	remote := *local
	remote.Title = "Remote overwrite"
	te.eng.ApplyRemote(ctx, domain.ItemChange{Op: domain.ChangeUpdate, Item: remote})
	got, err := te.items.GetByID(ctx, local.ID)
	require.NoError(t, err)
	assert.Equal(t, "Local edit", got.Title)

	// Once persistence resolves, the next identical event is applied.
	close(release)
	te.eng.Flush()
	te.eng.ApplyRemote(ctx, domain.ItemChange{Op: domain.ChangeUpdate, Item: remote})
	got, err = te.items.GetByID(ctx, local.ID)
	require.NoError(t, err)
	assert.Equal(t, "Remote overwrite", got.Title)
}

func TestApplyRemote_GroupVersionResolution(t *testing.T) {
	te := setupEngine(t)
	ctx := context.Background()

	base := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	local := testutil.NewTestGroup("Board column",
		testutil.WithPositionVersion(3),
		testutil.WithGroupUpdatedAt(base),
	)
	require.NoError(t, te.groups.Put(ctx, *local))

	apply := func(version int64, updatedAt time.Time) {
		remote := local.Clone()
		remote.Name = "Moved remotely"
		remote.PositionVersion = version
		remote.UpdatedAt = updatedAt
		te.eng.ApplyRemote(ctx, domain.GroupChange{Op: domain.ChangeUpdate, Group: remote})
	}
	currentName := func() string {
		g, err := te.groups.GetByID(ctx, local.ID)
		require.NoError(t, err)
		return g.Name
	}

	// Version 2 < 3: stale, dropped.
	apply(2, base.Add(time.Hour))
	assert.Equal(t, "Board column", currentName())

	// Version 3 with an older timestamp: dropped.
	apply(3, base.Add(-time.Hour))
	assert.Equal(t, "Board column", currentName())

	// Version 3 with a newer timestamp: applied.
	apply(3, base.Add(time.Hour))
	assert.Equal(t, "Moved remotely", currentName())

	// Reset, then version 4 beats any local timestamp.
	require.NoError(t, te.groups.Put(ctx, *local))
	apply(4, base.Add(-24*time.Hour))
	assert.Equal(t, "Moved remotely", currentName())
}

func TestApplyRemote_ItemsHaveNoVersionCheck(t *testing.T) {
	te := setupEngine(t)
	ctx := context.Background()

	local := testutil.NewTestItem("Fresh local",
		testutil.WithItemUpdatedAt(time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)))
	require.NoError(t, te.items.Put(ctx, *local))

	// An older remote item still wins: items resolve by suppression only.
	stale := *local
	stale.Title = "Older remote"
	stale.UpdatedAt = local.UpdatedAt.Add(-time.Hour)
	te.eng.ApplyRemote(ctx, domain.ItemChange{Op: domain.ChangeUpdate, Item: stale})

	got, err := te.items.GetByID(ctx, local.ID)
	require.NoError(t, err)
	assert.Equal(t, "Older remote", got.Title)
}

func TestApplyRemote_DeleteInsideGraceWindowDropped(t *testing.T) {
	te := setupEngine(t)
	ctx := context.Background()

	it := testutil.NewTestItem("Survivor")
	require.NoError(t, te.items.Put(ctx, *it))

	// 2 seconds after session start, inside the 5 second window.
	te.clock.Advance(2 * time.Second)
	te.eng.ApplyRemote(ctx, domain.ItemChange{Op: domain.ChangeDelete, Item: domain.Item{ID: it.ID}})

	_, err := te.items.GetByID(ctx, it.ID)
	assert.NoError(t, err, "delete within the grace window is dropped")
}

func TestApplyRemote_DeleteAfterGraceWindowApplied(t *testing.T) {
	te := setupEngine(t)
	ctx := context.Background()

	it := testutil.NewTestItem("Doomed")
	require.NoError(t, te.items.Put(ctx, *it))

	te.clock.Advance(6 * time.Second)
	te.eng.ApplyRemote(ctx, domain.ItemChange{Op: domain.ChangeDelete, Item: domain.Item{ID: it.ID}})

	_, err := te.items.GetByID(ctx, it.ID)
	assert.Error(t, err, "delete after the grace window is applied")
}

func TestApplyRemote_SoftDeleteUpdateRespectsGraceWindow(t *testing.T) {
	te := setupEngine(t)
	ctx := context.Background()

	it := testutil.NewTestItem("Soft target")
	require.NoError(t, te.items.Put(ctx, *it))

	tombstone := *it
	tombstone.Deleted = true

	te.clock.Advance(2 * time.Second)
	te.eng.ApplyRemote(ctx, domain.ItemChange{Op: domain.ChangeUpdate, Item: tombstone})
	got, err := te.items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.False(t, got.Deleted, "soft-delete update inside the window is dropped")

	te.clock.Advance(4 * time.Second)
	te.eng.ApplyRemote(ctx, domain.ItemChange{Op: domain.ChangeUpdate, Item: tombstone})
	got, err = te.items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.True(t, got.Deleted)
}

func TestApplyRemote_GroupDeleteAfterGraceWindow(t *testing.T) {
	te := setupEngine(t)
	ctx := context.Background()

	g := testutil.NewTestGroup("Removable")
	require.NoError(t, te.groups.Put(ctx, *g))

	te.clock.Advance(6 * time.Second)
	te.eng.ApplyRemote(ctx, domain.GroupChange{Op: domain.ChangeDelete, Group: domain.Group{ID: g.ID}})

	_, err := te.groups.GetByID(ctx, g.ID)
	assert.Error(t, err)
}

func TestApplyRemote_NeverCreatesHistory(t *testing.T) {
	te := setupEngine(t)
	ctx := context.Background()

	te.eng.ApplyRemote(ctx, domain.ItemChange{
		Op:   domain.ChangeCreate,
		Item: *testutil.NewTestItem("Remote origin"),
	})

	assert.False(t, te.eng.CanUndo(), "remote edits are not locally undoable")
}

func TestApplyRemote_CollectionChangeTriggersRefresh(t *testing.T) {
	te := setupEngine(t)

	before := te.refreshed.Load()
	te.eng.ApplyRemote(context.Background(), domain.CollectionChange{Op: domain.ChangeUpdate, ID: "board-1"})
	assert.Equal(t, before+1, te.refreshed.Load())
}

func TestApplyRemote_DroppedBeforeInitialLoad(t *testing.T) {
	te := newEngineWithoutBootstrap(t)
	ctx := context.Background()

	incoming := testutil.NewTestItem("Too early")
	te.eng.ApplyRemote(ctx, domain.ItemChange{Op: domain.ChangeCreate, Item: *incoming})

	_, err := te.items.GetByID(ctx, incoming.ID)
	assert.Error(t, err)
}

func TestApplyRemote_MalformedPayloads(t *testing.T) {
	te := setupEngine(t)
	ctx := context.Background()

	// Neither may panic or write anything.
	te.eng.ApplyRemote(ctx, nil)
	te.eng.ApplyRemote(ctx, domain.ItemChange{Op: domain.ChangeUpdate})

	items, err := te.items.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
