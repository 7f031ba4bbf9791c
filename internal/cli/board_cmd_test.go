package cli

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/example/boardsync/internal/domain"
	"github.com/example/boardsync/internal/engine"
	"github.com/example/boardsync/internal/repository"
	"github.com/example/boardsync/internal/service"
	"github.com/example/boardsync/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	store := repository.NewSQLiteStore(database)
	items := repository.NewMemoryItemRepo()
	groups := repository.NewMemoryGroupRepo()
	eng := engine.New(engine.Config{Items: items, Groups: groups, Store: store})
	require.NoError(t, eng.Bootstrap(context.Background()))
	t.Cleanup(eng.Flush)

	return &App{
		Board:   service.NewBoardService(eng, items, groups, store),
		Engine:  eng,
		Store:   store,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		NoColor: true,
	}
}

func TestRenderBoard_GroupsAndLooseItems(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()

	g := &domain.Group{Name: "Sprint"}
	require.NoError(t, app.Board.CreateGroup(ctx, g))

	member := &domain.Item{Title: "Grouped task"}
	require.NoError(t, app.Board.CreateItem(ctx, member))
	require.NoError(t, app.Board.AssignItem(ctx, member.ID, &g.ID))

	loose := &domain.Item{Title: "Floating task"}
	require.NoError(t, app.Board.CreateItem(ctx, loose))

	out, err := renderBoard(ctx, app)
	require.NoError(t, err)

	assert.Contains(t, out, "SPRINT")
	assert.Contains(t, out, "Grouped task")
	assert.Contains(t, out, "UNGROUPED")
	assert.Contains(t, out, "Floating task")
}

func TestRenderBoard_EmptyGroup(t *testing.T) {
	app := setupApp(t)
	ctx := context.Background()

	require.NoError(t, app.Board.CreateGroup(ctx, &domain.Group{Name: "Hollow"}))

	out, err := renderBoard(ctx, app)
	require.NoError(t, err)
	assert.Contains(t, out, "(empty)")
}
