// Package engine is the optimistic synchronization and history core. It
// decides, for every local and remote mutation, whether it is safe to apply
// and keeps the undo/redo history consistent with live state while edits
// from other sessions interleave with local ones.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/example/boardsync/internal/domain"
	"github.com/example/boardsync/internal/repository"
)

// DefaultGraceWindow is how long after session start remote delete events
// are dropped. A session that has not finished its initial load cannot tell
// "deleted before I loaded" from "stale notification racing my own load";
// the window turns that into a bounded startup blackout instead of data loss.
const DefaultGraceWindow = 5 * time.Second

// Store is the backing persistence consumed by the engine: bulk load at
// session start and bulk save when a restored snapshot is repersisted.
// Per-operation persistence travels inside each Operation instead.
type Store interface {
	LoadItems(ctx context.Context) ([]domain.Item, error)
	LoadGroups(ctx context.Context) ([]domain.Group, error)
	SaveSnapshot(ctx context.Context, snap domain.Snapshot) error
}

// Config wires an Engine. Items, Groups and Store are required; everything
// else has a usable default.
type Config struct {
	Items  repository.ItemRepo
	Groups repository.GroupRepo
	Store  Store

	Logger          *slog.Logger
	HistoryCapacity int
	GraceWindow     time.Duration

	// Now overrides the clock, for tests.
	Now func() time.Time

	// Refresh is called after an accepted remote change or a finished
	// restore so derived caches and views can recompute.
	Refresh func()
}

// Engine owns the history manager, pending-write registry and lock gate,
// and is the single entry point for undoable local mutations and for
// inbound remote changes. It is constructed once at the application root
// and passed by reference; there is no ambient global instance.
type Engine struct {
	items  repository.ItemRepo
	groups repository.GroupRepo
	store  Store

	history *History
	pending *PendingWrites
	locks   *GestureLocks

	logger  *slog.Logger
	grace   time.Duration
	now     func() time.Time
	refresh func()

	sessionStart time.Time
	loaded       atomic.Bool

	errc chan error
	wg   sync.WaitGroup
}

// New creates an Engine from cfg.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	grace := cfg.GraceWindow
	if grace <= 0 {
		grace = DefaultGraceWindow
	}
	refresh := cfg.Refresh
	if refresh == nil {
		refresh = func() {}
	}
	return &Engine{
		items:   cfg.Items,
		groups:  cfg.Groups,
		store:   cfg.Store,
		history: NewHistory(cfg.HistoryCapacity, logger),
		pending: NewPendingWrites(),
		locks:   NewGestureLocks(),
		logger:  logger,
		grace:   grace,
		now:     now,
		refresh: refresh,
		errc:    make(chan error, 16),
	}
}

// Bootstrap bulk-loads both collections from the backing store, anchors the
// grace window at the current instant and seeds the history baseline. Must
// complete before Perform records history or ApplyRemote accepts events.
func (e *Engine) Bootstrap(ctx context.Context) error {
	groups, err := e.store.LoadGroups(ctx)
	if err != nil {
		return fmt.Errorf("loading groups: %w", err)
	}
	items, err := e.store.LoadItems(ctx)
	if err != nil {
		return fmt.Errorf("loading items: %w", err)
	}

	if err := e.groups.ReplaceAll(ctx, groups); err != nil {
		return fmt.Errorf("seeding group repository: %w", err)
	}
	if err := e.items.ReplaceAll(ctx, items); err != nil {
		return fmt.Errorf("seeding item repository: %w", err)
	}

	e.sessionStart = e.now()
	e.loaded.Store(true)

	snap, err := e.capture(ctx)
	if err != nil {
		return fmt.Errorf("capturing baseline snapshot: %w", err)
	}
	e.history.Seed(snap)

	e.logger.Info("session bootstrapped",
		"items", len(items), "groups", len(groups), "grace_window", e.grace)
	return nil
}

// SetLock raises or clears one gesture flag.
func (e *Engine) SetLock(kind domain.LockKind, on bool) {
	e.locks.Set(kind, on)
}

// CanUndo reports whether an undo step is available.
func (e *Engine) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether a redo step is available.
func (e *Engine) CanRedo() bool { return e.history.CanRedo() }

// Errors exposes failures of detached persistence and restore work. The
// channel is buffered and never blocks the engine; every failure is also
// logged.
func (e *Engine) Errors() <-chan error { return e.errc }

// Flush waits for all detached persistence and restore goroutines to finish.
func (e *Engine) Flush() { e.wg.Wait() }

// capture snapshots the live state of both repositories.
func (e *Engine) capture(ctx context.Context) (domain.Snapshot, error) {
	items, err := e.items.GetAll(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	groups, err := e.groups.GetAll(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return domain.Snapshot{Items: items, Groups: groups}, nil
}

func (e *Engine) reportAsync(err error) {
	e.logger.Error("detached task failed", "error", err)
	select {
	case e.errc <- err:
	default:
		// A full channel means nobody is draining; the log line above
		// already carries the failure.
	}
}

func (e *Engine) inGraceWindow() bool {
	return e.now().Sub(e.sessionStart) < e.grace
}
