package engine

import (
	"io"
	"log/slog"
	"sync"

	"github.com/example/boardsync/internal/domain"
)

// DefaultHistoryCapacity is the default maximum undo depth.
const DefaultHistoryCapacity = 50

// History is a capped, ordered buffer of unified snapshots with a cursor
// splitting it into an undo stack and a redo stack. It retains at most
// capacity undoable snapshots plus the current one; the oldest entry is
// evicted first. Snapshots are deep-copied on the way in and out, so the
// buffer never shares state with callers.
type History struct {
	mu       sync.Mutex
	snaps    []domain.Snapshot
	cursor   int
	capacity int
	seeded   bool
	logger   *slog.Logger
}

// NewHistory creates a History with the given undo depth. A capacity <= 0
// falls back to DefaultHistoryCapacity.
func NewHistory(capacity int, logger *slog.Logger) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &History{capacity: capacity, logger: logger}
}

// Seed establishes the baseline snapshot. Committing before Seed is a
// startup-ordering bug; Commit self-heals by adopting the committed
// snapshot as the baseline instead of recording an empty state.
func (h *History) Seed(snap domain.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snaps = []domain.Snapshot{snap.Clone()}
	h.cursor = 0
	h.seeded = true
}

// Commit appends a snapshot after the cursor, truncating any redo entries
// and evicting the oldest entry beyond capacity.
func (h *History) Commit(snap domain.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.seeded {
		h.logger.Warn("history committed before baseline seed; adopting commit as baseline")
		h.snaps = []domain.Snapshot{snap.Clone()}
		h.cursor = 0
		h.seeded = true
		return
	}

	h.snaps = append(h.snaps[:h.cursor+1], snap.Clone())
	if len(h.snaps) > h.capacity+1 {
		h.snaps = h.snaps[len(h.snaps)-h.capacity-1:]
	}
	h.cursor = len(h.snaps) - 1
}

// Undo moves the cursor back one position and returns the snapshot now
// current. Returns false when already at the oldest entry.
func (h *History) Undo() (domain.Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor == 0 {
		return domain.Snapshot{}, false
	}
	h.cursor--
	return h.snaps[h.cursor].Clone(), true
}

// Redo moves the cursor forward one position and returns the snapshot now
// current. Returns false when already at the newest entry.
func (h *History) Redo() (domain.Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor >= len(h.snaps)-1 {
		return domain.Snapshot{}, false
	}
	h.cursor++
	return h.snaps[h.cursor].Clone(), true
}

// CanUndo reports whether at least one older snapshot exists.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor > 0
}

// CanRedo reports whether at least one newer snapshot exists.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor < len(h.snaps)-1
}

// Depth returns the number of snapshots currently undoable.
func (h *History) Depth() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor
}
