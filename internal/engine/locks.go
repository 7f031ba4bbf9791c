package engine

import (
	"sync"

	"github.com/example/boardsync/internal/domain"
)

// GestureLocks aggregates the in-progress-gesture flags (drag, resize,
// settle, bulk). While any flag is set, remote change application is
// suppressed. Lifetime of a flag is scoped to the gesture that set it.
type GestureLocks struct {
	mu    sync.Mutex
	flags map[domain.LockKind]bool
}

// NewGestureLocks creates a GestureLocks with all flags clear.
func NewGestureLocks() *GestureLocks {
	return &GestureLocks{flags: make(map[domain.LockKind]bool)}
}

// Set raises or clears one flag.
func (l *GestureLocks) Set(kind domain.LockKind, on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if on {
		l.flags[kind] = true
	} else {
		delete(l.flags, kind)
	}
}

// Locked reports whether any flag is set.
func (l *GestureLocks) Locked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.flags) > 0
}

// Active returns the currently raised flags, for logging.
func (l *GestureLocks) Active() []domain.LockKind {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.LockKind, 0, len(l.flags))
	for k := range l.flags {
		out = append(out, k)
	}
	return out
}
