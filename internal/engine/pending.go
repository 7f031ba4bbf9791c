package engine

import "sync"

// PendingWrites tracks entity ids with an in-flight local write that the
// backing store has not yet acknowledged. While an id is registered, remote
// changes for it are dropped. Registration must be cleared on both the
// success and failure path of the owning write, otherwise the entity would
// stay unsyncable forever.
type PendingWrites struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// NewPendingWrites creates an empty registry.
func NewPendingWrites() *PendingWrites {
	return &PendingWrites{ids: make(map[string]struct{})}
}

// Add registers the given ids.
func (p *PendingWrites) Add(ids ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, id := range ids {
		p.ids[id] = struct{}{}
	}
}

// Remove unregisters the given ids. Unknown ids are ignored.
func (p *PendingWrites) Remove(ids ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, id := range ids {
		delete(p.ids, id)
	}
}

// Has reports whether id has an in-flight write.
func (p *PendingWrites) Has(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.ids[id]
	return ok
}

// Len returns the number of registered ids.
func (p *PendingWrites) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.ids)
}
