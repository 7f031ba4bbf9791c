package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/example/boardsync/internal/domain"
)

// MemoryGroupRepo holds the live group collection.
type MemoryGroupRepo struct {
	mu     sync.RWMutex
	groups map[string]domain.Group
}

// NewMemoryGroupRepo creates an empty MemoryGroupRepo.
func NewMemoryGroupRepo() *MemoryGroupRepo {
	return &MemoryGroupRepo{groups: make(map[string]domain.Group)}
}

func (r *MemoryGroupRepo) GetAll(ctx context.Context) ([]domain.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Group, 0, len(r.groups))
	for _, g := range r.groups {
		out = append(out, g.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryGroupRepo) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.groups[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := g.Clone()
	return &c, nil
}

func (r *MemoryGroupRepo) Put(ctx context.Context, g domain.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.groups[g.ID] = g.Clone()
	return nil
}

func (r *MemoryGroupRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.groups[id]; !ok {
		return ErrNotFound
	}
	delete(r.groups, id)
	return nil
}

func (r *MemoryGroupRepo) ReplaceAll(ctx context.Context, groups []domain.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.groups = make(map[string]domain.Group, len(groups))
	for _, g := range groups {
		r.groups[g.ID] = g.Clone()
	}
	return nil
}
