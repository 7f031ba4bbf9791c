package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/example/boardsync/internal/domain"
)

// MemoryItemRepo holds the live item collection. Reads return clones so
// callers never share pointers with repository state.
type MemoryItemRepo struct {
	mu    sync.RWMutex
	items map[string]domain.Item
}

// NewMemoryItemRepo creates an empty MemoryItemRepo.
func NewMemoryItemRepo() *MemoryItemRepo {
	return &MemoryItemRepo{items: make(map[string]domain.Item)}
}

func (r *MemoryItemRepo) GetAll(ctx context.Context) ([]domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryItemRepo) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := it.Clone()
	return &c, nil
}

func (r *MemoryItemRepo) Put(ctx context.Context, it domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[it.ID] = it.Clone()
	return nil
}

func (r *MemoryItemRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryItemRepo) ReplaceAll(ctx context.Context, items []domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make(map[string]domain.Item, len(items))
	for _, it := range items {
		r.items[it.ID] = it.Clone()
	}
	return nil
}
