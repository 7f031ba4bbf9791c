package repository

import (
	"context"
	"errors"

	"github.com/example/boardsync/internal/domain"
)

// ErrNotFound is returned when an entity id does not exist in a repository.
var ErrNotFound = errors.New("entity not found")

// ItemRepo is the live, in-memory truth for items. ReplaceAll is a bulk
// overwrite used only when restoring a history snapshot.
type ItemRepo interface {
	GetAll(ctx context.Context) ([]domain.Item, error)
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	Put(ctx context.Context, it domain.Item) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, items []domain.Item) error
}

// GroupRepo is the live, in-memory truth for groups.
type GroupRepo interface {
	GetAll(ctx context.Context) ([]domain.Group, error)
	GetByID(ctx context.Context, id string) (*domain.Group, error)
	Put(ctx context.Context, g domain.Group) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, groups []domain.Group) error
}
