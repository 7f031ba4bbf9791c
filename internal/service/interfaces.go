package service

import (
	"context"

	"github.com/example/boardsync/internal/domain"
)

// BoardService exposes the user-attributable board operations. Every
// mutation runs through the engine's command facade, so each one yields a
// before/after snapshot pair and can be undone.
type BoardService interface {
	CreateItem(ctx context.Context, it *domain.Item) error
	UpdateItem(ctx context.Context, it *domain.Item) error
	MoveItem(ctx context.Context, id string, x, y float64) error
	AssignItem(ctx context.Context, id string, groupID *string) error
	SetItemStatus(ctx context.Context, id string, status domain.ItemStatus) error
	DeleteItem(ctx context.Context, id string) error

	CreateGroup(ctx context.Context, g *domain.Group) error
	RenameGroup(ctx context.Context, id, name string) error
	MoveGroup(ctx context.Context, id string, x, y float64) error
	ResizeGroup(ctx context.Context, id string, w, h float64) error
	DeleteGroup(ctx context.Context, id string) error

	Items(ctx context.Context) ([]domain.Item, error)
	Groups(ctx context.Context) ([]domain.Group, error)

	Undo(ctx context.Context) bool
	Redo(ctx context.Context) bool
	CanUndo() bool
	CanRedo() bool
	SetLock(kind domain.LockKind, on bool)
}

// Persister is the per-entity slice of the backing store the service
// schedules asynchronous writes against.
type Persister interface {
	SaveItem(ctx context.Context, it *domain.Item) error
	SaveGroup(ctx context.Context, g *domain.Group) error
	DeleteGroup(ctx context.Context, id string) error
}
