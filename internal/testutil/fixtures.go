package testutil

import (
	"time"

	"github.com/example/boardsync/internal/domain"
	"github.com/google/uuid"
)

// Item options
type ItemOption func(*domain.Item)

func WithGroup(groupID string) ItemOption {
	return func(i *domain.Item) {
		i.GroupID = &groupID
	}
}

func WithStatus(s domain.ItemStatus) ItemOption {
	return func(i *domain.Item) {
		i.Status = s
	}
}

func WithPriority(p domain.Priority) ItemOption {
	return func(i *domain.Item) {
		i.Priority = p
	}
}

func WithDueDate(d time.Time) ItemOption {
	return func(i *domain.Item) {
		i.DueDate = &d
	}
}

func WithItemPosition(x, y float64) ItemOption {
	return func(i *domain.Item) {
		i.X = x
		i.Y = y
	}
}

func WithDeleted() ItemOption {
	return func(i *domain.Item) {
		i.Deleted = true
	}
}

func WithItemUpdatedAt(t time.Time) ItemOption {
	return func(i *domain.Item) {
		i.UpdatedAt = t
	}
}

// NewTestItem creates an item with sensible defaults for tests.
func NewTestItem(title string, opts ...ItemOption) *domain.Item {
	now := time.Now().UTC()
	i := &domain.Item{
		ID:        uuid.New().String(),
		Title:     title,
		Status:    domain.ItemTodo,
		Priority:  domain.PriorityNormal,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Group options
type GroupOption func(*domain.Group)

func WithParent(parentID string) GroupOption {
	return func(g *domain.Group) {
		g.ParentID = &parentID
	}
}

func WithGeometry(x, y, w, h float64) GroupOption {
	return func(g *domain.Group) {
		g.X = x
		g.Y = y
		g.W = w
		g.H = h
	}
}

func WithPositionVersion(v int64) GroupOption {
	return func(g *domain.Group) {
		g.PositionVersion = v
	}
}

func WithGroupUpdatedAt(t time.Time) GroupOption {
	return func(g *domain.Group) {
		g.UpdatedAt = t
	}
}

// NewTestGroup creates a group with sensible defaults for tests.
func NewTestGroup(name string, opts ...GroupOption) *domain.Group {
	now := time.Now().UTC()
	g := &domain.Group{
		ID:        uuid.New().String(),
		Name:      name,
		W:         320,
		H:         240,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}
