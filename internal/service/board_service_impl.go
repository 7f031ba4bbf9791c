package service

import (
	"context"
	"time"

	"github.com/example/boardsync/internal/domain"
	"github.com/example/boardsync/internal/engine"
	"github.com/example/boardsync/internal/repository"
	"github.com/google/uuid"
)

type boardService struct {
	eng    *engine.Engine
	items  repository.ItemRepo
	groups repository.GroupRepo
	store  Persister
}

func NewBoardService(eng *engine.Engine, items repository.ItemRepo, groups repository.GroupRepo, store Persister) BoardService {
	return &boardService{eng: eng, items: items, groups: groups, store: store}
}

func (s *boardService) CreateItem(ctx context.Context, it *domain.Item) error {
	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	it.CreatedAt = now
	it.UpdatedAt = now
	if it.Status == "" {
		it.Status = domain.ItemTodo
	}
	if it.Priority == "" {
		it.Priority = domain.PriorityNormal
	}
	return s.putItem(ctx, "create item", *it)
}

func (s *boardService) UpdateItem(ctx context.Context, it *domain.Item) error {
	it.UpdatedAt = time.Now().UTC()
	return s.putItem(ctx, "update item", *it)
}

func (s *boardService) MoveItem(ctx context.Context, id string, x, y float64) error {
	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	it.X = x
	it.Y = y
	it.UpdatedAt = time.Now().UTC()
	return s.putItem(ctx, "move item", *it)
}

func (s *boardService) AssignItem(ctx context.Context, id string, groupID *string) error {
	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	it.GroupID = groupID
	it.UpdatedAt = time.Now().UTC()
	return s.putItem(ctx, "assign item", *it)
}

func (s *boardService) SetItemStatus(ctx context.Context, id string, status domain.ItemStatus) error {
	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	it.Status = status
	it.UpdatedAt = time.Now().UTC()
	return s.putItem(ctx, "set item status", *it)
}

// DeleteItem tombstones the item rather than removing the row, so other
// sessions see the deletion as a regular update.
func (s *boardService) DeleteItem(ctx context.Context, id string) error {
	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	it.Deleted = true
	it.UpdatedAt = time.Now().UTC()
	return s.putItem(ctx, "delete item", *it)
}

func (s *boardService) CreateGroup(ctx context.Context, g *domain.Group) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	return s.putGroup(ctx, "create group", *g)
}

func (s *boardService) RenameGroup(ctx context.Context, id, name string) error {
	g, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return err
	}
	g.Name = name
	g.UpdatedAt = time.Now().UTC()
	return s.putGroup(ctx, "rename group", *g)
}

func (s *boardService) MoveGroup(ctx context.Context, id string, x, y float64) error {
	g, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return err
	}
	g.X = x
	g.Y = y
	g.PositionVersion++
	g.UpdatedAt = time.Now().UTC()
	return s.putGroup(ctx, "move group", *g)
}

func (s *boardService) ResizeGroup(ctx context.Context, id string, w, h float64) error {
	g, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return err
	}
	g.W = w
	g.H = h
	g.PositionVersion++
	g.UpdatedAt = time.Now().UTC()
	return s.putGroup(ctx, "resize group", *g)
}

// DeleteGroup removes the group and unassigns its member items; the items
// survive as loose cards. The backing store mirrors the unassignment via
// its own foreign key.
func (s *boardService) DeleteGroup(ctx context.Context, id string) error {
	g, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return err
	}
	members, err := s.memberItems(ctx, g.ID)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(members)+1)
	ids = append(ids, g.ID)
	for _, m := range members {
		ids = append(ids, m.ID)
	}

	now := time.Now().UTC()
	return s.eng.Perform(ctx, engine.Operation{
		Name: "delete group",
		IDs:  ids,
		Apply: func(ctx context.Context) error {
			for i := range members {
				members[i].GroupID = nil
				members[i].UpdatedAt = now
				if err := s.items.Put(ctx, members[i]); err != nil {
					return err
				}
			}
			return s.groups.Delete(ctx, g.ID)
		},
		Persist: func(ctx context.Context) error {
			return s.store.DeleteGroup(ctx, g.ID)
		},
	})
}

// Items lists live (non-tombstoned) items.
func (s *boardService) Items(ctx context.Context) ([]domain.Item, error) {
	all, err := s.items.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	live := all[:0]
	for _, it := range all {
		if !it.Deleted {
			live = append(live, it)
		}
	}
	return live, nil
}

func (s *boardService) Groups(ctx context.Context) ([]domain.Group, error) {
	return s.groups.GetAll(ctx)
}

func (s *boardService) Undo(ctx context.Context) bool { return s.eng.Undo(ctx) }
func (s *boardService) Redo(ctx context.Context) bool { return s.eng.Redo(ctx) }
func (s *boardService) CanUndo() bool                 { return s.eng.CanUndo() }
func (s *boardService) CanRedo() bool                 { return s.eng.CanRedo() }

func (s *boardService) SetLock(kind domain.LockKind, on bool) {
	s.eng.SetLock(kind, on)
}

func (s *boardService) putItem(ctx context.Context, name string, it domain.Item) error {
	return s.eng.Perform(ctx, engine.Operation{
		Name: name,
		IDs:  []string{it.ID},
		Apply: func(ctx context.Context) error {
			return s.items.Put(ctx, it)
		},
		Persist: func(ctx context.Context) error {
			return s.store.SaveItem(ctx, &it)
		},
	})
}

func (s *boardService) putGroup(ctx context.Context, name string, g domain.Group) error {
	return s.eng.Perform(ctx, engine.Operation{
		Name: name,
		IDs:  []string{g.ID},
		Apply: func(ctx context.Context) error {
			return s.groups.Put(ctx, g)
		},
		Persist: func(ctx context.Context) error {
			return s.store.SaveGroup(ctx, &g)
		},
	})
}

func (s *boardService) memberItems(ctx context.Context, groupID string) ([]domain.Item, error) {
	all, err := s.items.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	var members []domain.Item
	for _, it := range all {
		if it.GroupID != nil && *it.GroupID == groupID {
			members = append(members, it)
		}
	}
	return members, nil
}
