package engine

import (
	"context"
	"errors"

	"github.com/example/boardsync/internal/domain"
	"github.com/example/boardsync/internal/repository"
)

// ApplyRemote consumes one change notification from another session. It
// never returns an error to the transport: suppressed events are logged at
// info level as deliberate drops, malformed payloads at warn, and accepted
// changes are written straight into the repositories without touching
// history (remote edits are not locally undoable).
//
// Suppression order: initial load incomplete, lock gate, pending write,
// then the startup grace window for delete-class events.
func (e *Engine) ApplyRemote(ctx context.Context, change domain.RemoteChange) {
	if change == nil {
		e.logger.Warn("remote change dropped: empty payload")
		return
	}
	if !e.loaded.Load() {
		e.logger.Info("remote change dropped: initial load incomplete",
			"entity_id", change.EntityID(), "op", change.Operation())
		return
	}
	if e.locks.Locked() {
		e.logger.Info("remote change dropped: gesture lock active",
			"entity_id", change.EntityID(), "op", change.Operation(),
			"locks", e.locks.Active())
		return
	}

	id := change.EntityID()
	if id == "" {
		e.logger.Warn("remote change dropped: missing entity id", "op", change.Operation())
		return
	}
	if e.pending.Has(id) {
		e.logger.Info("remote change dropped: local write pending",
			"entity_id", id, "op", change.Operation())
		return
	}

	switch c := change.(type) {
	case domain.ItemChange:
		e.applyRemoteItem(ctx, c)
	case domain.GroupChange:
		e.applyRemoteGroup(ctx, c)
	case domain.CollectionChange:
		e.logger.Info("remote collection change", "collection_id", c.ID, "op", c.Op)
		e.refresh()
	default:
		e.logger.Warn("remote change dropped: unknown payload type",
			"entity_id", id, "op", change.Operation())
	}
}

// applyRemoteItem accepts item changes without a version compare: items
// carry no version counter, so suppression is the only defense for them.
func (e *Engine) applyRemoteItem(ctx context.Context, c domain.ItemChange) {
	deleteClass := c.Op == domain.ChangeDelete || c.Item.Deleted
	if deleteClass && e.inGraceWindow() {
		e.logger.Info("remote item delete dropped: inside startup grace window",
			"item_id", c.Item.ID)
		return
	}

	switch c.Op {
	case domain.ChangeDelete:
		err := e.items.Delete(ctx, c.Item.ID)
		if errors.Is(err, repository.ErrNotFound) {
			e.logger.Info("remote item delete for unknown id", "item_id", c.Item.ID)
			return
		}
		if err != nil {
			e.logger.Error("applying remote item delete", "item_id", c.Item.ID, "error", err)
			return
		}
	case domain.ChangeCreate, domain.ChangeUpdate:
		if err := e.items.Put(ctx, c.Item); err != nil {
			e.logger.Error("applying remote item change", "item_id", c.Item.ID, "error", err)
			return
		}
	default:
		e.logger.Warn("remote item change dropped: unknown op", "item_id", c.Item.ID, "op", c.Op)
		return
	}

	e.logger.Info("remote item change applied", "item_id", c.Item.ID, "op", c.Op)
	e.refresh()
}

// applyRemoteGroup resolves group changes last-writer-wins: the position
// version decides, the update timestamp breaks ties.
func (e *Engine) applyRemoteGroup(ctx context.Context, c domain.GroupChange) {
	if c.Op == domain.ChangeDelete {
		if e.inGraceWindow() {
			e.logger.Info("remote group delete dropped: inside startup grace window",
				"group_id", c.Group.ID)
			return
		}
		err := e.groups.Delete(ctx, c.Group.ID)
		if errors.Is(err, repository.ErrNotFound) {
			e.logger.Info("remote group delete for unknown id", "group_id", c.Group.ID)
			return
		}
		if err != nil {
			e.logger.Error("applying remote group delete", "group_id", c.Group.ID, "error", err)
			return
		}
		e.logger.Info("remote group change applied", "group_id", c.Group.ID, "op", c.Op)
		e.refresh()
		return
	}

	local, err := e.groups.GetByID(ctx, c.Group.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		e.logger.Error("resolving remote group change", "group_id", c.Group.ID, "error", err)
		return
	}
	if local != nil {
		if c.Group.PositionVersion < local.PositionVersion {
			e.logger.Info("remote group change dropped: stale position version",
				"group_id", c.Group.ID,
				"incoming_version", c.Group.PositionVersion,
				"local_version", local.PositionVersion)
			return
		}
		if c.Group.PositionVersion == local.PositionVersion &&
			local.UpdatedAt.After(c.Group.UpdatedAt) {
			e.logger.Info("remote group change dropped: local copy newer",
				"group_id", c.Group.ID, "version", local.PositionVersion)
			return
		}
	}

	if err := e.groups.Put(ctx, c.Group); err != nil {
		e.logger.Error("applying remote group change", "group_id", c.Group.ID, "error", err)
		return
	}
	e.logger.Info("remote group change applied", "group_id", c.Group.ID, "op", c.Op)
	e.refresh()
}
