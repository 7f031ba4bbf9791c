package engine

import (
	"context"
	"fmt"

	"github.com/example/boardsync/internal/domain"
)

// Operation is one user-attributable mutation performed with undo support.
// Apply is the synchronous repository write; Persist is the asynchronous
// backing-store write for the same entities and may be nil for operations
// with nothing to persist.
type Operation struct {
	Name    string
	IDs     []string
	Apply   func(ctx context.Context) error
	Persist func(ctx context.Context) error
}

// Perform runs op with undo support:
//
//  1. commit a before-snapshot,
//  2. register op.IDs as pending writes,
//  3. run Apply,
//  4. hand Persist to a detached goroutine that unregisters the ids on
//     completion, success or failure alike,
//  5. commit an after-snapshot.
//
// Every successful Perform yields exactly one before/after snapshot pair.
// Remote changes never go through here, so remote-origin states never
// enter history.
func (e *Engine) Perform(ctx context.Context, op Operation) error {
	recordHistory := e.loaded.Load()
	if !recordHistory {
		// The baseline is captured when the initial load completes; a
		// snapshot taken now would poison every later undo.
		e.logger.Warn("mutation before initial load; skipping history for this operation",
			"operation", op.Name)
	}

	if recordHistory {
		before, err := e.capture(ctx)
		if err != nil {
			return fmt.Errorf("capturing before snapshot: %w", err)
		}
		e.history.Commit(before)
	}

	e.pending.Add(op.IDs...)

	if err := op.Apply(ctx); err != nil {
		e.pending.Remove(op.IDs...)
		return fmt.Errorf("%s: %w", op.Name, err)
	}

	if op.Persist != nil {
		// The write must outlive the caller's context; cancellation of the
		// gesture does not cancel persistence.
		pctx := context.WithoutCancel(ctx)
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			defer e.pending.Remove(op.IDs...)
			if err := op.Persist(pctx); err != nil {
				e.reportAsync(fmt.Errorf("persisting %s: %w", op.Name, err))
			}
		}()
	} else {
		e.pending.Remove(op.IDs...)
	}

	if recordHistory {
		after, err := e.capture(ctx)
		if err != nil {
			return fmt.Errorf("capturing after snapshot: %w", err)
		}
		e.history.Commit(after)
	}
	return nil
}

// Undo steps the history back one snapshot and restores it. Returns false
// when there is nothing to undo.
func (e *Engine) Undo(ctx context.Context) bool {
	snap, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.restore(ctx, snap)
	return true
}

// Redo steps the history forward one snapshot and restores it. Returns
// false when there is nothing to redo.
func (e *Engine) Redo(ctx context.Context) bool {
	snap, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.restore(ctx, snap)
	return true
}

// restore writes groups synchronously so the board re-anchors without lag,
// then restores items and repersists the whole snapshot from a detached
// goroutine. Local edits or remote events racing the item restore are
// allowed to proceed; that narrow window is eventually consistent rather
// than queued.
func (e *Engine) restore(ctx context.Context, snap domain.Snapshot) {
	if err := e.groups.ReplaceAll(ctx, snap.Groups); err != nil {
		e.logger.Error("restoring groups", "error", err)
	}

	rctx := context.WithoutCancel(ctx)
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		if err := e.items.ReplaceAll(rctx, snap.Items); err != nil {
			e.reportAsync(fmt.Errorf("restoring items: %w", err))
			return
		}
		if err := e.store.SaveSnapshot(rctx, snap); err != nil {
			e.reportAsync(fmt.Errorf("repersisting restored snapshot: %w", err))
		}
		e.refresh()
	}()
}
