package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/example/boardsync/internal/domain"
)

// SaveSnapshot upserts every entity in the snapshot inside one transaction.
// Used when a restored history snapshot is repersisted after undo/redo.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap domain.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for i := range snap.Groups {
		if err := saveGroup(ctx, tx, &snap.Groups[i]); err != nil {
			return err
		}
	}
	for i := range snap.Items {
		if err := saveItem(ctx, tx, &snap.Items[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	committed = true
	return nil
}

// ChangesSince returns change notifications for all rows written after the
// given watermark, oldest first. Rows newer than their watermark with a
// creation time inside the window surface as creates, soft-deleted items as
// deletes, everything else as updates. Hard-removed rows are invisible to
// polling; the next full load reconciles those.
func (s *SQLiteStore) ChangesSince(ctx context.Context, since time.Time) ([]domain.RemoteChange, error) {
	watermark := since.UTC().Format(time.RFC3339)
	var changes []domain.RemoteChange

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE updated_at > ? ORDER BY updated_at`, watermark)
	if err != nil {
		return nil, fmt.Errorf("polling group changes: %w", err)
	}
	groups, err := s.scanGroups(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		op := domain.ChangeUpdate
		if g.CreatedAt.After(since) {
			op = domain.ChangeCreate
		}
		changes = append(changes, domain.GroupChange{Op: op, Group: g})
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE updated_at > ? ORDER BY updated_at`, watermark)
	if err != nil {
		return nil, fmt.Errorf("polling item changes: %w", err)
	}
	items, err := s.scanItems(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		op := domain.ChangeUpdate
		switch {
		case it.Deleted:
			op = domain.ChangeDelete
		case it.CreatedAt.After(since):
			op = domain.ChangeCreate
		}
		changes = append(changes, domain.ItemChange{Op: op, Item: it})
	}

	return changes, nil
}
