package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/boardsync/internal/domain"
)

// itemColumns is the canonical SELECT column list for items.
const itemColumns = `id, group_id, title, status, priority, due_date,
		x, y, deleted, created_at, updated_at`

// groupColumns is the canonical SELECT column list for groups.
const groupColumns = `id, name, parent_id, x, y, w, h,
		position_version, created_at, updated_at`

// SQLiteStore is the backing store behind the live repositories. The engine
// persists acknowledged local writes here asynchronously and bulk-loads both
// collections from it at session start.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) LoadItems(ctx context.Context) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	defer rows.Close()
	return s.scanItems(rows)
}

func (s *SQLiteStore) LoadGroups(ctx context.Context) ([]domain.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading groups: %w", err)
	}
	defer rows.Close()
	return s.scanGroups(rows)
}

// execer abstracts *sql.DB and *sql.Tx for writes.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLiteStore) SaveItem(ctx context.Context, it *domain.Item) error {
	return saveItem(ctx, s.db, it)
}

func saveItem(ctx context.Context, db execer, it *domain.Item) error {
	query := `INSERT INTO items (` + itemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			group_id = excluded.group_id,
			title = excluded.title,
			status = excluded.status,
			priority = excluded.priority,
			due_date = excluded.due_date,
			x = excluded.x,
			y = excluded.y,
			deleted = excluded.deleted,
			updated_at = excluded.updated_at`
	_, err := db.ExecContext(ctx, query,
		it.ID,
		nullableStringToValue(it.GroupID),
		it.Title,
		string(it.Status),
		string(it.Priority),
		nullableTimeToString(it.DueDate, time.RFC3339),
		it.X,
		it.Y,
		boolToInt(it.Deleted),
		it.CreatedAt.Format(time.RFC3339),
		it.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving item: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SaveGroup(ctx context.Context, g *domain.Group) error {
	return saveGroup(ctx, s.db, g)
}

func saveGroup(ctx context.Context, db execer, g *domain.Group) error {
	query := `INSERT INTO groups (` + groupColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			parent_id = excluded.parent_id,
			x = excluded.x,
			y = excluded.y,
			w = excluded.w,
			h = excluded.h,
			position_version = excluded.position_version,
			updated_at = excluded.updated_at`
	_, err := db.ExecContext(ctx, query,
		g.ID,
		g.Name,
		nullableStringToValue(g.ParentID),
		g.X,
		g.Y,
		g.W,
		g.H,
		g.PositionVersion,
		g.CreatedAt.Format(time.RFC3339),
		g.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving group: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteItem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteGroup(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM groups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting group: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting group: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) scanItems(rows *sql.Rows) ([]domain.Item, error) {
	var items []domain.Item
	for rows.Next() {
		it, err := scanItemRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

func (s *SQLiteStore) scanGroups(rows *sql.Rows) ([]domain.Group, error) {
	var groups []domain.Group
	for rows.Next() {
		g, err := scanGroupRow(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating groups: %w", err)
	}
	return groups, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItemRow(row rowScanner) (*domain.Item, error) {
	var it domain.Item
	var groupID, dueDate sql.NullString
	var status, priority, createdAt, updatedAt string
	var deleted int

	err := row.Scan(
		&it.ID, &groupID, &it.Title, &status, &priority, &dueDate,
		&it.X, &it.Y, &deleted, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning item: %w", err)
	}

	it.GroupID = parseNullableString(groupID)
	it.Status = domain.ItemStatus(status)
	it.Priority = domain.Priority(priority)
	it.DueDate = parseNullableTime(dueDate, time.RFC3339)
	it.Deleted = intToBool(deleted)
	it.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	it.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &it, nil
}

func scanGroupRow(row rowScanner) (*domain.Group, error) {
	var g domain.Group
	var parentID sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(
		&g.ID, &g.Name, &parentID, &g.X, &g.Y, &g.W, &g.H,
		&g.PositionVersion, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning group: %w", err)
	}

	g.ParentID = parseNullableString(parentID)
	g.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	g.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &g, nil
}
