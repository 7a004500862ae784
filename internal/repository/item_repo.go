package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"noteshare/internal/models"
)

type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) *ItemRepository { return &ItemRepository{db: db} }

var _ Items = (*ItemRepository)(nil)

const (
	insertItemSQL = `INSERT INTO items (title, content, user_id, expiration_date) VALUES (?, ?, ?, ?)`

	selectItemByIDSQL = `
		SELECT i.id, i.title, i.content, i.user_id, i.expiration_date, u.username
		FROM items i
		JOIN users u ON u.id = i.user_id
		WHERE i.id = ?
	`

	// Active means not yet expired; NULL expiration never expires.
	selectActiveItemsSQL = `
		SELECT i.id, i.title, i.content, i.user_id, i.expiration_date, u.username
		FROM items i
		JOIN users u ON u.id = i.user_id
		WHERE i.expiration_date IS NULL OR i.expiration_date > ?
		ORDER BY i.id ASC
		LIMIT ? OFFSET ?
	`

	deleteOwnedItemSQL   = `DELETE FROM items WHERE id = ? AND user_id = ?`
	deleteExpiredItemSQL = `DELETE FROM items WHERE expiration_date <= ?`
)

// Create inserts a new item and returns its ID. ShortURL and OwnerUsername
// are derived fields and are not persisted.
func (r *ItemRepository) Create(ctx context.Context, item models.Item) (int, error) {
	var exp any
	if item.ExpirationDate != nil {
		t := item.ExpirationDate.UTC()
		exp = t
	}
	res, err := r.db.ExecContext(ctx, insertItemSQL, item.Title, item.Content, item.UserID, exp)
	if err != nil {
		return 0, fmt.Errorf("insert item %q: %w", item.Title, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for item %q: %w", item.Title, err)
	}
	return int(lastID), nil
}

// GetByID fetches an item by id regardless of its expiration status.
// Returns (nil, nil) if not found.
func (r *ItemRepository) GetByID(ctx context.Context, id int) (*models.Item, error) {
	row := r.db.QueryRowContext(ctx, selectItemByIDSQL, id)
	it, err := scanItem(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select item %d: %w", id, err)
	}
	return it, nil
}

// ListActive returns non-expired items in insertion order, offset by skip and
// capped at limit.
func (r *ItemRepository) ListActive(ctx context.Context, now time.Time, skip, limit int) ([]models.Item, error) {
	rows, err := r.db.QueryContext(ctx, selectActiveItemsSQL, now.UTC(), limit, skip)
	if err != nil {
		return nil, fmt.Errorf("select active items: %w", err)
	}
	defer rows.Close()

	out := make([]models.Item, 0, limit)
	for rows.Next() {
		it, err := scanItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan item row: %w", err)
		}
		out = append(out, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item rows: %w", err)
	}
	return out, nil
}

// DeleteOwned removes the item only when it belongs to ownerID. Reports
// whether a row was actually deleted; a miss and a foreign owner look the same.
func (r *ItemRepository) DeleteOwned(ctx context.Context, id, ownerID int) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteOwnedItemSQL, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete item %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for item %d: %w", id, err)
	}
	return n > 0, nil
}

// DeleteExpired removes every item whose expiration is at or before now.
// A single DELETE statement, so the sweep is atomic per run.
func (r *ItemRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteExpiredItemSQL, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired items: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for expired items: %w", err)
	}
	return n, nil
}

// scanItem reads one item row (with joined owner username) via the given scan func.
func scanItem(scan func(dest ...any) error) (*models.Item, error) {
	var (
		it  models.Item
		exp sql.NullTime
	)
	if err := scan(&it.ID, &it.Title, &it.Content, &it.UserID, &exp, &it.OwnerUsername); err != nil {
		return nil, err
	}
	if exp.Valid {
		t := exp.Time.UTC()
		it.ExpirationDate = &t
	}
	return &it, nil
}
