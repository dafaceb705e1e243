package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Items is the repository for lost-and-found postings.
type Items struct {
	db *sqlx.DB
}

// Insert stores a new item and returns its generated id. The id comes from
// an identity sequence, so later inserts always receive larger ids.
func (r *Items) Insert(ctx context.Context, ownerID int64, ownerHandle string, kind Kind, description string, photoFileID *string) (int64, error) {
	photo := sql.NullString{}
	if photoFileID != nil {
		photo = sql.NullString{String: *photoFileID, Valid: true}
	}

	var id int64
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO items (owner_id, owner_handle, kind, description, photo_file_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		ownerID, ownerHandle, kind, description, photo,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}
	return id, nil
}

// ListByKind returns up to limit newest items of the given kind,
// newest first.
func (r *Items) ListByKind(ctx context.Context, kind Kind, limit int) ([]Item, error) {
	items := []Item{}
	err := r.db.SelectContext(ctx, &items, `
		SELECT id, owner_id, owner_handle, kind, description, photo_file_id
		FROM items
		WHERE kind = $1
		ORDER BY id DESC
		LIMIT $2`,
		kind, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list items by kind: %w", err)
	}
	return items, nil
}

// ListByOwner returns up to limit newest items posted by ownerID,
// newest first.
func (r *Items) ListByOwner(ctx context.Context, ownerID int64, limit int) ([]Item, error) {
	items := []Item{}
	err := r.db.SelectContext(ctx, &items, `
		SELECT id, owner_id, owner_handle, kind, description, photo_file_id
		FROM items
		WHERE owner_id = $1
		ORDER BY id DESC
		LIMIT $2`,
		ownerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list items by owner: %w", err)
	}
	return items, nil
}

// Delete removes the item with the given id. Deleting an absent id is a
// no-op.
func (r *Items) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// DeleteOwned removes the item only when it belongs to ownerID and reports
// whether a row was removed.
func (r *Items) DeleteOwned(ctx context.Context, id, ownerID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete owned item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete owned item: rows affected: %w", err)
	}
	return n > 0, nil
}
