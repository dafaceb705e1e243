package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Users is the repository for registered bot users.
type Users struct {
	db *sqlx.DB
}

// UpsertIfAbsent registers the user unless already present. The handle
// recorded on first contact is kept on later calls. Returns whether a new
// row was created.
func (r *Users) UpsertIfAbsent(ctx context.Context, userID int64, handle string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (user_id, handle)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING`,
		userID, handle,
	)
	if err != nil {
		return false, fmt.Errorf("upsert user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("upsert user: rows affected: %w", err)
	}
	return n > 0, nil
}

// Count returns the number of registered users.
func (r *Users) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
