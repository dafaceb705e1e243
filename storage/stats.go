package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ButtonStats is the repository for the menu interaction counter.
type ButtonStats struct {
	db *sqlx.DB
}

// Increment bumps the click counter for label by one, creating the row on
// first use. Returns the counter value after the increment.
func (r *ButtonStats) Increment(ctx context.Context, label string) (int64, error) {
	var clicks int64
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO button_stats (button_name, clicks)
		VALUES ($1, 1)
		ON CONFLICT (button_name) DO UPDATE SET clicks = button_stats.clicks + 1
		RETURNING clicks`,
		label,
	).Scan(&clicks)
	if err != nil {
		return 0, fmt.Errorf("increment button stats: %w", err)
	}
	return clicks, nil
}
