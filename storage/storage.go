// Package storage contains the Postgres repositories for items, users and
// button click counters. Every write is a single SQL statement so the
// repositories stay safe under concurrent handler execution.
package storage

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Kind classifies an item as found or lost.
type Kind string

const (
	KindFound Kind = "found"
	KindLost  Kind = "lost"
)

// Valid reports whether k is one of the known item kinds.
func (k Kind) Valid() bool {
	return k == KindFound || k == KindLost
}

// Item is a single lost-and-found posting.
type Item struct {
	ID          int64          `db:"id"`
	OwnerID     int64          `db:"owner_id"`
	OwnerHandle string         `db:"owner_handle"`
	Kind        Kind           `db:"kind"`
	Description string         `db:"description"`
	PhotoFileID sql.NullString `db:"photo_file_id"`
}

// User is a registered bot user.
type User struct {
	UserID int64  `db:"user_id"`
	Handle string `db:"handle"`
}

// Repos bundles the repositories over a shared connection pool.
type Repos struct {
	Items       *Items
	Users       *Users
	ButtonStats *ButtonStats
}

// NewRepos constructs all repositories over db.
func NewRepos(db *sqlx.DB) *Repos {
	return &Repos{
		Items:       &Items{db: db},
		Users:       &Users{db: db},
		ButtonStats: &ButtonStats{db: db},
	}
}

// IsNotFound reports whether err signals an absent row.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
