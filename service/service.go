// Package service holds the domain services sitting between the bot
// handlers and the Postgres repositories. Services validate input and emit
// structured activity logs; persistence stays in storage.
package service

import (
	"errors"

	"github.com/BerikbaiNurai/Lost-Found/storage"
)

var (
	// ErrEmptyDescription rejects blank item descriptions.
	ErrEmptyDescription = errors.New("item description is empty")
	// ErrInvalidKind rejects unknown item kinds.
	ErrInvalidKind = errors.New("invalid item kind")
	// ErrInvalidUser rejects operations without a usable user id.
	ErrInvalidUser = errors.New("invalid user id")
)

// Services bundles the domain services over a repository set.
type Services struct {
	Items *ItemService
	Users *UserService
	Stats *StatsService
}

// New constructs the service set over repos.
func New(repos *storage.Repos) *Services {
	return &Services{
		Items: NewItemService(repos.Items),
		Users: NewUserService(repos.Users),
		Stats: NewStatsService(repos.ButtonStats),
	}
}
