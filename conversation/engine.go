// Package conversation implements the per-user dialogue flow of the
// lost-and-found bot: the main menu, the multi-step report dialogue and the
// inline post management actions.
package conversation

import (
	"context"

	tg "github.com/BerikbaiNurai/Lost-Found/core/telegram"
	"github.com/BerikbaiNurai/Lost-Found/core/telegram/commands"
	"github.com/BerikbaiNurai/Lost-Found/core/telegram/state"
	"github.com/BerikbaiNurai/Lost-Found/storage"
)

// FSM states of the report dialogue.
const (
	StateMenu                  state.State = "menu"
	StateAwaitingDescription   state.State = "awaiting_description"
	StateAwaitingPhotoDecision state.State = "awaiting_photo_decision"
	StateAwaitingPhoto         state.State = "awaiting_photo"
)

// Session temp-data keys holding the in-progress report.
const (
	tempKind        = "pending_kind"
	tempDescription = "pending_description"
)

// Callback uniques on the "my posts" inline keyboard.
const (
	callbackDelete = "delete"
	callbackIgnore = "ignore"
)

// Listing limits.
const (
	browseLimit  = 5
	myPostsLimit = 10
)

// ItemService is the posting surface the engine drives.
type ItemService interface {
	Create(ctx context.Context, ownerID int64, ownerHandle string, kind storage.Kind, description string, photoFileID *string) (int64, error)
	Browse(ctx context.Context, kind storage.Kind, limit int) ([]storage.Item, error)
	Owned(ctx context.Context, ownerID int64, limit int) ([]storage.Item, error)
	DeleteOwned(ctx context.Context, id, ownerID int64) (bool, error)
}

// UserService is the registry surface the engine drives.
type UserService interface {
	Register(ctx context.Context, userID int64, handle string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// StatsService counts menu interactions.
type StatsService interface {
	Track(ctx context.Context, label string) (int64, error)
}

// Engine wires the dialogue handlers to the FSM manager and the domain
// services.
type Engine struct {
	fsm   state.Manager
	items ItemService
	users UserService
	stats StatsService
}

// NewEngine constructs the conversation engine.
func NewEngine(fsm state.Manager, items ItemService, users UserService, stats StatsService) *Engine {
	return &Engine{
		fsm:   fsm,
		items: items,
		users: users,
		stats: stats,
	}
}

// Register binds commands, FSM state handlers and callbacks.
func (e *Engine) Register(reg *tg.Registry) error {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     e.HandleStart,
		Description: "Главное меню",
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     e.HandleCancel,
		Description: "Отменить текущее действие",
	})
	reg.RegisterCommand("/users", commands.Command{
		Handler:     e.HandleUserCount,
		Description: "Количество пользователей",
		AdminOnly:   true,
		Hidden:      true,
	})

	state.RegisterHandler(StateMenu, e.handleMenu)
	state.RegisterHandler(StateAwaitingDescription, e.handleDescription)
	state.RegisterHandler(StateAwaitingPhotoDecision, e.handlePhotoDecision)
	state.RegisterHandler(StateAwaitingPhoto, e.handlePhoto)

	if err := reg.RegisterCallback(callbackDelete, e.HandleDeleteCallback); err != nil {
		return err
	}
	return reg.RegisterCallback(callbackIgnore, e.HandleIgnoreCallback)
}
