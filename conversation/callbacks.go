package conversation

import (
	"log/slog"

	"github.com/BerikbaiNurai/Lost-Found/core/logger"
	"github.com/BerikbaiNurai/Lost-Found/core/telegram/callbacks"
	tghelpers "github.com/BerikbaiNurai/Lost-Found/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// HandleDeleteCallback removes a post via its inline delete button. Only the
// post's owner may delete it; anyone else gets a denial toast and nothing is
// mutated.
func (e *Engine) HandleDeleteCallback(c tele.Context) error {
	user := c.Sender()
	if user == nil {
		return c.Respond()
	}
	ctx := tghelpers.BuildContext(c)

	itemID, err := callbacks.PayloadInt64(c)
	if err != nil {
		logger.Warn(ctx, "tg", "callback.delete.payload",
			slog.String("status", "invalid"),
			slog.String("err", err.Error()),
		)
		return c.Respond()
	}

	removed, err := e.items.DeleteOwned(ctx, itemID, user.ID)
	if err != nil {
		_ = c.Respond()
		return err
	}
	if !removed {
		return c.Respond(&tele.CallbackResponse{Text: toastDeleteDenied})
	}

	// Removing the listing message is best effort; an already-deleted
	// message is not an error worth surfacing.
	if err := c.Delete(); err != nil {
		logger.Warn(ctx, "tg", "callback.delete.message",
			slog.String("status", "skip"),
			slog.Int64("item_id", itemID),
			slog.String("err", err.Error()),
		)
	}
	return c.Respond(&tele.CallbackResponse{Text: toastDeleted})
}

// HandleIgnoreCallback acknowledges the keep button without changing
// anything.
func (e *Engine) HandleIgnoreCallback(c tele.Context) error {
	return c.Respond(&tele.CallbackResponse{Text: toastPostKept})
}
