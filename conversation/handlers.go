package conversation

import (
	"fmt"
	"strings"

	tghelpers "github.com/BerikbaiNurai/Lost-Found/core/telegram/helpers"
	"github.com/BerikbaiNurai/Lost-Found/storage"

	tele "gopkg.in/telebot.v4"
)

func senderHandle(u *tele.User) string {
	if u == nil || strings.TrimSpace(u.Username) == "" {
		return "anon"
	}
	return u.Username
}

// HandleStart registers the user, shows the welcome message with the main
// menu and puts the user into the menu state.
func (e *Engine) HandleStart(c tele.Context) error {
	user := c.Sender()
	if user == nil {
		return nil
	}
	ctx := tghelpers.BuildContext(c)

	if _, err := e.users.Register(ctx, user.ID, senderHandle(user)); err != nil {
		return err
	}
	count, err := e.users.Count(ctx)
	if err != nil {
		return err
	}

	if err := tghelpers.SendText(c, fmt.Sprintf(textWelcomeFmt, count), &tele.SendOptions{ReplyMarkup: menuKeyboard()}); err != nil {
		return err
	}
	e.fsm.SetState(user.ID, StateMenu)
	return nil
}

// HandleCancel ends any active dialogue and drops pending report data. The
// menu is not re-rendered; the user returns with /start.
func (e *Engine) HandleCancel(c tele.Context) error {
	user := c.Sender()
	if user == nil {
		return nil
	}
	e.fsm.Clear(user.ID)
	return tghelpers.SendText(c, textCancelled)
}

// HandleUserCount reports the registered user population.
func (e *Engine) HandleUserCount(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	count, err := e.users.Count(ctx)
	if err != nil {
		return err
	}
	return tghelpers.SendText(c, fmt.Sprintf(textUserCountFmt, count))
}

func (e *Engine) handleMenu(c tele.Context) error {
	action, ok := ActionForLabel(c.Text())
	if !ok {
		return tghelpers.SendText(c, textUseMenu)
	}
	return e.dispatchAction(c, action)
}

// dispatchAction runs a menu action. Also entered from the description
// state when the user presses a menu button mid-report.
func (e *Engine) dispatchAction(c tele.Context, action Action) error {
	ctx := tghelpers.BuildContext(c)
	// Counter writes are observability only; a failed increment must not
	// stall the dialogue.
	_, _ = e.stats.Track(ctx, string(action))

	switch action {
	case ActionReportFound:
		return e.beginReport(c, storage.KindFound, templateFound)
	case ActionReportLost:
		return e.beginReport(c, storage.KindLost, templateLost)
	case ActionBrowseFound:
		return e.browse(c, storage.KindFound, textNoFoundItems)
	case ActionBrowseLost:
		return e.browse(c, storage.KindLost, textNoLostItems)
	case ActionMyPosts:
		return e.myPosts(c)
	}
	return tghelpers.SendText(c, textUseMenu)
}

func (e *Engine) beginReport(c tele.Context, kind storage.Kind, template string) error {
	userID := c.Sender().ID
	e.fsm.SetTemp(userID, tempKind, string(kind))
	e.fsm.ClearTemp(userID, tempDescription)

	if err := tghelpers.SendMD(c, template); err != nil {
		return err
	}
	if err := tghelpers.SendText(c, textDescriptionPrompt); err != nil {
		return err
	}
	e.fsm.SetState(userID, StateAwaitingDescription)
	return nil
}

func (e *Engine) browse(c tele.Context, kind storage.Kind, emptyText string) error {
	ctx := tghelpers.BuildContext(c)
	items, err := e.items.Browse(ctx, kind, browseLimit)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return tghelpers.SendText(c, emptyText)
	}
	for _, item := range items {
		if err := renderItem(c, item, browseCaption(item), nil); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) myPosts(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	items, err := e.items.Owned(ctx, c.Sender().ID, myPostsLimit)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return tghelpers.SendText(c, textNoOwnPosts)
	}
	for _, item := range items {
		if err := renderItem(c, item, ownPostCaption(item), deleteKeepKeyboard(item.ID)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) handleDescription(c tele.Context) error {
	userID := c.Sender().ID

	// A menu button pressed mid-report abandons the report.
	if action, ok := ActionForLabel(c.Text()); ok {
		e.fsm.ClearTemp(userID, tempKind)
		e.fsm.ClearTemp(userID, tempDescription)
		e.fsm.SetState(userID, StateMenu)
		return e.dispatchAction(c, action)
	}

	text := strings.TrimSpace(c.Text())
	if text == "" {
		return tghelpers.SendText(c, textDescriptionPrompt)
	}

	e.fsm.SetTemp(userID, tempDescription, text)
	if err := tghelpers.SendText(c, textPhotoQuestion, &tele.SendOptions{ReplyMarkup: photoDecisionKeyboard()}); err != nil {
		return err
	}
	e.fsm.SetState(userID, StateAwaitingPhotoDecision)
	return nil
}

func (e *Engine) handlePhotoDecision(c tele.Context) error {
	switch c.Text() {
	case LabelPhotoYes:
		if err := tghelpers.SendText(c, textPhotoPrompt); err != nil {
			return err
		}
		e.fsm.SetState(c.Sender().ID, StateAwaitingPhoto)
		return nil
	case LabelPhotoNo:
		return e.finishReport(c, nil)
	default:
		return tghelpers.SendText(c, textPhotoYesNo)
	}
}

func (e *Engine) handlePhoto(c tele.Context) error {
	msg := c.Message()
	if msg == nil || msg.Photo == nil {
		return tghelpers.SendText(c, textPhotoExpected)
	}
	// Telebot's Photo field already carries the highest-resolution size.
	fileID := msg.Photo.FileID
	return e.finishReport(c, &fileID)
}

// finishReport persists the pending item and returns the user to the menu.
// The confirmation is only rendered after the insert is committed.
func (e *Engine) finishReport(c tele.Context, photoFileID *string) error {
	user := c.Sender()
	userID := user.ID
	ctx := tghelpers.BuildContext(c)

	kindRaw, ok := e.fsm.GetTempString(userID, tempKind)
	if !ok {
		e.fsm.Clear(userID)
		return tghelpers.SendText(c, textCancelled)
	}
	description, ok := e.fsm.GetTempString(userID, tempDescription)
	if !ok {
		e.fsm.Clear(userID)
		return tghelpers.SendText(c, textCancelled)
	}

	_, err := e.items.Create(ctx, userID, senderHandle(user), storage.Kind(kindRaw), description, photoFileID)
	if err != nil {
		return err
	}

	e.fsm.ClearTemp(userID, tempKind)
	e.fsm.ClearTemp(userID, tempDescription)

	confirmation := textSavedWithoutPhoto
	if photoFileID != nil {
		confirmation = textSavedWithPhoto
	}
	if err := tghelpers.SendText(c, confirmation); err != nil {
		return err
	}
	return e.HandleStart(c)
}
