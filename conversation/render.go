package conversation

import (
	"fmt"

	tgformat "github.com/BerikbaiNurai/Lost-Found/core/telegram/format"
	tghelpers "github.com/BerikbaiNurai/Lost-Found/core/telegram/helpers"
	"github.com/BerikbaiNurai/Lost-Found/core/telegram/keyboard"
	"github.com/BerikbaiNurai/Lost-Found/storage"

	tele "gopkg.in/telebot.v4"
)

func kindLabel(k storage.Kind) string {
	if k == storage.KindFound {
		return LabelBrowseFound
	}
	return LabelBrowseLost
}

// menuKeyboard builds the constant main menu reply keyboard.
func menuKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{LabelReportFound, LabelReportLost},
		[]string{LabelBrowseFound, LabelBrowseLost},
		[]string{LabelMyPosts},
	)
}

func photoDecisionKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons([]string{LabelPhotoYes, LabelPhotoNo})
}

func browseCaption(item storage.Item) string {
	return fmt.Sprintf("%s\n\n*Описание:* %s\n*Контакт:* @%s",
		kindLabel(item.Kind),
		tgformat.EscapeMarkdown(item.Description),
		tgformat.EscapeMarkdown(item.OwnerHandle),
	)
}

func ownPostCaption(item storage.Item) string {
	return fmt.Sprintf("%s\n\n*Описание:* %s\n*Вы добавили этот пост.*",
		kindLabel(item.Kind),
		tgformat.EscapeMarkdown(item.Description),
	)
}

// renderItem sends a single posting as a photo with caption, or as text with
// a no-photo marker. A nil markup omits inline actions.
func renderItem(c tele.Context, item storage.Item, caption string, markup *tele.ReplyMarkup) error {
	if item.PhotoFileID.Valid {
		if markup != nil {
			return tghelpers.SendPhotoMD(c, item.PhotoFileID.String, caption, markup)
		}
		return tghelpers.SendPhotoMD(c, item.PhotoFileID.String, caption)
	}
	if markup != nil {
		return tghelpers.SendMD(c, caption+textNoPhotoMark, markup)
	}
	return tghelpers.SendMD(c, caption+textNoPhotoMark)
}

func deleteKeepKeyboard(itemID int64) *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: textDeleteButton, Unique: callbackDelete, Data: fmt.Sprintf("%d", itemID)},
		{Text: textKeepButton, Unique: callbackIgnore},
	})
}
