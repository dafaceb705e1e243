package conversation

// Action tags a menu selection. Handlers dispatch on tags, never on the
// visible button text, so labels can change without touching flow logic.
type Action string

const (
	ActionReportFound Action = "report_found"
	ActionReportLost  Action = "report_lost"
	ActionBrowseFound Action = "browse_found"
	ActionBrowseLost  Action = "browse_lost"
	ActionMyPosts     Action = "my_posts"
)

// Menu button labels shown to users. The texts are data; flow logic keys on
// the Action resolved from them.
const (
	LabelReportFound = "🟢 Нашёл"
	LabelReportLost  = "🔴 Потерял"
	LabelBrowseFound = "🟢 Найдено"
	LabelBrowseLost  = "🔴 Потеряно"
	LabelMyPosts     = "🗂 Мои посты"

	LabelPhotoYes = "✅ Да"
	LabelPhotoNo  = "❌ Нет"
)

var actionByLabel = map[string]Action{
	LabelReportFound: ActionReportFound,
	LabelReportLost:  ActionReportLost,
	LabelBrowseFound: ActionBrowseFound,
	LabelBrowseLost:  ActionBrowseLost,
	LabelMyPosts:     ActionMyPosts,
}

// ActionForLabel resolves a menu button label to its action tag.
func ActionForLabel(text string) (Action, bool) {
	a, ok := actionByLabel[text]
	return a, ok
}
