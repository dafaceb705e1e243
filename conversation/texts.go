package conversation

// User-facing texts. Kept in one place so wording changes never touch flow
// logic.
const (
	textWelcomeFmt = "Привет! Ты %d-й пользователь по счёту.\nЯ бот Lost&Found AlmaU. Выберите действие:"

	textUseMenu = "Выберите действие с клавиатуры."

	textDescriptionPrompt = "✏️ Введите описание:"
	textPhotoQuestion     = "У вас есть фото этой вещи?"
	textPhotoYesNo        = "Пожалуйста, выберите ✅ Да или ❌ Нет."
	textPhotoPrompt       = "📸 Пожалуйста, отправьте фото:"
	textPhotoExpected     = "📸 Ожидаю фото. Отправьте изображение или /cancel."

	textSavedWithPhoto    = "✅ Объявление с фото добавлено!"
	textSavedWithoutPhoto = "✅ Объявление без фото добавлено!"

	textNoFoundItems = "❌ Найденных вещей пока нет."
	textNoLostItems  = "❌ Потерянных вещей пока нет."
	textNoOwnPosts   = "❌ У вас пока нет добавленных постов."

	textCancelled = "❌ Действие отменено."

	textUserCountFmt = "👥 Общее количество пользователей: %d"

	textNoPhotoMark = "\n\n📌 *Фото не было отправлено*"

	textDeleteButton = "🗑 Удалить"
	textKeepButton   = "✅ Оставить"

	toastPostKept     = "👌 Хорошо, пост сохранён."
	toastDeleteDenied = "🚫 Можно удалять только свои посты."
	toastDeleted      = "🗑 Пост удалён."
)

const (
	templateFound = "❗️*Шаблон для сообщения, если вы нашли вещь:*\n\n" +
		"*1. Что вы нашли:*\n" +
		"_Кратко опишите предмет — например: студенческий, браслет, бутылка и т.п._\n\n" +
		"*2. Где нашли:*\n" +
		"_Укажите место: аудитория, корпус, коридор, столовая и т.п._\n\n" +
		"*3. Когда нашли:*\n" +
		"_Дата и время, если знаете_\n\n" +
		"*4. Контакт или где забрать:*"

	templateLost = "❗️*Шаблон для сообщения, если вы ищите вещь:*\n\n" +
		"*1. Что вы потеряли:*\n" +
		"_Кратко и понятно опишите предмет — например: зонт, ключи, студенческий билет и т.д._\n\n" +
		"*2. Где примерно потеряли:*\n" +
		"_Укажите корпус, аудиторию, зону (библиотека, столовая и т.д.)_\n\n" +
		"*3. Когда потеряли:*\n" +
		"_Дата и примерное время_\n\n" +
		"*4. Фото (если есть)*"
)
