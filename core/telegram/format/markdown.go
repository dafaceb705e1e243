package format

import "strings"

var markdownV1Replacer = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"`", "\\`",
	"[", "\\[",
)

// EscapeMarkdown escapes the characters Telegram treats as Markdown (V1)
// entities so user-supplied text can be embedded in formatted messages.
func EscapeMarkdown(text string) string {
	return markdownV1Replacer.Replace(text)
}
