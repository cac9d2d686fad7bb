package rules

import "fmt"

// Messages is the wording a rule variant uses for its findings.
type Messages struct {
	// BoldColon is reported for a bold lead-in label followed by a colon.
	BoldColon string

	// EmojiFormat is reported for a catalog emoji; %s receives the glyph.
	EmojiFormat string
}

// Emoji formats the emoji message for glyph.
func (m Messages) Emoji(glyph string) string {
	return fmt.Sprintf(m.EmojiFormat, glyph)
}

// strongMessages flag the pattern as AI-like outright.
//
//nolint:gochecknoglobals // Read-only message table.
var strongMessages = Messages{
	BoldColon:   "リストアイテムで強調（**）とコロン（:）の組み合わせはAIっぽい記述です。より自然な表現を使用してください。",
	EmojiFormat: "リストアイテムで絵文字「%s」を使用するのはAIっぽい記述です。テキストベースの表現を使用してください。",
}

// softMessages describe the pattern as possibly mechanical and suggest,
// rather than demand, an alternative.
//
//nolint:gochecknoglobals // Read-only message table.
var softMessages = Messages{
	BoldColon:   "リストアイテムで強調（**）とコロン（:）の組み合わせは機械的な印象を与える可能性があります。より自然な表現を検討してください。",
	EmojiFormat: "リストアイテムでの絵文字「%s」の使用は、読み手によっては機械的な印象を与える場合があります。テキストベースの表現も検討してみてください。",
}
