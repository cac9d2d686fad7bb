package rules

import "slices"

// emojiCatalog lists the glyphs reported inside list items, in the order
// they are searched. The warning sign carries its U+FE0F variation selector
// and only matches with it.
//
//nolint:gochecknoglobals // Read-only lookup table.
var emojiCatalog = []string{
	"✅",
	"❌",
	"⭐",
	"💡",
	"🔥",
	"📝",
	"⚡",
	"🎯",
	"🚀",
	"🎉",
	"📌",
	"🔍",
	"💰",
	"📊",
	"🔧",
	"⚠️",
	"❗",
	"💻",
	"📱",
	"🌟",
}

// EmojiCatalog returns a copy of the emoji catalog in search order.
func EmojiCatalog() []string {
	return slices.Clone(emojiCatalog)
}
