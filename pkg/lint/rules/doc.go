// Package rules provides the built-in lint rules for listtone.
//
// Both rules inspect the raw source of every list item, marker included,
// and report two patterns common in machine-generated prose:
//
//   - a bold lead-in label followed by a colon, e.g. "- **Summary**: ...";
//   - an emoji from a fixed catalog anywhere in the item.
//
// The rules share one Inspector and differ only in their Variant:
//
//   - AIL001: no-ai-list-formatting - softened wording, allows entries may
//     be /pattern/flags regular expressions (enabled by default)
//   - AIL002: no-ai-list-formatting-strict - strong wording, allows entries
//     are plain substrings (disabled by default)
//
// # Options
//
//   - allows: list of strings; an item whose text matches any entry is skipped
//   - disableBoldListItems: skip the bold label check
//   - disableEmojiListItems: skip the emoji check
//
// Nested items are part of their parent's text, so an emoji in a nested item
// is reported once for each enclosing item.
package rules
