package rules

import (
	"regexp"
	"strings"
)

// AllowEntry is one parsed entry of a rule's allows option.
//
// Entries written as /source/flags are patterns; everything else is a
// literal that matches when the item text contains it.
type AllowEntry struct {
	raw     string
	pattern bool
	re      *regexp.Regexp
}

// ParseAllowEntry parses a single allows entry.
//
// Pattern flags i, m and s map to the RE2 flags of the same name; d, g, u, v
// and y are accepted and have no effect on a containment search. A trailing
// part that is not made of those flags means the entry is not a pattern, so
// "/usr/bin" is a literal. A pattern RE2 cannot compile never matches, and
// "//" matches every item.
func ParseAllowEntry(s string) AllowEntry {
	source, flags, ok := splitPattern(s)
	if !ok {
		return AllowEntry{raw: s}
	}

	var inline strings.Builder
	for _, flag := range flags {
		switch flag {
		case 'i', 'm', 's':
			if !strings.ContainsRune(inline.String(), flag) {
				inline.WriteRune(flag)
			}
		case 'd', 'g', 'u', 'v', 'y':
		default:
			return AllowEntry{raw: s}
		}
	}

	entry := AllowEntry{raw: s, pattern: true}

	expr := source
	if inline.Len() > 0 {
		expr = "(?" + inline.String() + ")" + source
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return entry
	}
	entry.re = re
	return entry
}

// splitPattern splits /source/flags into its parts. Strings that do not
// start with a slash or have no closing slash are not patterns.
func splitPattern(s string) (string, string, bool) {
	if len(s) < 2 || s[0] != '/' {
		return "", "", false
	}
	closing := strings.LastIndexByte(s, '/')
	if closing == 0 {
		return "", "", false
	}
	return s[1:closing], s[closing+1:], true
}

// Raw returns the entry as written in the configuration.
func (e AllowEntry) Raw() string {
	return e.raw
}

// IsPattern reports whether the entry was written as /source/flags.
func (e AllowEntry) IsPattern() bool {
	return e.pattern
}

// Valid reports whether a pattern entry compiled. Literals are always valid.
func (e AllowEntry) Valid() bool {
	return !e.pattern || e.re != nil
}

// Matches reports whether the entry matches anywhere in text.
func (e AllowEntry) Matches(text string) bool {
	if !e.pattern {
		return strings.Contains(text, e.raw)
	}
	return e.re != nil && e.re.MatchString(text)
}

// AllowMatcher decides whether an item's text is exempt from inspection.
type AllowMatcher interface {
	Allows(text string) bool
}

// literalAllows treats every entry, including /.../ forms, as a substring.
type literalAllows []string

// Allows reports whether text contains any entry.
func (l literalAllows) Allows(text string) bool {
	for _, s := range l {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

// patternAllows matches literal entries by containment and pattern entries
// by regular expression search.
type patternAllows []AllowEntry

// Allows reports whether any entry matches text.
func (p patternAllows) Allows(text string) bool {
	for _, entry := range p {
		if entry.Matches(text) {
			return true
		}
	}
	return false
}

// NewLiteralAllows returns a matcher that only does substring containment.
//
//nolint:ireturn // Strategy constructor.
func NewLiteralAllows(entries []string) AllowMatcher {
	return literalAllows(entries)
}

// NewPatternAllows returns a matcher that understands /source/flags entries.
//
//nolint:ireturn // Strategy constructor.
func NewPatternAllows(entries []string) AllowMatcher {
	parsed := make(patternAllows, 0, len(entries))
	for _, s := range entries {
		parsed = append(parsed, ParseAllowEntry(s))
	}
	return parsed
}
