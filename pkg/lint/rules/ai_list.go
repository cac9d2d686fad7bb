package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/listtone/pkg/lint"
	"github.com/yaklabco/listtone/pkg/mdast"
)

// Option keys understood by the list formatting rules.
const (
	OptionAllows       = "allows"
	OptionDisableBold  = "disableBoldListItems"
	OptionDisableEmoji = "disableEmojiListItems"
)

// Rule IDs of the two list formatting variants.
const (
	IDListFormatting       = "AIL001"
	IDListFormattingStrict = "AIL002"
)

// ListFormattingIDs returns the IDs of every list formatting variant.
func ListFormattingIDs() []string {
	return []string{IDListFormatting, IDListFormattingStrict}
}

// KnownOptions lists the option keys the list formatting rules accept.
func KnownOptions() []string {
	return []string{OptionAllows, OptionDisableBold, OptionDisableEmoji}
}

// unicodeSpace is the whitespace class of the bold+colon check. RE2's \s is
// ASCII only; this adds the Unicode spaces (U+3000 in Japanese prose, U+00A0,
// U+FEFF and the rest of Zs) so "- **要約**\u3000:" is caught too.
const unicodeSpace = `[\s\v\x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}]`

// boldColonPattern matches a list marker followed by a bold label and a colon,
// e.g. "- **Summary**:".
var boldColonPattern = regexp.MustCompile(
	`^` + unicodeSpace + `*[-*+]` + unicodeSpace + `+\*\*([^*]+)\*\*` + unicodeSpace + `*:`)

// Finding is one issue found in a list item. Start and End are byte offsets
// into the item text, End exclusive.
type Finding struct {
	Message string
	Start   int
	End     int
}

// InspectorOptions configures an Inspector.
type InspectorOptions struct {
	// Allows exempts items whose text matches any entry.
	Allows []string

	// DisableBold skips the bold label check.
	DisableBold bool

	// DisableEmoji skips the emoji check.
	DisableEmoji bool
}

// Variant selects how allow entries are matched and how findings are worded.
type Variant struct {
	// NewAllowMatcher compiles the allows option.
	NewAllowMatcher func(entries []string) AllowMatcher

	// Messages is the wording for findings.
	Messages Messages
}

// StrictVariant reports with strong wording and matches allow entries as
// plain substrings.
func StrictVariant() Variant {
	return Variant{NewAllowMatcher: NewLiteralAllows, Messages: strongMessages}
}

// SoftVariant reports with softened wording and accepts /pattern/flags
// allow entries.
func SoftVariant() Variant {
	return Variant{NewAllowMatcher: NewPatternAllows, Messages: softMessages}
}

// Inspector classifies the text of a single list item. It holds no mutable
// state and may be shared between goroutines.
type Inspector struct {
	allows   AllowMatcher
	messages Messages
	opts     InspectorOptions
}

// NewInspector compiles opts for the given variant.
func NewInspector(variant Variant, opts InspectorOptions) *Inspector {
	return &Inspector{
		allows:   variant.NewAllowMatcher(opts.Allows),
		messages: variant.Messages,
		opts:     opts,
	}
}

// Inspect returns the findings for one list item's source text, marker
// included. It reports at most one bold label and one emoji.
func (in *Inspector) Inspect(text string) []Finding {
	if text == "" || in.allows.Allows(text) {
		return nil
	}

	var findings []Finding

	if !in.opts.DisableBold {
		if loc := boldColonPattern.FindStringIndex(text); loc != nil {
			findings = append(findings, Finding{
				Message: in.messages.BoldColon,
				Start:   loc[0],
				End:     loc[1],
			})
		}
	}

	if !in.opts.DisableEmoji {
		for _, glyph := range emojiCatalog {
			if idx := strings.Index(text, glyph); idx >= 0 {
				findings = append(findings, Finding{
					Message: in.messages.Emoji(glyph),
					Start:   idx,
					End:     idx + len(glyph),
				})
				break
			}
		}
	}

	return findings
}

// AIListFormattingRule reports list items that open with a bold label and
// a colon, or that contain a catalog emoji.
type AIListFormattingRule struct {
	lint.BaseRule
	variant        Variant
	defaultEnabled bool
}

// NewAIListFormattingRule creates the default rule with softened wording
// and pattern-aware allows.
func NewAIListFormattingRule() *AIListFormattingRule {
	return &AIListFormattingRule{
		BaseRule: lint.NewBaseRule(
			IDListFormatting,
			"no-ai-list-formatting",
			"List items should not open with a bold label and colon or contain decorative emoji",
			[]string{"lists", "style", "tone"},
		),
		variant:        SoftVariant(),
		defaultEnabled: true,
	}
}

// NewAIListFormattingStrictRule creates the opt-in rule with strong wording
// and substring-only allows.
func NewAIListFormattingStrictRule() *AIListFormattingRule {
	return &AIListFormattingRule{
		BaseRule: lint.NewBaseRule(
			IDListFormattingStrict,
			"no-ai-list-formatting-strict",
			"Strict wording of no-ai-list-formatting; allows entries are matched as plain text",
			[]string{"lists", "style", "tone", "strict"},
		),
		variant:        StrictVariant(),
		defaultEnabled: false,
	}
}

// DefaultEnabled returns whether the rule runs without explicit configuration.
func (r *AIListFormattingRule) DefaultEnabled() bool {
	return r.defaultEnabled
}

// Variant returns the rule's matching and wording strategy.
func (r *AIListFormattingRule) Variant() Variant {
	return r.variant
}

// Apply inspects every list item in document order.
func (r *AIListFormattingRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Root == nil || ctx.File == nil {
		return nil, nil
	}

	inspector := NewInspector(r.variant, InspectorOptions{
		Allows:       ctx.OptionStringSlice(OptionAllows, nil),
		DisableBold:  ctx.OptionBool(OptionDisableBold, false),
		DisableEmoji: ctx.OptionBool(OptionDisableEmoji, false),
	})

	var diags []lint.Diagnostic

	err := ctx.Dispatch(lint.NodeHandlers{
		mdast.NodeListItem: func(item *mdast.Node) error {
			for _, finding := range inspector.Inspect(string(item.Text())) {
				pos := ctx.LocateRange(item, finding.Start, finding.End)
				diags = append(diags, lint.NewDiagnosticAt(r.ID(), ctx.File.Path, pos, finding.Message).
					WithRuleName(r.Name()).
					WithSeverity(r.DefaultSeverity()).
					Build())
			}
			return nil
		},
	})
	if err != nil {
		return diags, fmt.Errorf("%s: %w", r.ID(), err)
	}

	return diags, nil
}
