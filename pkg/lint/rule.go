// Package lint runs listtone rules over parsed Markdown: rule registry,
// per-file engine, node dispatch and diagnostics.
package lint

import (
	"github.com/yaklabco/listtone/pkg/config"
	"github.com/yaklabco/listtone/pkg/mdast"
)

// Diagnostic is one finding, positioned in its file. Lines and columns are
// 1-based; columns count bytes and EndColumn is exclusive.
type Diagnostic struct {
	RuleID   string
	RuleName string
	Message  string
	Severity config.Severity
	FilePath string

	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int

	// Suggestion is optional advice shown after the message.
	Suggestion string
}

// SourcePosition returns the span covered by the diagnostic.
func (d *Diagnostic) SourcePosition() mdast.SourcePosition {
	return mdast.SourcePosition{
		StartLine:   d.StartLine,
		StartColumn: d.StartColumn,
		EndLine:     d.EndLine,
		EndColumn:   d.EndColumn,
	}
}

// Rule is a check applied to one file at a time. Implementations hold no
// per-file state: everything a run needs arrives through the RuleContext,
// so one Rule value is shared by all runner workers.
type Rule interface {
	// ID is the stable identifier used in config keys, e.g. "AIL001".
	ID() string
	// Name is the kebab-case alias accepted wherever an ID is.
	Name() string
	Description() string

	DefaultEnabled() bool
	DefaultSeverity() config.Severity
	Tags() []string

	// Apply returns the rule's findings for the file. An error means the
	// rule itself failed; it is recorded per rule and other rules still run.
	Apply(ctx *RuleContext) ([]Diagnostic, error)
}
