package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/listtone/pkg/config"
	"github.com/yaklabco/listtone/pkg/lint"
)

// sourceIndent aligns source context under the diagnostic line.
const sourceIndent = "        "

// FormatDiagnostic formats a diagnostic with the rule shown by name.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, showContext bool, sourceLine string) string {
	return s.FormatDiagnosticWithFormat(diag, showContext, sourceLine, config.RuleFormatName)
}

// FormatDiagnosticWithFormat formats a diagnostic with configurable rule identifier format.
func (s *Styles) FormatDiagnosticWithFormat(
	diag *lint.Diagnostic,
	showContext bool,
	sourceLine string,
	ruleFormat config.RuleFormat,
) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.FilePath),
		diag.StartLine,
		diag.StartColumn,
	)

	ruleIdentifier := config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.RuleID.Render("("+ruleIdentifier+")"),
	)

	if showContext && sourceLine != "" {
		endColumn := 0
		if diag.EndLine == diag.StartLine {
			endColumn = diag.EndColumn
		}
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.StartColumn, endColumn))
	}

	if diag.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(diag.Suggestion) + "\n")
	}

	return builder.String()
}

// FormatCompact formats a diagnostic as a single unstyled-width line:
// path:line:col: severity message (rule).
func (s *Styles) FormatCompact(diag *lint.Diagnostic, ruleFormat config.RuleFormat) string {
	return fmt.Sprintf("%s:%d:%d: %s %s (%s)\n",
		s.FilePath.Render(diag.FilePath),
		diag.StartLine,
		diag.StartColumn,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.RuleID.Render(config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)),
	)
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a marker under the
// reported span. startColumn and endColumn are 1-based byte columns,
// endColumn exclusive; an endColumn at or before startColumn marks a
// single cell. The marker is aligned by display width so wide glyphs
// such as emoji line up.
func (s *Styles) FormatSourceContext(line string, startColumn, endColumn int) string {
	var builder strings.Builder

	builder.WriteString(sourceIndent + s.SourceLine.Render(line) + "\n")

	if startColumn <= 0 {
		return builder.String()
	}

	start := min(startColumn-1, len(line))
	end := start
	if endColumn > startColumn {
		end = min(endColumn-1, len(line))
	}

	padding := lipgloss.Width(line[:start])
	width := max(lipgloss.Width(line[start:end]), 1)

	builder.WriteString(sourceIndent + strings.Repeat(" ", padding) +
		s.Caret.Render(strings.Repeat("^", width)) + "\n")

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
