package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/yaklabco/listtone/pkg/analysis"
	"github.com/yaklabco/listtone/pkg/config"
)

// MarkdownRenderer writes an analysis.Report as a Markdown document,
// suitable for CI job summaries and pull request comments.
type MarkdownRenderer struct {
	w          io.Writer
	ruleFormat config.RuleFormat
	version    string
}

var _ Renderer = (*MarkdownRenderer)(nil)

// NewMarkdownRenderer creates a renderer writing to opts.Writer.
func NewMarkdownRenderer(opts Options) *MarkdownRenderer {
	return &MarkdownRenderer{
		w:          opts.Writer,
		ruleFormat: opts.RuleFormat,
		version:    opts.ToolVersion,
	}
}

// Render implements Renderer.
func (r *MarkdownRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report == nil {
		report = &analysis.Report{}
	}

	md := markdown.NewMarkdown(r.w)

	md.H1("listtone report")
	md.PlainText("")

	r.writeSummary(md, report)
	r.writeRules(md, report)
	r.writeFiles(md, report)
	r.writeDiagnostics(md, report)
	r.writeErrored(md, report)
	r.writeFooter(md)

	if err := md.Build(); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

func (r *MarkdownRenderer) writeSummary(md *markdown.Markdown, report *analysis.Report) {
	totals := report.Totals

	md.H2("Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Files checked", strconv.Itoa(totals.Files)},
			{"Files with issues", strconv.Itoa(totals.FilesWithIssues)},
			{"Files unreadable", strconv.Itoa(totals.FilesErrored)},
			{"Issues", strconv.Itoa(totals.Issues)},
			{"Errors", strconv.Itoa(totals.Errors)},
			{"Warnings", strconv.Itoa(totals.Warnings)},
			{"Info", strconv.Itoa(totals.Infos)},
		},
	})
	md.PlainText("")

	switch {
	case totals.HasErrors():
		md.Cautionf("%d list %s must be rewritten.", totals.Errors, pluralWord(totals.Errors, "item", "items"))
	case totals.HasIssues():
		md.Warningf("%d list %s flagged.", totals.Issues, pluralWord(totals.Issues, "item", "items"))
	default:
		md.Tip("No issues found.")
	}
	md.PlainText("")
}

func (r *MarkdownRenderer) writeRules(md *markdown.Markdown, report *analysis.Report) {
	if len(report.ByRule) == 0 {
		return
	}

	rows := make([][]string, 0, len(report.ByRule))
	for _, ra := range report.ByRule {
		rows = append(rows, []string{
			config.FormatRuleID(r.ruleFormat, ra.RuleID, ra.RuleName),
			strconv.Itoa(ra.Issues),
			strconv.Itoa(len(ra.Files)),
		})
	}

	md.H2("Rules")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Rule", "Issues", "Files"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (r *MarkdownRenderer) writeFiles(md *markdown.Markdown, report *analysis.Report) {
	if len(report.ByFile) == 0 {
		return
	}

	rows := make([][]string, 0, len(report.ByFile))
	for _, fa := range report.ByFile {
		rows = append(rows, []string{
			escapeCell(fa.Path),
			strconv.Itoa(fa.Issues),
			strings.Join(fa.Rules, ", "),
		})
	}

	md.H2("Files")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"File", "Issues", "Rules"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (r *MarkdownRenderer) writeDiagnostics(md *markdown.Markdown, report *analysis.Report) {
	if len(report.Diagnostics) == 0 {
		return
	}

	rows := make([][]string, 0, len(report.Diagnostics))
	for _, d := range report.Diagnostics {
		rows = append(rows, []string{
			escapeCell(fmt.Sprintf("%s:%d:%d", d.FilePath, d.StartLine, d.StartColumn)),
			d.Severity,
			config.FormatRuleID(r.ruleFormat, d.RuleID, d.RuleName),
			escapeCell(d.Message),
		})
	}

	md.H2("Diagnostics")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Location", "Severity", "Rule", "Message"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (r *MarkdownRenderer) writeErrored(md *markdown.Markdown, report *analysis.Report) {
	if len(report.Errored) == 0 {
		return
	}

	items := make([]string, 0, len(report.Errored))
	for _, fe := range report.Errored {
		items = append(items, fe.Path+": "+fe.Error)
	}

	md.H2("Unreadable files")
	md.PlainText("")
	md.BulletList(items...)
	md.PlainText("")
}

func (r *MarkdownRenderer) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	if r.version != "" {
		md.PlainTextf("*Generated by [listtone](%s) %s*", toolInformationURI, r.version)
		return
	}
	md.PlainTextf("*Generated by [listtone](%s)*", toolInformationURI)
}

// escapeCell keeps pipes in paths and messages from splitting table cells.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func pluralWord(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
