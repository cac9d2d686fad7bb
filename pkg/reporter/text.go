package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/listtone/internal/ui/pretty"
	"github.com/yaklabco/listtone/pkg/analysis"
	"github.com/yaklabco/listtone/pkg/lint"
	"github.com/yaklabco/listtone/pkg/mdast"
	"github.com/yaklabco/listtone/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var totalIssues int
	if r.opts.GroupByFile && !r.opts.Compact {
		totalIssues = r.reportGrouped(ctx, result)
	} else {
		totalIssues = r.reportFlat(ctx, result)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return totalIssues, nil
}

// reportGrouped writes diagnostics under one header per file.
func (r *TextReporter) reportGrouped(_ context.Context, result *runner.Result) int {
	var total int

	for _, file := range result.Files {
		path := analysis.RelativePath(file.Path, r.opts.WorkingDir)

		if file.Error != nil {
			r.writeFileError(path, file.Error)
			continue
		}
		if file.Result == nil || len(file.Result.Diagnostics) == 0 {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Result.Diagnostics)))

		for _, diag := range file.Result.Diagnostics {
			diag.FilePath = path
			fmt.Fprint(r.bw, r.styles.FormatDiagnosticWithFormat(
				&diag, r.opts.ShowContext, r.sourceLine(file.Result.Snapshot, &diag), r.opts.RuleFormat))
			total++
		}

		fmt.Fprintln(r.bw)
	}

	return total
}

// reportFlat writes diagnostics without file headers. Compact mode emits
// one line per diagnostic.
func (r *TextReporter) reportFlat(_ context.Context, result *runner.Result) int {
	var total int

	for _, file := range result.Files {
		path := analysis.RelativePath(file.Path, r.opts.WorkingDir)

		if file.Error != nil {
			r.writeFileError(path, file.Error)
			continue
		}
		if file.Result == nil {
			continue
		}

		for _, diag := range file.Result.Diagnostics {
			diag.FilePath = path
			if r.opts.Compact {
				fmt.Fprint(r.bw, r.styles.FormatCompact(&diag, r.opts.RuleFormat))
			} else {
				fmt.Fprint(r.bw, r.styles.FormatDiagnosticWithFormat(
					&diag, r.opts.ShowContext, r.sourceLine(file.Result.Snapshot, &diag), r.opts.RuleFormat))
			}
			total++
		}
	}

	return total
}

func (r *TextReporter) writeFileError(path string, fileErr error) {
	fmt.Fprintf(r.bw, "%s: %s\n",
		r.styles.FilePath.Render(path),
		r.styles.Error.Render(fmt.Sprintf("error: %v", fileErr)),
	)
}

func (r *TextReporter) sourceLine(snapshot *mdast.FileSnapshot, diag *lint.Diagnostic) string {
	if !r.opts.ShowContext || snapshot == nil {
		return ""
	}
	return string(snapshot.LineContent(diag.StartLine))
}
