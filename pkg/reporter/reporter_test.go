package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/listtone/pkg/config"
	"github.com/yaklabco/listtone/pkg/lint"
	"github.com/yaklabco/listtone/pkg/mdast"
	"github.com/yaklabco/listtone/pkg/reporter"
	"github.com/yaklabco/listtone/pkg/runner"
)

const workDir = "/work"

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "sarif", input: "sarif", want: reporter.FormatSARIF},
		{name: "markdown", input: "markdown", want: reporter.FormatMarkdown},
		{name: "unknown format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, reporter.FormatText.IsValid())
	assert.True(t, reporter.FormatJSON.IsValid())
	assert.True(t, reporter.FormatSARIF.IsValid())
	assert.True(t, reporter.FormatMarkdown.IsValid())
	assert.False(t, reporter.Format("diff").IsValid())
	assert.False(t, reporter.Format("").IsValid())
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "sarif reporter", format: reporter.FormatSARIF},
		{name: "markdown reporter", format: reporter.FormatMarkdown},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			opts := reporter.DefaultOptions()
			opts.Writer = &bytes.Buffer{}
			opts.Format = tt.format

			rep, err := reporter.New(opts)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestTextReporter_NilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := textOptions(&buf)

	count, err := reporter.NewTextReporter(opts).Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Contains(t, buf.String(), "No files to check.")
}

func TestTextReporter_Grouped(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := textOptions(&buf)

	count, err := reporter.NewTextReporter(opts).Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	out := buf.String()
	assert.Contains(t, out, "README.md (2 issues)")
	assert.Contains(t, out, "README.md:3:1")
	assert.Contains(t, out, "no-ai-list-formatting")
	assert.Contains(t, out, "- **Summary**: all good")
	assert.Contains(t, out, "^^^^^^^^^^^^^^")
	assert.Contains(t, out, "docs/guide.md (1 issue)")
	assert.Contains(t, out, "broken.md: error: permission denied")
	assert.NotContains(t, out, workDir, "paths are relative to the working dir")
	assert.Contains(t, out, "3 issues (3 warnings) in 2 files, 1 unreadable")
}

func TestTextReporter_NoContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := textOptions(&buf)
	opts.ShowContext = false

	_, err := reporter.NewTextReporter(opts).Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "^")
}

func TestTextReporter_Compact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := textOptions(&buf)
	opts.Compact = true
	opts.ShowSummary = false
	opts.RuleFormat = config.RuleFormatID

	count, err := reporter.NewTextReporter(opts).Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "README.md:3:1: warning 箇条書きで太字の見出しとコロンを使う形式はAIっぽいです (AIL001)", lines[0])
	assert.Equal(t, "broken.md: error: permission denied", lines[3])
}

func TestTextReporter_RuleFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format config.RuleFormat
		want   string
	}{
		{format: config.RuleFormatName, want: "(no-ai-list-formatting)"},
		{format: config.RuleFormatID, want: "(AIL001)"},
		{format: config.RuleFormatCombined, want: "(AIL001/no-ai-list-formatting)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			opts := textOptions(&buf)
			opts.RuleFormat = tt.format

			_, err := reporter.NewTextReporter(opts).Report(context.Background(), createTestResult())
			require.NoError(t, err)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestJSONReporter_NilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf

	count, err := reporter.NewJSONReporter(opts).Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Empty(t, output.Files)
	assert.Empty(t, output.ByRule)
	assert.Equal(t, 0, output.Summary.TotalIssues)
}

func TestJSONReporter_WithDiagnostics(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.WorkingDir = workDir
	opts.ToolVersion = "1.2.3"

	count, err := reporter.NewJSONReporter(opts).Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.2.3", output.ToolVersion)
	require.Len(t, output.Files, 3)
	assert.Equal(t, "README.md", output.Files[0].Path)
	require.Len(t, output.Files[0].Diagnostics, 2)

	diag := output.Files[0].Diagnostics[0]
	assert.Equal(t, "AIL001", diag.RuleID)
	assert.Equal(t, "no-ai-list-formatting", diag.RuleName)
	assert.Equal(t, "warning", diag.Severity)
	assert.Equal(t, 3, diag.StartLine)
	assert.Equal(t, 15, diag.EndColumn)

	assert.Equal(t, "permission denied", output.Files[2].Error)

	assert.Equal(t, 2, output.Summary.FilesChecked)
	assert.Equal(t, 2, output.Summary.FilesWithIssues)
	assert.Equal(t, 1, output.Summary.FilesErrored)
	assert.Equal(t, map[string]int{"warning": 3}, output.Summary.BySeverity)

	require.Len(t, output.ByRule, 1)
	assert.Equal(t, 3, output.ByRule[0].Issues)
	assert.Equal(t, []string{"README.md", "docs/guide.md"}, output.ByRule[0].Files)

	assert.Contains(t, buf.String(), "🚀", "emoji are not escaped")
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Compact = true

	_, err := reporter.NewJSONReporter(opts).Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestSARIFReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.WorkingDir = workDir
	opts.ToolVersion = "1.2.3"
	opts.Rules = []config.RuleInfo{
		{ID: "AIL001", Name: "no-ai-list-formatting", Description: "first", Enabled: true, Severity: config.SeverityWarning, Tags: []string{"ai"}},
		{ID: "AIL002", Name: "no-ai-list-formatting-strict", Description: "second", Severity: config.SeverityError},
	}

	count, err := reporter.NewSARIFReporter(opts).Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	var output reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "2.1.0", output.Version)
	require.Len(t, output.Runs, 1)
	run := output.Runs[0]

	assert.Equal(t, "listtone", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)
	require.Len(t, run.Tool.Driver.Rules, 2)
	assert.Equal(t, "error", run.Tool.Driver.Rules[1].DefaultConfig.Level)
	assert.False(t, run.Tool.Driver.Rules[1].DefaultConfig.Enabled)

	require.Len(t, run.Results, 3)
	first := run.Results[0]
	assert.Equal(t, "AIL001", first.RuleID)
	assert.Equal(t, 0, first.RuleIndex)
	assert.Equal(t, "warning", first.Level)
	assert.Equal(t, "README.md", first.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, 3, first.Locations[0].PhysicalLocation.Region.StartLine)

	require.Len(t, run.Invocations, 1)
	assert.False(t, run.Invocations[0].ExecutionSuccessful)
	assert.Equal(t, "permission denied", run.Invocations[0].ToolExecutionNotifications[0].Message.Text)
}

func TestSARIFReporter_DerivesRules(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf

	_, err := reporter.NewSARIFReporter(opts).Report(context.Background(), createTestResult())
	require.NoError(t, err)

	var output reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	rules := output.Runs[0].Tool.Driver.Rules
	require.Len(t, rules, 1)
	assert.Equal(t, "AIL001", rules[0].ID)
	assert.Equal(t, "no-ai-list-formatting", rules[0].Name)
	assert.Equal(t, "warning", rules[0].DefaultConfig.Level)
}

func TestMarkdownReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf
	opts.Format = reporter.FormatMarkdown
	opts.WorkingDir = workDir
	opts.RuleFormat = config.RuleFormatID

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	count, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	out := buf.String()
	assert.Contains(t, out, "# listtone report")
	assert.Contains(t, out, "## Summary")
	assert.Contains(t, out, "## Rules")
	assert.Contains(t, out, "## Files")
	assert.Contains(t, out, "## Diagnostics")
	assert.Contains(t, out, "## Unreadable files")
	assert.Contains(t, out, "README.md:3:1")
	assert.Contains(t, out, "docs/guide.md")
	assert.Contains(t, out, "AIL001")
	assert.Contains(t, out, "broken.md: permission denied")
}

func TestMarkdownReporter_Clean(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := reporter.DefaultOptions()
	opts.Writer = &buf

	err := reporter.NewMarkdownRenderer(opts).Render(context.Background(), nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "# listtone report")
	assert.Contains(t, out, "No issues found.")
	assert.NotContains(t, out, "## Diagnostics")
}

func textOptions(buf *bytes.Buffer) reporter.Options {
	opts := reporter.DefaultOptions()
	opts.Writer = buf
	opts.Color = "never"
	opts.WorkingDir = workDir
	return opts
}

// createTestResult builds a result with two linted files and one
// unreadable file under workDir.
func createTestResult() *runner.Result {
	readme := filepath.Join(workDir, "README.md")
	readmeContent := []byte("# Project\n\n- **Summary**: all good\n- **Risk**: low\n")
	guide := filepath.Join(workDir, "docs", "guide.md")
	guideContent := []byte("- shipped 🚀\n")

	boldMsg := "箇条書きで太字の見出しとコロンを使う形式はAIっぽいです"

	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: readme,
				Result: &lint.FileResult{
					Snapshot: mdast.NewFileSnapshot(readme, readmeContent),
					Diagnostics: []lint.Diagnostic{
						{
							RuleID: "AIL001", RuleName: "no-ai-list-formatting", Message: boldMsg,
							Severity: config.SeverityWarning, FilePath: readme,
							StartLine: 3, StartColumn: 1, EndLine: 3, EndColumn: 15,
						},
						{
							RuleID: "AIL001", RuleName: "no-ai-list-formatting", Message: boldMsg,
							Severity: config.SeverityWarning, FilePath: readme,
							StartLine: 4, StartColumn: 1, EndLine: 4, EndColumn: 12,
						},
					},
				},
			},
			{
				Path: guide,
				Result: &lint.FileResult{
					Snapshot: mdast.NewFileSnapshot(guide, guideContent),
					Diagnostics: []lint.Diagnostic{
						{
							RuleID: "AIL001", RuleName: "no-ai-list-formatting", Message: "絵文字「🚀」",
							Severity: config.SeverityWarning, FilePath: guide,
							StartLine: 1, StartColumn: 11, EndLine: 1, EndColumn: 15,
						},
					},
				},
			},
			{
				Path:  filepath.Join(workDir, "broken.md"),
				Error: errors.New("permission denied"),
			},
		},
		Stats: runner.Stats{
			FilesDiscovered:       3,
			FilesProcessed:        2,
			FilesErrored:          1,
			FilesWithIssues:       2,
			DiagnosticsTotal:      3,
			DiagnosticsBySeverity: map[config.Severity]int{config.SeverityWarning: 3},
			DiagnosticsByRule:     map[string]int{"AIL001": 3},
		},
	}
}
