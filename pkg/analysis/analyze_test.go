package analysis_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/listtone/pkg/analysis"
	"github.com/yaklabco/listtone/pkg/config"
	"github.com/yaklabco/listtone/pkg/lint"
	"github.com/yaklabco/listtone/pkg/runner"
)

func diag(path, ruleID string, sev config.Severity, line int) lint.Diagnostic {
	return lint.Diagnostic{
		RuleID:      ruleID,
		RuleName:    map[string]string{"AIL001": "no-ai-list-formatting", "AIL002": "no-ai-list-formatting-strict"}[ruleID],
		Message:     "msg",
		Severity:    sev,
		FilePath:    path,
		StartLine:   line,
		StartColumn: 1,
		EndLine:     line,
		EndColumn:   5,
	}
}

func sampleResult() *runner.Result {
	return &runner.Result{Files: []runner.FileOutcome{
		{Path: "/work/a.md", Result: &lint.FileResult{Diagnostics: []lint.Diagnostic{
			diag("/work/a.md", "AIL001", config.SeverityWarning, 1),
			diag("/work/a.md", "AIL002", config.SeverityError, 1),
		}}},
		{Path: "/work/b.md", Result: &lint.FileResult{Diagnostics: []lint.Diagnostic{
			diag("/work/b.md", "AIL001", config.SeverityWarning, 2),
			diag("/work/b.md", "AIL001", "", 3),
			diag("/work/b.md", "AIL001", config.SeverityInfo, 4),
		}}},
		{Path: "/work/clean.md", Result: &lint.FileResult{}},
		{Path: "/work/broken.md", Error: errors.New("permission denied")},
	}}
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	opts := analysis.DefaultOptions()
	opts.WorkingDir = "/work"
	report := analysis.Analyze(sampleResult(), opts)

	assert.Equal(t, analysis.Totals{
		Files:           3,
		FilesWithIssues: 2,
		FilesErrored:    1,
		Issues:          5,
		Errors:          1,
		Warnings:        3,
		Infos:           1,
	}, report.Totals)

	require.Len(t, report.Diagnostics, 5)
	assert.Equal(t, "a.md", report.Diagnostics[0].FilePath)
	assert.Equal(t, "warning", report.Diagnostics[3].Severity, "empty severity counts as warning")

	require.Len(t, report.ByRule, 2)
	assert.Equal(t, "AIL001", report.ByRule[0].RuleID)
	assert.Equal(t, 4, report.ByRule[0].Issues)
	assert.Equal(t, []string{"a.md", "b.md"}, report.ByRule[0].Files)

	require.Len(t, report.ByFile, 2, "files without issues are omitted")
	assert.Equal(t, "b.md", report.ByFile[0].Path)
	assert.Equal(t, []string{"AIL001", "AIL002"}, report.ByFile[1].Rules)

	require.Len(t, report.Errored, 1)
	assert.Equal(t, "broken.md", report.Errored[0].Path)
}

func TestAnalyzeSorting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		sortBy    analysis.SortField
		desc      bool
		wantRules []string
		wantFiles []string
	}{
		{"count desc", analysis.SortByCount, true, []string{"AIL001", "AIL002"}, []string{"/work/b.md", "/work/a.md"}},
		{"count asc", analysis.SortByCount, false, []string{"AIL002", "AIL001"}, []string{"/work/a.md", "/work/b.md"}},
		{"alpha", analysis.SortByAlpha, false, []string{"AIL001", "AIL002"}, []string{"/work/a.md", "/work/b.md"}},
		{"severity", analysis.SortBySeverity, false, []string{"AIL002", "AIL001"}, []string{"/work/a.md", "/work/b.md"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			report := analysis.Analyze(sampleResult(), analysis.Options{
				IncludeByRule: true,
				IncludeByFile: true,
				SortBy:        tc.sortBy,
				SortDesc:      tc.desc,
			})

			var rules, files []string
			for _, r := range report.ByRule {
				rules = append(rules, r.RuleID)
			}
			for _, f := range report.ByFile {
				files = append(files, f.Path)
			}
			assert.Equal(t, tc.wantRules, rules)
			assert.Equal(t, tc.wantFiles, files)
			assert.Empty(t, report.Diagnostics)
		})
	}
}

func TestAnalyzeNil(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(nil, analysis.DefaultOptions())
	assert.False(t, report.Totals.HasIssues())
	assert.False(t, report.Totals.HasErrors())
}

func TestSortFieldIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, analysis.SortByCount.IsValid())
	assert.True(t, analysis.SortBySeverity.IsValid())
	assert.False(t, analysis.SortField("random").IsValid())
}
