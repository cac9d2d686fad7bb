package analysis

import (
	"cmp"
	"path/filepath"
	"slices"

	"github.com/yaklabco/listtone/pkg/config"
	"github.com/yaklabco/listtone/pkg/runner"
)

const (
	severityError   = string(config.SeverityError)
	severityWarning = string(config.SeverityWarning)
	severityInfo    = string(config.SeverityInfo)
)

// RelativePath converts an absolute path to a path relative to workDir.
// If workDir is empty or conversion fails, it returns the original path.
func RelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return filepath.ToSlash(relPath)
}

type analysisContext struct {
	ruleMap   map[string]*RuleAnalysis
	fileMap   map[string]*FileAnalysis
	ruleFiles map[string]map[string]bool
	fileRules map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		ruleMap:   make(map[string]*RuleAnalysis),
		fileMap:   make(map[string]*FileAnalysis),
		ruleFiles: make(map[string]map[string]bool),
		fileRules: make(map[string]map[string]bool),
	}
}

func normalizeSeverity(sev config.Severity) string {
	if sev == "" {
		return severityWarning
	}
	return string(sev)
}

func (ctx *analysisContext) file(path string) *FileAnalysis {
	if _, ok := ctx.fileMap[path]; !ok {
		ctx.fileMap[path] = &FileAnalysis{Path: path}
		ctx.fileRules[path] = make(map[string]bool)
	}
	return ctx.fileMap[path]
}

func (ctx *analysisContext) rule(ruleID, ruleName string) *RuleAnalysis {
	if _, ok := ctx.ruleMap[ruleID]; !ok {
		ctx.ruleMap[ruleID] = &RuleAnalysis{RuleID: ruleID, RuleName: ruleName}
		ctx.ruleFiles[ruleID] = make(map[string]bool)
	}
	return ctx.ruleMap[ruleID]
}

func (ctx *analysisContext) buildByRule(opts Options) []RuleAnalysis {
	result := make([]RuleAnalysis, 0, len(ctx.ruleMap))
	for ruleID, ra := range ctx.ruleMap {
		for f := range ctx.ruleFiles[ruleID] {
			ra.Files = append(ra.Files, f)
		}
		slices.Sort(ra.Files)
		result = append(result, *ra)
	}
	slices.SortFunc(result, func(left, right RuleAnalysis) int {
		return cmp.Or(
			compareCounts(opts, left.Issues, right.Issues, left.Errors, right.Errors, left.Warnings, right.Warnings),
			cmp.Compare(left.RuleID, right.RuleID),
		)
	})
	return result
}

func (ctx *analysisContext) buildByFile(opts Options) []FileAnalysis {
	result := make([]FileAnalysis, 0, len(ctx.fileMap))
	for path, fa := range ctx.fileMap {
		if fa.Issues == 0 {
			continue
		}
		for r := range ctx.fileRules[path] {
			fa.Rules = append(fa.Rules, r)
		}
		slices.Sort(fa.Rules)
		result = append(result, *fa)
	}
	slices.SortFunc(result, func(left, right FileAnalysis) int {
		return cmp.Or(
			compareCounts(opts, left.Issues, right.Issues, left.Errors, right.Errors, left.Warnings, right.Warnings),
			cmp.Compare(left.Path, right.Path),
		)
	})
	return result
}

// compareCounts orders two aggregates by the configured sort field. Ties
// are left to the caller's name comparison.
func compareCounts(opts Options, leftIssues, rightIssues, leftErrors, rightErrors, leftWarn, rightWarn int) int {
	switch opts.SortBy {
	case SortByAlpha:
		return 0
	case SortBySeverity:
		return cmp.Or(
			cmp.Compare(rightErrors, leftErrors),
			cmp.Compare(rightWarn, leftWarn),
			cmp.Compare(rightIssues, leftIssues),
		)
	default:
		if opts.SortDesc {
			return cmp.Compare(rightIssues, leftIssues)
		}
		return cmp.Compare(leftIssues, rightIssues)
	}
}

// Analyze transforms a runner.Result into a Report in a single pass.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext()

	for _, file := range result.Files {
		displayPath := RelativePath(file.Path, opts.WorkingDir)

		if file.Error != nil {
			report.Totals.FilesErrored++
			report.Errored = append(report.Errored, FileError{Path: displayPath, Error: file.Error.Error()})
			continue
		}

		report.Totals.Files++
		if file.Result == nil {
			continue
		}
		if len(file.Result.Diagnostics) > 0 {
			report.Totals.FilesWithIssues++
		}

		fa := ctx.file(displayPath)

		for _, diag := range file.Result.Diagnostics {
			severity := normalizeSeverity(diag.Severity)

			report.Totals.add(severity)
			fa.add(severity)
			ctx.fileRules[displayPath][diag.RuleID] = true

			ra := ctx.rule(diag.RuleID, diag.RuleName)
			ra.add(severity)
			ctx.ruleFiles[diag.RuleID][displayPath] = true

			if opts.IncludeDiagnostics {
				report.Diagnostics = append(report.Diagnostics, DiagnosticEntry{
					FilePath:    displayPath,
					RuleID:      diag.RuleID,
					RuleName:    diag.RuleName,
					Severity:    severity,
					Message:     diag.Message,
					StartLine:   diag.StartLine,
					StartColumn: diag.StartColumn,
					EndLine:     diag.EndLine,
					EndColumn:   diag.EndColumn,
					Suggestion:  diag.Suggestion,
				})
			}
		}
	}

	if opts.IncludeByRule {
		report.ByRule = ctx.buildByRule(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = ctx.buildByFile(opts)
	}

	return report
}
