package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/listtone/internal/logging"
	"github.com/yaklabco/listtone/pkg/fsutil"
	"github.com/yaklabco/listtone/pkg/lint"
)

// Runner lints many files concurrently with a lint.Engine.
type Runner struct {
	Engine *lint.Engine
}

// New creates a new Runner with the given engine.
func New(engine *lint.Engine) *Runner {
	return &Runner{Engine: engine}
}

// Run discovers files under opts.Paths and lints them with at most
// opts.Jobs workers. Each file is linted by one worker; a file that cannot
// be read or parsed is recorded in its FileOutcome and does not stop the run.
// Outcomes are ordered by path regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	outcomes := make([]FileOutcome, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err //nolint:wrapcheck // surfaced as run cancelled below
			}
			outcomes[i] = r.lintPath(groupCtx, path, opts)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
	)

	return result, nil
}

func (r *Runner) lintPath(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}
	ctx = logging.WithFile(ctx, path)

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	fileResult, err := r.Engine.LintFile(ctx, path, content, opts.Config)
	if err != nil {
		outcome.Error = fmt.Errorf("lint %s: %w", path, err)
		return outcome
	}

	for ruleID, ruleErr := range fileResult.RuleErrors {
		logging.FromContext(ctx).Warn("rule failed",
			logging.FieldRule, ruleID, logging.FieldError, ruleErr)
	}

	logging.FromContext(ctx).Debug("linted",
		logging.FieldDiagnosticsTotal, len(fileResult.Diagnostics))

	outcome.Result = fileResult
	return outcome
}
