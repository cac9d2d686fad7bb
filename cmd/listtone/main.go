// Package main is the entry point for the listtone CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/listtone/internal/cli"
	"github.com/yaklabco/listtone/internal/logging"

	// Import rules package to register built-in rules via init().
	_ "github.com/yaklabco/listtone/pkg/lint/rules"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, cli.ErrLintIssuesFound) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}

	return cli.ExitCode(err)
}
