// Package cli provides the Cobra command structure for listtone.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/listtone/internal/logging"
	"github.com/yaklabco/listtone/internal/ui/pretty"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root listtone command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var (
		debug      bool
		configPath string
		color      string
		logFile    string
		logCloser  io.Closer
	)

	rootCmd := &cobra.Command{
		Use:   "listtone",
		Short: "Flag machine-sounding list items in Markdown",
		Long: `listtone lints Markdown list items for two patterns common in generated prose:
a bold lead-in label followed by a colon ("- **Label**: text") and decorative
emoji such as ✅, 🚀 or 💡.

Items can be exempted with literal or /regex/ allow entries, and either check
can be switched off per rule. Output is available as styled text, JSON, SARIF
or a Markdown report.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if !pretty.IsValidColorMode(color) {
				return withExitCode(ExitInvalidUsage,
					fmt.Errorf("invalid --color %q: must be auto, always, or never", color))
			}

			level := "info"
			if debug {
				level = "debug"
				logging.SetLevel(level)
			}

			if logFile != "" {
				logger, closer := logging.NewFileLogger(level, logging.FileOptions{Path: logFile})
				logging.SetDefault(logger)
				logCloser = closer
			}
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if logCloser == nil {
				return nil
			}
			if err := logCloser.Close(); err != nil {
				return withExitCode(ExitIOError, fmt.Errorf("close log file: %w", err))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", pretty.ColorAuto,
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also write logs to this file (rotated by size)")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withExitCode(ExitInvalidUsage, err)
	})

	rootCmd.AddCommand(newLintCommand(info))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
