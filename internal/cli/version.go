package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/listtone/internal/logging"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of listtone.`,
		Run: func(cmd *cobra.Command, _ []string) {
			logger := logging.NewInteractive()
			logger.SetOutput(cmd.OutOrStdout())

			logger.Info("listtone",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
			)
		},
	}
}
