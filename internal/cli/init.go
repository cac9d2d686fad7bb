package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/listtone/internal/configloader"
	"github.com/yaklabco/listtone/internal/logging"
	"github.com/yaklabco/listtone/pkg/config"
	"github.com/yaklabco/listtone/pkg/fsutil"
	"github.com/yaklabco/listtone/pkg/lint/rules"
)

type initFlags struct {
	force  bool
	full   bool
	yes    bool
	pack   string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a listtone configuration file",
		Long: `Create a .listtone.yml configuration file in the current directory.

Examples:
  listtone init                      Create a minimal .listtone.yml
  listtone init --full               List every rule with its options
  listtone init --pack strict        Start from the strict rule pack
  listtone init --force              Overwrite, keeping a .bak copy
  listtone init -o docs/.listtone.yml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every rule and option")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "do not ask before overwriting")
	cmd.Flags().StringVar(&flags.pack, "pack", "",
		"start from a rule pack: "+strings.Join(rules.PackNames(), ", "))
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .listtone.yml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()
	logger.SetOutput(cmd.ErrOrStderr())

	if flags.full && flags.pack != "" {
		return withExitCode(ExitInvalidUsage, errors.New("--full and --pack cannot be combined"))
	}

	content, err := initContent(flags)
	if err != nil {
		return withExitCode(ExitInvalidUsage, err)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.ProjectConfigFiles[0]
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if fsutil.Exists(absPath) {
		if !flags.force {
			return withExitCode(ExitInvalidUsage,
				fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}

		if !flags.yes && isTerminal(cmd.InOrStdin()) {
			ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("Overwrite %s?", outputPath))
			if err != nil {
				return withExitCode(ExitIOError, fmt.Errorf("read confirmation: %w", err))
			}
			if !ok {
				logger.Info("left existing file untouched", logging.FieldPath, outputPath)
				return nil
			}
		}

		backedUp, err := fsutil.CreateBackup(cmd.Context(), absPath)
		if err != nil {
			return withExitCode(ExitIOError, fmt.Errorf("back up existing file: %w", err))
		}
		if backedUp {
			logger.Warn("overwriting existing file", logging.FieldPath, outputPath,
				"backup", fsutil.BackupPath(outputPath))
		}
	}

	if err := fsutil.WriteAtomic(cmd.Context(), absPath, content, fsutil.DefaultFileMode); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("write file: %w", err))
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'listtone rules' to see all available rules")

	return nil
}

// initContent renders the file body for the requested template or pack.
func initContent(flags *initFlags) ([]byte, error) {
	if flags.pack == "" {
		return config.GenerateTemplate(config.TemplateOptions{Full: flags.full}), nil
	}

	pack := rules.PackByName(flags.pack)
	if pack == nil {
		return nil, fmt.Errorf("unknown pack %q; available: %s", flags.pack, strings.Join(rules.PackNames(), ", "))
	}

	cfg := config.NewConfig()
	cfg.Rules = pack.Rules

	header := config.DefaultTemplateHeader() + "\n# Pack: " + pack.Name + " - " + pack.Description
	content, err := cfg.ToYAMLWithHeader(header)
	if err != nil {
		return nil, fmt.Errorf("render pack %q: %w", pack.Name, err)
	}
	return content, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
