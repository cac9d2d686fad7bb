package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/listtone/internal/configloader"
	"github.com/yaklabco/listtone/internal/logging"
	"github.com/yaklabco/listtone/pkg/config"
	"github.com/yaklabco/listtone/pkg/lint"
	"github.com/yaklabco/listtone/pkg/lint/rules"
)

type rulesFlags struct {
	ruleFormat string
	format     string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Tags        []string `json:"tags,omitempty"`
	Options     []string `json:"options"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List the built-in rules with their IDs, default severity, whether they
run by default, and the options they accept. Also lists the rule packs
accepted by 'listtone init --pack' and the LISTTONE_* environment variables.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := rules.RuleInfos(lint.DefaultRegistry)

			if flags.format == formatJSON {
				return outputRulesJSON(cmd.OutOrStdout(), infos)
			}

			logger := logging.NewInteractive()
			logger.SetOutput(cmd.OutOrStdout())

			ruleFormat := config.RuleFormat(flags.ruleFormat)
			options := strings.Join(rules.KnownOptions(), ", ")

			logger.Info("available rules")
			for _, info := range infos {
				logger.Info(config.FormatRuleID(ruleFormat, info.ID, info.Name),
					logging.FieldSeverity, info.Severity,
					logging.FieldEnabled, info.Enabled,
					logging.FieldDescription, info.Description,
				)
			}
			logger.Info("rule options", "options", options)

			logger.Info("rule packs")
			for _, pack := range rules.Packs() {
				logger.Info(pack.Name, logging.FieldDescription, pack.Description)
			}

			logger.Info("environment variables")
			env := configloader.ListEnvVars()
			for _, name := range slices.Sorted(maps.Keys(env)) {
				logger.Info(name, logging.FieldDescription, env[name])
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

// outputRulesJSON writes rules as a JSON array.
func outputRulesJSON(w io.Writer, infos []config.RuleInfo) error {
	out := make([]ruleInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, ruleInfo{
			ID:          info.ID,
			Name:        info.Name,
			Description: info.Description,
			Severity:    string(info.Severity),
			Enabled:     info.Enabled,
			Tags:        info.Tags,
			Options:     rules.KnownOptions(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
