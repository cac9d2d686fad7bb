package rules

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/listtone/pkg/config"
	"github.com/yaklabco/listtone/pkg/lint"
	"github.com/yaklabco/listtone/pkg/parser/goldmark"
)

// TestGolden runs each testdata/<RULE>/<case>.md with only that rule enabled
// and compares the diagnostics with <case>.diags.txt. An optional <case>.yml
// supplies extra configuration.
func TestGolden(t *testing.T) {
	inputs, err := filepath.Glob(filepath.Join("testdata", "*", "*.md"))
	require.NoError(t, err)
	require.NotEmpty(t, inputs)

	registry := lint.NewRegistry()
	RegisterAll(registry)
	engine := lint.NewEngine(goldmark.New(goldmark.FlavorGFM), registry)

	for _, input := range inputs {
		ruleID := filepath.Base(filepath.Dir(input))
		base := strings.TrimSuffix(input, ".md")

		t.Run(ruleID+"/"+filepath.Base(base), func(t *testing.T) {
			content, err := os.ReadFile(input)
			require.NoError(t, err)

			cfg := goldenConfig(t, base+".yml")
			for _, id := range registry.IDs() {
				rc := cfg.Rules[id]
				on := id == ruleID
				rc.Enabled = &on
				cfg.Rules[id] = rc
			}

			result, err := engine.LintFile(context.Background(), input, content, cfg)
			require.NoError(t, err)
			assert.Empty(t, result.RuleErrors)

			want, err := os.ReadFile(base + ".diags.txt")
			require.NoError(t, err)

			assert.Equal(t, string(want), formatGoldenDiags(result.Diagnostics))
		})
	}
}

func goldenConfig(t *testing.T, path string) *config.Config {
	t.Helper()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config.NewConfig()
	}
	require.NoError(t, err)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	return cfg
}

func formatGoldenDiags(diags []lint.Diagnostic) string {
	var sb strings.Builder
	for _, d := range diags {
		fmt.Fprintf(&sb, "%d:%d-%d:%d %s %s\n",
			d.StartLine, d.StartColumn, d.EndLine, d.EndColumn, d.RuleID, d.Message)
	}
	return sb.String()
}
