package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/listtone/pkg/config"
	"github.com/yaklabco/listtone/pkg/lint"
)

func TestRegisterAll(t *testing.T) {
	registry := lint.NewRegistry()
	RegisterAll(registry)

	assert.Equal(t, []string{"AIL001", "AIL002"}, registry.IDs())

	rule, ok := registry.GetByName("no-ai-list-formatting")
	require.True(t, ok)
	assert.Equal(t, "AIL001", rule.ID())

	id, _, ok := registry.Resolve("no-ai-list-formatting-strict")
	require.True(t, ok)
	assert.Equal(t, "AIL002", id)
}

func TestDefaultRegistryPopulated(t *testing.T) {
	_, ok := lint.DefaultRegistry.GetByID("AIL001")
	assert.True(t, ok)
}

func TestRuleInfos(t *testing.T) {
	registry := lint.NewRegistry()
	RegisterAll(registry)

	infos := RuleInfos(registry)
	require.Len(t, infos, 2)
	assert.Equal(t, "AIL001", infos[0].ID)
	assert.True(t, infos[0].Enabled)
	assert.False(t, infos[1].Enabled)
	assert.Equal(t, config.SeverityWarning, infos[1].Severity)
}

func TestFullTemplateListsRules(t *testing.T) {
	out := string(config.GenerateTemplate(config.TemplateOptions{Full: true}))

	assert.Contains(t, out, "  AIL001:\n    enabled: true")
	assert.Contains(t, out, "  AIL002:\n    enabled: false")

	cfg, err := config.FromYAML([]byte(out))
	require.NoError(t, err)
	assert.Contains(t, cfg.Rules, "AIL002")
}
