package lint_test

import (
	"context"
	"testing"

	"github.com/yaklabco/listtone/pkg/config"
	"github.com/yaklabco/listtone/pkg/lint"
	"github.com/yaklabco/listtone/pkg/mdast"
)

const defaultTestValue = "default"

func TestNewRuleContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	file := mdast.NewFileSnapshot("test.md", []byte("- item"))
	file.Root = mdast.NewDocument()
	cfg := config.NewConfig()
	ruleCfg := &config.RuleConfig{Options: map[string]any{"key": "value"}}

	rc := lint.NewRuleContext(ctx, file, cfg, ruleCfg)

	if rc.Ctx != ctx {
		t.Error("Ctx mismatch")
	}
	if rc.File != file {
		t.Error("File mismatch")
	}
	if rc.Root != file.Root {
		t.Error("Root should equal File.Root")
	}
	if rc.Config != cfg {
		t.Error("Config mismatch")
	}
	if rc.RuleConfig != ruleCfg {
		t.Error("RuleConfig mismatch")
	}
}

func TestNewRuleContext_NilFile(t *testing.T) {
	t.Parallel()

	rc := lint.NewRuleContext(context.Background(), nil, nil, nil)

	if rc.File != nil {
		t.Error("File should be nil")
	}
	if rc.Root != nil {
		t.Error("Root should be nil when File is nil")
	}
	if err := rc.Dispatch(lint.NodeHandlers{mdast.NodeListItem: func(*mdast.Node) error { return nil }}); err != nil {
		t.Errorf("Dispatch on nil root returned %v", err)
	}
}

func TestRuleContext_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	rc := lint.NewRuleContext(ctx, nil, nil, nil)

	if rc.Cancelled() {
		t.Error("should not be cancelled yet")
	}
	cancel()
	if !rc.Cancelled() {
		t.Error("should be cancelled")
	}
}

func TestRuleContext_Options(t *testing.T) {
	t.Parallel()

	rc := lint.NewRuleContext(context.Background(), nil, nil, &config.RuleConfig{
		Options: map[string]any{
			"str":       "value",
			"bool":      true,
			"strings":   []string{"a", "b"},
			"mixed":     []any{"a", 1, "b"},
			"empty":     []any{},
			"wrongBool": "yes",
		},
	})

	if got := rc.Option("str", defaultTestValue); got != "value" {
		t.Errorf("Option = %v", got)
	}
	if got := rc.Option("missing", defaultTestValue); got != defaultTestValue {
		t.Errorf("Option missing = %v", got)
	}
	if got := rc.OptionBool("bool", false); !got {
		t.Error("OptionBool = false")
	}
	if got := rc.OptionBool("wrongBool", false); got {
		t.Error("non-bool value should fall back to default")
	}

	if got := rc.OptionStringSlice("strings", nil); len(got) != 2 {
		t.Errorf("OptionStringSlice = %v", got)
	}
	if got := rc.OptionStringSlice("mixed", nil); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("OptionStringSlice mixed = %v", got)
	}
	if got := rc.OptionStringSlice("empty", []string{"x"}); len(got) != 0 {
		t.Errorf("explicit empty list should be kept, got %v", got)
	}
	if got := rc.OptionStringSlice("missing", []string{"x"}); len(got) != 1 {
		t.Errorf("OptionStringSlice missing = %v", got)
	}
}

func TestRuleContext_Options_NilRuleConfig(t *testing.T) {
	t.Parallel()

	rc := lint.NewRuleContext(context.Background(), nil, nil, nil)

	if got := rc.Option("anything", defaultTestValue); got != defaultTestValue {
		t.Errorf("Option = %v", got)
	}
}
