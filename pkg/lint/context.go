package lint

import (
	"context"

	"github.com/yaklabco/listtone/pkg/config"
	"github.com/yaklabco/listtone/pkg/mdast"
)

// RuleContext is the per-file, per-rule parameter object handed to
// Rule.Apply. It carries the cancellation context as a field because it
// lives only for one Apply call.
type RuleContext struct {
	Ctx  context.Context
	File *mdast.FileSnapshot
	Root *mdast.Node // File.Root, nil for an empty snapshot

	Config *config.Config
	// RuleConfig holds this rule's entry from Config.Rules; it may be nil.
	RuleConfig *config.RuleConfig
}

// NewRuleContext creates a RuleContext for the given file and configuration.
func NewRuleContext(
	ctx context.Context,
	file *mdast.FileSnapshot,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	var root *mdast.Node
	if file != nil {
		root = file.Root
	}

	return &RuleContext{
		Ctx:        ctx,
		File:       file,
		Root:       root,
		Config:     cfg,
		RuleConfig: ruleCfg,
	}
}

// Cancelled reports whether the run has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Option returns the raw value of a rule option, or defaultValue when the
// option is absent.
func (rc *RuleContext) Option(key string, defaultValue any) any {
	if rc.RuleConfig == nil || rc.RuleConfig.Options == nil {
		return defaultValue
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionBool returns a boolean option. Values of any other type yield
// defaultValue.
func (rc *RuleContext) OptionBool(key string, defaultValue bool) bool {
	v := rc.Option(key, defaultValue)
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultValue
}

// OptionStringSlice returns a list option such as allows. Decoded YAML
// lists arrive as []any; non-string entries are dropped, and an explicit
// empty list is returned as empty rather than replaced by defaultValue.
func (rc *RuleContext) OptionStringSlice(key string, defaultValue []string) []string {
	v := rc.Option(key, defaultValue)
	if slice, ok := v.([]string); ok {
		return slice
	}
	if iface, ok := v.([]any); ok {
		result := make([]string, 0, len(iface))
		for _, item := range iface {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	}
	return defaultValue
}
