package configloader

import (
	"slices"

	"github.com/yaklabco/listtone/pkg/config"
	"github.com/yaklabco/listtone/pkg/lint/rules"
)

// merge combines two configurations, with override taking precedence over base.
//   - Scalar values: override overwrites base if override is non-zero
//   - Rules: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//
// Neither input is modified.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.SeverityDefault != "" {
		result.SeverityDefault = override.SeverityDefault
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.RuleFormat != "" {
		result.RuleFormat = override.RuleFormat
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	overrideClone := override.Clone()
	for key, val := range overrideClone.Rules {
		if existing, ok := result.Rules[key]; ok {
			result.Rules[key] = mergeRuleConfig(existing, val)
		} else {
			result.Rules[key] = val
		}
	}

	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}
	if override.EnableRules != nil {
		result.EnableRules = slices.Clone(override.EnableRules)
	}
	if override.DisableRules != nil {
		result.DisableRules = slices.Clone(override.DisableRules)
	}

	return result
}

// mergeRuleConfig merges individual rule configurations.
// override's values take precedence over base's values.
func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	result := base

	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	if override.Severity != nil {
		result.Severity = override.Severity
	}

	if override.Options != nil {
		merged := make(map[string]any, len(base.Options)+len(override.Options))
		for key, val := range base.Options {
			merged[key] = val
		}
		for key, val := range override.Options {
			merged[key] = val
		}
		result.Options = merged
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}

// AppendAllows adds entries to the allows option of every list formatting
// rule, keeping entries already configured.
func AppendAllows(cfg *config.Config, entries []string) {
	if cfg == nil || len(entries) == 0 {
		return
	}
	for _, id := range rules.ListFormattingIDs() {
		existing := allowStrings(cfg, id)
		combined := make([]any, 0, len(existing)+len(entries))
		for _, e := range existing {
			combined = append(combined, e)
		}
		for _, e := range entries {
			combined = append(combined, e)
		}
		cfg.SetRuleOption(id, rules.OptionAllows, combined)
	}
}

// SetListOption sets a boolean option on every list formatting rule.
func SetListOption(cfg *config.Config, key string, value bool) {
	if cfg == nil {
		return
	}
	for _, id := range rules.ListFormattingIDs() {
		cfg.SetRuleOption(id, key, value)
	}
}

func allowStrings(cfg *config.Config, ruleID string) []any {
	raw, ok := cfg.RuleOption(ruleID, rules.OptionAllows)
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	default:
		return nil
	}
}
