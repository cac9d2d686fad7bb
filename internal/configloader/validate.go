package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/listtone/pkg/config"
	"github.com/yaklabco/listtone/pkg/lint"
	"github.com/yaklabco/listtone/pkg/lint/rules"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.AIL001.severity").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown rules).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) errorf(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings. Rule keys are
// looked up in registry, or lint.DefaultRegistry when nil.
func Validate(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	if cfg.Flavor != "" && !cfg.Flavor.IsValid() {
		result.errorf("flavor", cfg.Flavor, "invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor)
	}

	if cfg.SeverityDefault != "" && !config.Severity(cfg.SeverityDefault).IsValid() {
		result.errorf("severity_default", cfg.SeverityDefault,
			"invalid severity %q; must be one of: error, warning, info", cfg.SeverityDefault)
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.errorf("format", cfg.Format, "invalid format %q; must be one of: text, json, sarif, markdown", cfg.Format)
	}

	if cfg.RuleFormat != "" && !cfg.RuleFormat.IsValid() {
		result.errorf("rule_format", cfg.RuleFormat,
			"invalid rule format %q; must be one of: name, id, combined", cfg.RuleFormat)
	}

	if cfg.Jobs < 0 {
		result.errorf("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	validateRules(cfg, registry, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func validateRules(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	for _, ruleID := range sortedRuleKeys(cfg) {
		ruleCfg := cfg.Rules[ruleID]
		field := "rules." + ruleID

		if _, ok := registry.Get(ruleID); !ok {
			result.warnf(field, ruleID, "unknown rule %q; it will be ignored", ruleID)
			continue
		}

		if ruleCfg.Severity != nil && !config.Severity(*ruleCfg.Severity).IsValid() {
			result.errorf(field+".severity", *ruleCfg.Severity,
				"invalid severity %q; must be one of: error, warning, info", *ruleCfg.Severity)
		}

		validateRuleOptions(ruleID, field+".options", ruleCfg.Options, result)
	}
}

func validateRuleOptions(ruleID, field string, options map[string]any, result *ValidationResult) {
	known := rules.KnownOptions()
	for _, key := range sortedOptionKeys(options) {
		value := options[key]
		switch key {
		case rules.OptionAllows:
			validateAllows(field+"."+key, value, ruleID == rules.IDListFormatting, result)
		case rules.OptionDisableBold, rules.OptionDisableEmoji:
			if _, ok := value.(bool); !ok {
				result.errorf(field+"."+key, value, "expected a boolean, got %T", value)
			}
		default:
			if !slices.Contains(known, key) {
				result.warnf(field+"."+key, value, "unknown option %q; it will be ignored", key)
			}
		}
	}
}

func validateAllows(field string, value any, patterns bool, result *ValidationResult) {
	var entries []any
	switch v := value.(type) {
	case nil:
		return
	case []any:
		entries = v
	case []string:
		for _, s := range v {
			entries = append(entries, s)
		}
	default:
		result.errorf(field, value, "expected a list of strings, got %T", value)
		return
	}

	for i, raw := range entries {
		entryField := fmt.Sprintf("%s[%d]", field, i)
		s, ok := raw.(string)
		if !ok {
			result.errorf(entryField, raw, "allow entries must be strings, got %T", raw)
			continue
		}
		if s == "" {
			result.warnf(entryField, s, "empty allow entry exempts every list item")
			continue
		}
		if !patterns {
			continue
		}
		entry := rules.ParseAllowEntry(s)
		if entry.IsPattern() && !entry.Valid() {
			result.warnf(entryField, s, "allow pattern %q is invalid and will never match", s)
		}
	}
}

// validateIgnorePatterns checks that ignore patterns compile as globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.errorf(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, registry *lint.Registry, filePath string) *ValidationResult {
	result := Validate(cfg, registry)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

func sortedRuleKeys(cfg *config.Config) []string {
	keys := make([]string, 0, len(cfg.Rules))
	for k := range cfg.Rules {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func sortedOptionKeys(options map[string]any) []string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
