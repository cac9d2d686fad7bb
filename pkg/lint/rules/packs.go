package rules

import "github.com/yaklabco/listtone/pkg/config"

// Pack describes a named group of rule defaults for a particular use case.
// Packs are configuration fragments used as starting points for
// .listtone.yml files.
type Pack struct {
	// Name is the short identifier for the pack (e.g., "default", "strict").
	Name string

	// Description explains the purpose and characteristics of the pack.
	Description string

	// Rules contains rule configurations keyed by rule ID.
	Rules map[string]config.RuleConfig
}

// DefaultPack returns the pack matching the built-in defaults.
func DefaultPack() Pack {
	return Pack{
		Name:        "default",
		Description: "Softened wording as warnings; the strict rule stays off",
		Rules: map[string]config.RuleConfig{
			"AIL001": enabled("warning"), // no-ai-list-formatting
			"AIL002": disabled(),         // no-ai-list-formatting-strict
		},
	}
}

// StrictPack returns a pack that swaps to the strong wording and fails the run.
func StrictPack() Pack {
	return Pack{
		Name:        "strict",
		Description: "Strong wording reported as errors",
		Rules: map[string]config.RuleConfig{
			"AIL001": disabled(),       // no-ai-list-formatting
			"AIL002": enabled("error"), // no-ai-list-formatting-strict
		},
	}
}

// GentlePack returns a pack that only informs and ignores emoji.
func GentlePack() Pack {
	gentle := enabled("info")
	gentle.Options = map[string]any{OptionDisableEmoji: true}

	return Pack{
		Name:        "gentle",
		Description: "Bold labels reported as info; emoji allowed",
		Rules: map[string]config.RuleConfig{
			"AIL001": gentle,     // no-ai-list-formatting
			"AIL002": disabled(), // no-ai-list-formatting-strict
		},
	}
}

// Packs returns all built-in rule packs.
func Packs() []Pack {
	return []Pack{
		DefaultPack(),
		StrictPack(),
		GentlePack(),
	}
}

// PackByName returns a pack by name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the names of all available packs.
func PackNames() []string {
	packs := Packs()
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}
	return names
}

// enabled creates a RuleConfig with the rule enabled and the given severity.
func enabled(sev string) config.RuleConfig {
	on := true
	return config.RuleConfig{
		Enabled:  &on,
		Severity: &sev,
	}
}

// disabled creates a RuleConfig with the rule turned off.
func disabled() config.RuleConfig {
	off := false
	return config.RuleConfig{Enabled: &off}
}
