package configloader

import (
	"strings"
	"testing"

	"github.com/yaklabco/listtone/pkg/config"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	sev := func(s string) *string { return &s }

	tests := []struct {
		name         string
		cfg          *config.Config
		wantErrors   int
		wantWarnings int
		wantText     string
	}{
		{
			name: "defaults are valid",
			cfg:  config.NewConfig(),
		},
		{
			name:       "bad format",
			cfg:        &config.Config{Format: "table"},
			wantErrors: 1,
			wantText:   "invalid format",
		},
		{
			name:       "bad rule format",
			cfg:        &config.Config{RuleFormat: "short"},
			wantErrors: 1,
			wantText:   "invalid rule format",
		},
		{
			name:       "negative jobs",
			cfg:        &config.Config{Jobs: -1},
			wantErrors: 1,
			wantText:   "jobs must be",
		},
		{
			name:       "bad severity_default",
			cfg:        &config.Config{SeverityDefault: "fatal"},
			wantErrors: 1,
			wantText:   "invalid severity",
		},
		{
			name: "bad rule severity",
			cfg: &config.Config{Rules: map[string]config.RuleConfig{
				"AIL001": {Severity: sev("loud")},
			}},
			wantErrors: 1,
			wantText:   "rules.AIL001.severity",
		},
		{
			name: "unknown option",
			cfg: &config.Config{Rules: map[string]config.RuleConfig{
				"AIL001": {Options: map[string]any{"allow": []any{"x"}}},
			}},
			wantWarnings: 1,
			wantText:     `unknown option "allow"`,
		},
		{
			name: "allows must be a list",
			cfg: &config.Config{Rules: map[string]config.RuleConfig{
				"AIL001": {Options: map[string]any{"allows": "Note"}},
			}},
			wantErrors: 1,
			wantText:   "expected a list of strings",
		},
		{
			name: "non-string allow entry",
			cfg: &config.Config{Rules: map[string]config.RuleConfig{
				"AIL002": {Options: map[string]any{"allows": []any{"ok", 3}}},
			}},
			wantErrors: 1,
			wantText:   "allows[1]",
		},
		{
			name: "empty allow entry",
			cfg: &config.Config{Rules: map[string]config.RuleConfig{
				"AIL001": {Options: map[string]any{"allows": []any{""}}},
			}},
			wantWarnings: 1,
			wantText:     "exempts every list item",
		},
		{
			name: "invalid pattern on pattern-aware rule",
			cfg: &config.Config{Rules: map[string]config.RuleConfig{
				"AIL001": {Options: map[string]any{"allows": []any{"/(/", "/(?<=x)y/", "/x/q"}}},
			}},
			wantWarnings: 2,
			wantText:     "will never match",
		},
		{
			name: "slash entries are literals on the strict rule",
			cfg: &config.Config{Rules: map[string]config.RuleConfig{
				"AIL002": {Options: map[string]any{"allows": []any{"/(/"}}},
			}},
		},
		{
			name: "disable flag must be boolean",
			cfg: &config.Config{Rules: map[string]config.RuleConfig{
				"AIL001": {Options: map[string]any{"disableEmojiListItems": "yes"}},
			}},
			wantErrors: 1,
			wantText:   "expected a boolean",
		},
		{
			name:       "bad ignore glob",
			cfg:        &config.Config{Ignore: []string{"docs/[a-"}},
			wantErrors: 1,
			wantText:   "invalid glob pattern",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := Validate(tc.cfg, nil)
			if len(result.Errors) != tc.wantErrors {
				t.Errorf("errors = %v, want %d", result.Errors, tc.wantErrors)
			}
			if len(result.Warnings) != tc.wantWarnings {
				t.Errorf("warnings = %v, want %d", result.Warnings, tc.wantWarnings)
			}
			if tc.wantText != "" {
				joined := strings.Join(result.AllMessages(), "\n")
				if !strings.Contains(joined, tc.wantText) {
					t.Errorf("messages %q do not contain %q", joined, tc.wantText)
				}
			}
		})
	}
}

func TestValidateWithFile(t *testing.T) {
	t.Parallel()

	result := ValidateWithFile(&config.Config{Flavor: "rst"}, nil, ".listtone.yml")
	if result.Valid() {
		t.Fatal("expected invalid result")
	}
	if got := result.Errors[0].Error(); !strings.HasPrefix(got, ".listtone.yml: flavor: ") {
		t.Errorf("unexpected error text %q", got)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	on, off := true, false
	base := &config.Config{
		Flavor: config.FlavorGFM,
		Ignore: []string{"vendor/**"},
		Rules: map[string]config.RuleConfig{
			"AIL001": {Enabled: &on, Options: map[string]any{"allows": []any{"Note"}}},
		},
	}
	override := &config.Config{
		Rules: map[string]config.RuleConfig{
			"AIL001": {Enabled: &off, Options: map[string]any{"disableBoldListItems": true}},
		},
	}

	merged := MergeAll(base, override)

	if merged.Flavor != config.FlavorGFM {
		t.Errorf("expected base flavor to survive, got %q", merged.Flavor)
	}
	if len(merged.Ignore) != 1 {
		t.Errorf("expected base ignore to survive, got %v", merged.Ignore)
	}
	rc := merged.Rules["AIL001"]
	if rc.Enabled == nil || *rc.Enabled {
		t.Error("expected override to disable AIL001")
	}
	if _, ok := rc.Options["allows"]; !ok {
		t.Error("expected base options to be kept")
	}
	if rc.Options["disableBoldListItems"] != true {
		t.Error("expected override option to be merged")
	}
	if _, leaked := base.Rules["AIL001"].Options["disableBoldListItems"]; leaked {
		t.Error("merge modified its base input")
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	for _, name := range []string{"LISTTONE_FLAVOR", "LISTTONE_JOBS", "LISTTONE_ALLOW"} {
		if vars[name] == "" {
			t.Errorf("missing description for %s", name)
		}
	}
}
