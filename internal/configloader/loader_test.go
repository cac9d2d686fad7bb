package configloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/listtone/pkg/config"
	"github.com/yaklabco/listtone/pkg/lint/rules"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Flavor != config.FlavorGFM {
		t.Errorf("expected flavor %q, got %q", config.FlavorGFM, result.Config.Flavor)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".listtone.yml"), `
flavor: commonmark
rules:
  AIL001:
    enabled: false
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Flavor != config.FlavorCommonMark {
		t.Errorf("expected flavor %q, got %q", config.FlavorCommonMark, result.Config.Flavor)
	}

	ail001, ok := result.Config.Rules["AIL001"]
	if !ok {
		t.Fatal("AIL001 rule not found in config")
	}
	if ail001.Enabled == nil || *ail001.Enabled {
		t.Error("expected AIL001 to be disabled")
	}

	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_ProjectConfigInParent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	child := filepath.Join(root, "docs", "guides")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, ".listtone.yml"), "severity_default: error\n")

	result, err := Load(context.Background(), isolated(child))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.SeverityDefault != "error" {
		t.Errorf("expected severity_default from parent config, got %q", result.Config.SeverityDefault)
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	repo := filepath.Join(root, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, ".listtone.yml"), "flavor: gfm\n")

	path, err := FindProjectConfig(context.Background(), repo)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if path != "" {
		t.Errorf("expected search to stop at VCS root, found %q", path)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".listtone.yml"), "severity_default: info\n")
	customPath := filepath.Join(tmpDir, "custom-config.yml")
	writeFile(t, customPath, "severity_default: warning\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.SeverityDefault != "warning" {
		t.Errorf("expected severity_default %q, got %q", "warning", result.Config.SeverityDefault)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != customPath {
		t.Errorf("expected explicit config loaded last, got %v", result.LoadedFrom)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".listtone.yml"), `
flavor: commonmark
rules:
  no-ai-list-formatting:
    options:
      allows: ["Note"]
`)

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{Flavor: config.FlavorGFM, Jobs: 8}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Flavor != config.FlavorGFM {
		t.Errorf("expected flavor %q (CLI override), got %q", config.FlavorGFM, result.Config.Flavor)
	}
	if result.Config.Jobs != 8 {
		t.Errorf("expected jobs 8 (CLI override), got %d", result.Config.Jobs)
	}

	AppendAllows(result.Config, []string{"/^- \\*\\*TODO/"})

	allows, _ := result.Config.RuleOption("AIL001", rules.OptionAllows)
	if list, _ := allows.([]any); len(list) != 2 || list[0] != "Note" {
		t.Errorf("expected configured allows to be kept, got %v", allows)
	}
	strict, _ := result.Config.RuleOption("AIL002", rules.OptionAllows)
	if list, _ := strict.([]any); len(list) != 1 {
		t.Errorf("expected AIL002 allows from flag, got %v", strict)
	}
}

func TestLoad_Env(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("LISTTONE_FLAVOR", "commonmark")
	t.Setenv("LISTTONE_JOBS", "3")
	t.Setenv("LISTTONE_IGNORE", "vendor/**, node_modules/** ,")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Flavor != config.FlavorCommonMark {
		t.Errorf("expected flavor from env, got %q", result.Config.Flavor)
	}
	if result.Config.Jobs != 3 {
		t.Errorf("expected jobs 3, got %d", result.Config.Jobs)
	}
	if got := strings.Join(result.Config.Ignore, "|"); got != "vendor/**|node_modules/**" {
		t.Errorf("unexpected ignore %q", got)
	}
}

func TestLoad_EnvInvalidInteger(t *testing.T) {
	t.Setenv("LISTTONE_JOBS", "many")

	opts := isolated(t.TempDir())
	opts.IgnoreEnv = false

	if _, err := Load(context.Background(), opts); err == nil {
		t.Fatal("expected error for invalid LISTTONE_JOBS")
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"invalid flavor", "flavor: invalid-flavor\n"},
		{"invalid severity", "rules:\n  AIL001:\n    severity: fatal\n"},
		{"non-string allows", "rules:\n  AIL001:\n    options:\n      allows: [1]\n"},
		{"malformed yaml", "rules: [\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeFile(t, filepath.Join(tmpDir, ".listtone.yml"), tc.content)

			if _, err := Load(context.Background(), isolated(tmpDir)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, isolated(t.TempDir())); err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestLoader_NormalizesRuleKeys(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".listtone.yml"), `
rules:
  no-ai-list-formatting-strict:
    enabled: true
    severity: error
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if _, hasName := result.Config.Rules["no-ai-list-formatting-strict"]; hasName {
		t.Error("expected rule name to be replaced by its ID")
	}

	ail002, ok := result.Config.Rules["AIL002"]
	if !ok {
		t.Fatal("expected AIL002 to be present after normalization")
	}
	if ail002.Enabled == nil || !*ail002.Enabled {
		t.Error("expected AIL002 to be enabled")
	}
	if ail002.Severity == nil || *ail002.Severity != "error" {
		t.Error("expected AIL002 severity to be error")
	}
}

func TestLoader_WarnsDuplicateRules(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".listtone.yml"), `
rules:
  AIL001:
    enabled: false
  no-ai-list-formatting:
    enabled: true
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	foundWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "duplicate") && strings.Contains(w, "AIL001") {
			foundWarning = true
			break
		}
	}
	if !foundWarning {
		t.Errorf("expected warning about duplicate rule, got warnings: %v", result.Warnings)
	}

	// Keys are visited in sorted order, so the rule name is applied last.
	ail001 := result.Config.Rules["AIL001"]
	if ail001.Enabled == nil || !*ail001.Enabled {
		t.Error("expected the later key to win")
	}
}

func TestLoad_UnknownRuleWarns(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".listtone.yml"), "rules:\n  MD013:\n    enabled: false\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], `unknown rule "MD013"`) {
		t.Errorf("expected unknown rule warning, got %v", result.Warnings)
	}
}
