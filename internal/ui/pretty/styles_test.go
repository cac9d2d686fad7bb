package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/listtone/internal/ui/pretty"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	assert.Equal(t, "test", styles.Bold.Render("test"), "No-color Bold should not add formatting")
	assert.Equal(t, "test", styles.Error.Render("test"), "No-color Error should not add formatting")
}

func TestStyles_AllFieldsInitialized(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)

	for name, style := range map[string]interface{ Render(...string) string }{
		"Error":        styles.Error,
		"Warning":      styles.Warning,
		"Info":         styles.Info,
		"FilePath":     styles.FilePath,
		"RuleID":       styles.RuleID,
		"Message":      styles.Message,
		"Suggestion":   styles.Suggestion,
		"SourceLine":   styles.SourceLine,
		"Caret":        styles.Caret,
		"SummaryTitle": styles.SummaryTitle,
		"SummaryValue": styles.SummaryValue,
		"Success":      styles.Success,
		"Failure":      styles.Failure,
		"Dim":          styles.Dim,
		"Bold":         styles.Bold,
	} {
		assert.NotEmpty(t, style.Render("x"), name)
	}
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf), "always mode should return true")
	assert.False(t, pretty.IsColorEnabled("never", os.Stdout), "never mode should return false")
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "auto mode with non-TTY should return false")
	assert.False(t, pretty.IsColorEnabled("", &buf), "empty mode falls back to auto")
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout), "NO_COLOR disables auto color")
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout), "always wins over NO_COLOR")
}

func TestIsValidColorMode(t *testing.T) {
	t.Parallel()

	assert.True(t, pretty.IsValidColorMode("auto"))
	assert.True(t, pretty.IsValidColorMode("always"))
	assert.True(t, pretty.IsValidColorMode("never"))
	assert.False(t, pretty.IsValidColorMode("sometimes"))
}
