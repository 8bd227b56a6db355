package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.UI.LineNumbers)
	assert.Equal(t, "15", cfg.UI.Theme.ModelineFg)
	assert.Equal(t, "236", cfg.UI.Theme.ModelineBg)
	assert.Equal(t, "240", cfg.UI.Theme.GutterFg)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Log.File)
}

func TestLoadFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	content := `
ui:
  line_numbers: true
  theme:
    modeline_bg: "#1c1c1c"
log:
  level: debug
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.True(t, cfg.UI.LineNumbers)
	assert.Equal(t, "#1c1c1c", cfg.UI.Theme.ModelineBg)
	assert.Equal(t, "15", cfg.UI.Theme.ModelineFg, "unset keys keep their defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RILE_UI_LINE_NUMBERS", "true")
	t.Setenv("RILE_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.UI.LineNumbers)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("ui:\n  theme:\n    gutter_fg: sparkle\n"), 0o644))
	_, err := Load(file)
	assert.ErrorContains(t, err, "gutter_fg")

	require.NoError(t, os.WriteFile(file, []byte("log:\n  level: loud\n"), 0o644))
	_, err = Load(file)
	assert.ErrorContains(t, err, "log.level")
}
