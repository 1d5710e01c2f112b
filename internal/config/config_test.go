package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.General.Demo != "password" {
		t.Errorf("Expected default demo 'password', got %q", cfg.General.Demo)
	}

	if cfg.List.ItemCount != 100 {
		t.Errorf("Expected 100 list items, got %d", cfg.List.ItemCount)
	}

	if cfg.UI.ShowHints != true {
		t.Error("Expected ShowHints to be true")
	}

	if cfg.ImageTimeout() != 15*time.Second {
		t.Errorf("Expected 15s image timeout, got %v", cfg.ImageTimeout())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantWarning string
	}{
		{
			name:   "default config is valid",
			mutate: func(*Config) {},
		},
		{
			name:        "invalid theme",
			mutate:      func(c *Config) { c.UI.Theme = "invalid" },
			wantWarning: "ui.theme",
		},
		{
			name:        "invalid demo id",
			mutate:      func(c *Config) { c.General.Demo = "Not A Demo" },
			wantWarning: "general.demo",
		},
		{
			name:        "invalid image url",
			mutate:      func(c *Config) { c.Image.URL = "not a url" },
			wantWarning: "image.url",
		},
		{
			name:        "invalid timeout",
			mutate:      func(c *Config) { c.Image.Timeout = "soon" },
			wantWarning: "image.timeout",
		},
		{
			name:        "zero items",
			mutate:      func(c *Config) { c.List.ItemCount = 0 },
			wantWarning: "list.item_count",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.Debug.Level = "loud" },
			wantWarning: "debug.level",
		},
		{
			name:        "key bound twice",
			mutate:      func(c *Config) { c.Keys.Picker = "q" },
			wantWarning: `"q"`,
		},
		{
			name:   "empty optional values",
			mutate: func(c *Config) { c.UI.Theme = ""; c.General.Demo = ""; c.Image.Timeout = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			warnings := cfg.Validate()
			if tt.wantWarning == "" {
				assert.Empty(t, warnings)
				return
			}
			require.Len(t, warnings, 1, "warnings: %v", warnings)
			assert.Contains(t, warnings[0], tt.wantWarning)
		})
	}
}

func TestValidateMessageListsChoices(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.Theme = "neon"
	assert.Equal(t, []string{"Invalid value for ui.theme: neon (expected auto, dark, light)"}, cfg.Validate())
}

func TestLoadPreservesDefaults(t *testing.T) {
	// Create a temp config file with partial config
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	// Only specify some values - others should keep defaults
	tomlContent := `[general]
demo = "hoisting"

[state]
persist = true
`
	require.NoError(t, os.WriteFile(configPath, []byte(tomlContent), 0644))

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	// Check specified values were loaded
	assert.Equal(t, "hoisting", cfg.General.Demo)
	assert.True(t, cfg.State.Persist)

	// IMPORTANT: boolean defaults survive when not specified
	assert.True(t, cfg.UI.ShowHints)
	assert.Equal(t, 100, cfg.List.ItemCount)
	assert.Equal(t, "tab", cfg.Keys.NextFocus)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "ui:\n  theme: light\nlist:\n  item_count: 20\nbehavior:\n  legacy_loading_callback: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, 20, cfg.List.ItemCount)
	assert.True(t, cfg.Behavior.LegacyLoadingCallback)
	assert.True(t, cfg.UI.ShowHints)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui\ntheme ="), 0644))

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "gallery", "config.toml"), ConfigPath())

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/someone")
	assert.Equal(t, filepath.Join("/home/someone", ".config", "gallery", "config.toml"), ConfigPath())
}

func TestCreateDefaultConfigFileRoundTrips(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	require.NoError(t, CreateDefaultConfigFile())

	data, err := os.ReadFile(ConfigPath())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Gallery Configuration"))

	var parsed map[string]any
	require.NoError(t, toml.Unmarshal(data, &parsed), "generated file must be valid TOML")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestStatePath(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "state.json", filepath.Base(cfg.StatePath()))

	cfg.State.Path = "/tmp/x.json"
	assert.Equal(t, "/tmp/x.json", cfg.StatePath())
}

func TestSplitKeys(t *testing.T) {
	assert.Equal(t, []string{"enter", " "}, SplitKeys("enter, "))
	assert.Equal(t, []string{"q", "ctrl+c"}, SplitKeys("q, ctrl+c"))
	assert.Nil(t, SplitKeys(""))
}
