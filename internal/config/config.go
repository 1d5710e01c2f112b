// Package config handles gallery configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/henri123lemoine/gallery/internal/cache"
)

// Config represents gallery configuration.
type Config struct {
	General  GeneralConfig  `toml:"general" yaml:"general"`
	UI       UIConfig       `toml:"ui" yaml:"ui"`
	State    StateConfig    `toml:"state" yaml:"state"`
	Image    ImageConfig    `toml:"image" yaml:"image"`
	List     ListConfig     `toml:"list" yaml:"list"`
	Behavior BehaviorConfig `toml:"behavior" yaml:"behavior"`
	Keys     KeysConfig     `toml:"keys" yaml:"keys"`
	Debug    DebugConfig    `toml:"debug" yaml:"debug"`
}

// GeneralConfig contains general settings.
type GeneralConfig struct {
	// Demo mounted at startup
	Demo string `toml:"demo" yaml:"demo" validate:"omitempty,demo_id"`
}

// UIConfig contains UI settings.
type UIConfig struct {
	// Color theme: auto, dark, light
	Theme string `toml:"theme" yaml:"theme" validate:"omitempty,oneof=auto dark light"`

	// Show the key hint footer
	ShowHints bool `toml:"show_hints" yaml:"show_hints"`
}

// StateConfig controls where saveable state goes between runs.
type StateConfig struct {
	// Write saveable state to disk on quit and restore it on start
	Persist bool `toml:"persist" yaml:"persist"`

	// Snapshot file (empty = cache dir)
	Path string `toml:"path" yaml:"path"`
}

// ImageConfig contains settings for the image demo.
type ImageConfig struct {
	URL      string `toml:"url" yaml:"url" validate:"omitempty,url"`
	Timeout  string `toml:"timeout" yaml:"timeout" validate:"omitempty,duration"`
	CacheDir string `toml:"cache_dir" yaml:"cache_dir"`
	MaxBytes int64  `toml:"max_bytes" yaml:"max_bytes" validate:"gte=0"`
	NoCache  bool   `toml:"no_cache" yaml:"no_cache"`
}

// ListConfig contains settings for the list demos.
type ListConfig struct {
	ItemCount int `toml:"item_count" yaml:"item_count" validate:"gte=1,lte=10000"`
}

// BehaviorConfig toggles compatibility behavior.
type BehaviorConfig struct {
	// Fire the loading button callback on every render while loading
	LegacyLoadingCallback bool `toml:"legacy_loading_callback" yaml:"legacy_loading_callback"`
}

// KeysConfig contains keybinding settings.
type KeysConfig struct {
	NextFocus string `toml:"next_focus" yaml:"next_focus"`
	PrevFocus string `toml:"prev_focus" yaml:"prev_focus"`
	Click     string `toml:"click" yaml:"click"`
	Remount   string `toml:"remount" yaml:"remount"`
	Redraw    string `toml:"redraw" yaml:"redraw"`
	Picker    string `toml:"picker" yaml:"picker"`
	Help      string `toml:"help" yaml:"help"`
	Quit      string `toml:"quit" yaml:"quit"`
}

// DebugConfig contains logging settings.
type DebugConfig struct {
	Level     string `toml:"level" yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	File      string `toml:"file" yaml:"file"`
	MaxSizeMB int    `toml:"max_size_mb" yaml:"max_size_mb" validate:"gte=0"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			Demo: "password",
		},
		UI: UIConfig{
			Theme:     "auto",
			ShowHints: true,
		},
		State: StateConfig{
			Persist: false,
		},
		Image: ImageConfig{
			URL:      "https://avatars.githubusercontent.com/u/14994036?v=4",
			Timeout:  "15s",
			MaxBytes: 8 << 20,
		},
		List: ListConfig{
			ItemCount: 100,
		},
		Keys: KeysConfig{
			NextFocus: "tab",
			PrevFocus: "shift+tab",
			Click:     "enter, ",
			Remount:   "ctrl+r",
			Redraw:    "ctrl+l",
			Picker:    "m",
			Help:      "?",
			Quit:      "q,ctrl+c",
		},
		Debug: DebugConfig{
			Level:     "debug",
			MaxSizeMB: 5,
		},
	}
}

// ImageTimeout returns the parsed image timeout, or 0 when unset or invalid.
func (c *Config) ImageTimeout() time.Duration {
	d, err := time.ParseDuration(c.Image.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// StatePath returns the snapshot file, defaulting into the cache dir.
func (c *Config) StatePath() string {
	if c.State.Path != "" {
		return c.State.Path
	}
	return filepath.Join(cache.DefaultDir(), "state.json")
}

// ConfigPath returns the path to the config file.
// Uses ~/.config/gallery/config.toml (XDG style) on all Unix systems.
func ConfigPath() string {
	// Respect XDG_CONFIG_HOME if set
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "gallery", "config.toml")
	}
	// Default to ~/.config on Unix (including macOS)
	home := os.Getenv("HOME")
	if home != "" {
		return filepath.Join(home, ".config", "gallery", "config.toml")
	}
	// Fallback to os.UserConfigDir() for Windows
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "gallery", "config.toml")
	}
	return filepath.Join(configDir, "gallery", "config.toml")
}

// Load loads configuration from the config file.
func Load() (*Config, error) {
	return LoadFromPath(ConfigPath())
}

// LoadFromPath loads configuration from a specific path. Files ending in
// .yaml or .yml are read as YAML, everything else as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// No config file, use defaults
			return cfg, nil
		}
		return nil, err
	}

	// Both decoders only overwrite fields present in the file,
	// preserving defaults for unspecified fields (including booleans).
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// CreateDefaultConfigFile creates a default config file with comments.
func CreateDefaultConfigFile() error {
	path := ConfigPath()

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	content := generateDefaultConfigContent()
	return os.WriteFile(path, []byte(content), 0644)
}

// generateDefaultConfigContent generates a commented config file.
func generateDefaultConfigContent() string {
	var b strings.Builder
	cfg := DefaultConfig()

	b.WriteString("# Gallery Configuration\n\n")

	b.WriteString("[general]\n")
	b.WriteString("# Demo mounted at startup (see `gallery demos`)\n")
	fmt.Fprintf(&b, "demo = %q\n\n", cfg.General.Demo)

	b.WriteString("[ui]\n")
	b.WriteString("# Color theme: \"auto\", \"dark\", or \"light\"\n")
	fmt.Fprintf(&b, "theme = %q\n", cfg.UI.Theme)
	b.WriteString("# Show the key hint footer\n")
	fmt.Fprintf(&b, "show_hints = %v\n\n", cfg.UI.ShowHints)

	b.WriteString("[state]\n")
	b.WriteString("# Keep saveable state (counters, scroll positions) across restarts\n")
	fmt.Fprintf(&b, "persist = %v\n", cfg.State.Persist)
	b.WriteString("# Snapshot file (defaults to the cache directory)\n")
	b.WriteString("# path = \"~/.cache/gallery/state.json\"\n\n")

	b.WriteString("[image]\n")
	b.WriteString("# Image shown by the image demo\n")
	fmt.Fprintf(&b, "url = %q\n", cfg.Image.URL)
	b.WriteString("# Give up after this long\n")
	fmt.Fprintf(&b, "timeout = %q\n", cfg.Image.Timeout)
	b.WriteString("# Largest response body accepted, in bytes\n")
	fmt.Fprintf(&b, "max_bytes = %d\n", cfg.Image.MaxBytes)
	b.WriteString("# Downloaded images are cached here (defaults to the cache directory)\n")
	b.WriteString("# cache_dir = \"~/.cache/gallery/images\"\n")
	fmt.Fprintf(&b, "no_cache = %v\n\n", cfg.Image.NoCache)

	b.WriteString("[list]\n")
	b.WriteString("# Number of categories in the list demos\n")
	fmt.Fprintf(&b, "item_count = %d\n\n", cfg.List.ItemCount)

	b.WriteString("[behavior]\n")
	b.WriteString("# Notify the Google button callback on every render while loading\n")
	b.WriteString("# instead of once per click\n")
	fmt.Fprintf(&b, "legacy_loading_callback = %v\n\n", cfg.Behavior.LegacyLoadingCallback)

	b.WriteString("[keys]\n")
	b.WriteString("# Keybindings (comma-separated for multiple keys)\n")
	fmt.Fprintf(&b, "# next_focus = %q\n", cfg.Keys.NextFocus)
	fmt.Fprintf(&b, "# prev_focus = %q\n", cfg.Keys.PrevFocus)
	fmt.Fprintf(&b, "# click = %q\n", cfg.Keys.Click)
	fmt.Fprintf(&b, "# remount = %q\n", cfg.Keys.Remount)
	fmt.Fprintf(&b, "# redraw = %q\n", cfg.Keys.Redraw)
	fmt.Fprintf(&b, "# picker = %q\n", cfg.Keys.Picker)
	fmt.Fprintf(&b, "# help = %q\n", cfg.Keys.Help)
	fmt.Fprintf(&b, "# quit = %q\n\n", cfg.Keys.Quit)

	b.WriteString("[debug]\n")
	b.WriteString("# Log level: trace, debug, info, warn, error\n")
	fmt.Fprintf(&b, "level = %q\n", cfg.Debug.Level)
	b.WriteString("# Log file (logging is off unless set here or passed with --debug)\n")
	b.WriteString("# file = \"/tmp/gallery.log\"\n")
	fmt.Fprintf(&b, "max_size_mb = %d\n", cfg.Debug.MaxSizeMB)

	return b.String()
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	demoIDPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// validatorInstance returns the shared validator. Field names in errors use
// the toml tag so warnings match what users write.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("demo_id", func(fl validator.FieldLevel) bool {
			return demoIDPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
			d, err := time.ParseDuration(fl.Field().String())
			return err == nil && d > 0
		})

		validateInst = v
	})
	return validateInst
}

// Validate validates the configuration and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	if err := validatorInstance().Struct(c); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			return []string{err.Error()}
		}
		for _, fe := range ves {
			warnings = append(warnings, describe(fe))
		}
	}

	// Check that no key is bound to two actions
	bound := make(map[string]string)
	for _, b := range []struct{ action, keys string }{
		{"next_focus", c.Keys.NextFocus},
		{"prev_focus", c.Keys.PrevFocus},
		{"click", c.Keys.Click},
		{"remount", c.Keys.Remount},
		{"redraw", c.Keys.Redraw},
		{"picker", c.Keys.Picker},
		{"help", c.Keys.Help},
		{"quit", c.Keys.Quit},
	} {
		for _, k := range SplitKeys(b.keys) {
			if prev, ok := bound[k]; ok {
				warnings = append(warnings, fmt.Sprintf("Key %q is bound to both keys.%s and keys.%s", k, prev, b.action))
				continue
			}
			bound[k] = b.action
		}
	}

	return warnings
}

// SplitKeys parses a comma-separated list of keys. An entry made only of
// spaces is the space key.
func SplitKeys(s string) []string {
	var keys []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			keys = append(keys, t)
		} else if p != "" {
			keys = append(keys, " ")
		}
	}
	return keys
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("Invalid value for %s: %v (expected %s)", field, fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte", "lte":
		return fmt.Sprintf("Invalid value for %s: %v (must be %s %s)", field, fe.Value(), map[string]string{"gte": ">=", "lte": "<="}[fe.Tag()], fe.Param())
	default:
		return fmt.Sprintf("Invalid value for %s: %v (not a valid %s)", field, fe.Value(), fe.Tag())
	}
}
