package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrInvalidLineHeight is returned when editor.line_height cannot fit the
// 13-unit checkbox drawn on every file row.
var ErrInvalidLineHeight = errors.New("editor.line_height must be at least 13")

// MinLineHeight is the smallest row height that still fits a checkbox.
const MinLineHeight = 13

// Config holds the resolved application configuration.
type Config struct {
	Editor EditorConfig `mapstructure:"editor"`
	// Theme name: "dark" (default) or "light".
	Theme string `mapstructure:"theme"`
	// WatchDebounce coalesces bursts of repository change events.
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
	// CacheTTL bounds how long a git status result is reused.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	// LogFile enables file logging when non-empty.
	LogFile  string `mapstructure:"log_file"`
	LogLevel string `mapstructure:"log_level"`
	// Keymaps are appended after the built-in bindings and win over them.
	Keymaps []KeymapConfig `mapstructure:"keymaps"`
}

// EditorConfig holds the editor-wide metrics the panel is laid out with.
type EditorConfig struct {
	// LineHeight is the row height in logical pixels.
	LineHeight int `mapstructure:"line_height"`
	FontSize   int `mapstructure:"font_size"`
}

// KeymapConfig is one user key binding as written in the config file.
type KeymapConfig struct {
	Key     string `mapstructure:"key"`
	Command string `mapstructure:"command"`
	When    string `mapstructure:"when"`
	Mode    string `mapstructure:"mode"`
}

// Load reads configuration from ~/.config/scmpanel/config.yaml (or TOML/JSON).
func Load() (*Config, error) {
	return LoadFrom(configDirectory(), ".")
}

// LoadFrom reads configuration searching the given directories in order.
func LoadFrom(dirs ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	setDefaults(v)

	v.SetEnvPrefix("SCMPANEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file leaves the defaults.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	_ = v.Unmarshal(cfg)
	return cfg
}

// Validate checks values the panel cannot lay out with.
func (c *Config) Validate() error {
	if c.Editor.LineHeight < MinLineHeight {
		return fmt.Errorf("%w (got %d)", ErrInvalidLineHeight, c.Editor.LineHeight)
	}
	return nil
}

// LineHeight returns the row height as a float for geometry.
func (c *Config) LineHeight() float64 { return float64(c.Editor.LineHeight) }

func setDefaults(v *viper.Viper) {
	v.SetDefault("editor.line_height", 20)
	v.SetDefault("editor.font_size", 13)
	v.SetDefault("theme", "dark")
	v.SetDefault("watch_debounce", 500*time.Millisecond)
	v.SetDefault("cache_ttl", 2*time.Second)
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")
}

func configDirectory() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "scmpanel")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "scmpanel")
}
