// Package config loads the editor configuration from
// ~/.config/rile/config.yaml, with RILE_* environment variables
// taking precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/davazp/rile/color"
)

// Config is the fully resolved editor configuration.
type Config struct {
	UI  UIConfig  `mapstructure:"ui"`
	Log LogConfig `mapstructure:"log"`
}

// UIConfig controls the rendered frame.
type UIConfig struct {
	LineNumbers bool        `mapstructure:"line_numbers"`
	Theme       ThemeConfig `mapstructure:"theme"`
}

// ThemeConfig holds the frame colors. Values accept ANSI color
// names, 256-color palette indexes and #rrggbb.
type ThemeConfig struct {
	ModelineFg  string `mapstructure:"modeline_fg"`
	ModelineBg  string `mapstructure:"modeline_bg"`
	GutterFg    string `mapstructure:"gutter_fg"`
	HighlightFg string `mapstructure:"highlight_fg"`
	HighlightBg string `mapstructure:"highlight_bg"`
}

// LogConfig controls the diagnostic log file.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Dir returns the configuration directory, ~/.config/rile.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "rile")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ui.line_numbers", false)
	v.SetDefault("ui.theme.modeline_fg", "15")
	v.SetDefault("ui.theme.modeline_bg", "236")
	v.SetDefault("ui.theme.gutter_fg", "240")
	v.SetDefault("ui.theme.highlight_fg", "0")
	v.SetDefault("ui.theme.highlight_bg", "11")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(Dir(), "rile.log"))
}

// Load reads the configuration. An explicit file overrides the
// default search path; a missing default file is not an error.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("RILE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("cannot read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every configured value is usable.
func (c *Config) Validate() error {
	colors := map[string]string{
		"ui.theme.modeline_fg":  c.UI.Theme.ModelineFg,
		"ui.theme.modeline_bg":  c.UI.Theme.ModelineBg,
		"ui.theme.gutter_fg":    c.UI.Theme.GutterFg,
		"ui.theme.highlight_fg": c.UI.Theme.HighlightFg,
		"ui.theme.highlight_bg": c.UI.Theme.HighlightBg,
	}
	for key, value := range colors {
		if _, err := color.Parse(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error", "":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	return nil
}
