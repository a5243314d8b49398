package termview

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultScrollback is the default scrollback depth in rows.
const DefaultScrollback = 1000

// Config holds the user-tunable settings a host loads from disk.
type Config struct {
	Rows        int     `yaml:"rows"`
	Cols        int     `yaml:"cols"`
	Scrollback  int     `yaml:"scrollback"`
	ScrollRatio float64 `yaml:"scroll_ratio"`
	ShowColors  bool    `yaml:"show_colors"`

	// Shell overrides the command launched by StartShell. Empty means
	// $SHELL, falling back to /bin/sh.
	Shell     string   `yaml:"shell"`
	ShellArgs []string `yaml:"shell_args"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Rows:        DefaultRows,
		Cols:        DefaultCols,
		Scrollback:  DefaultScrollback,
		ScrollRatio: DefaultScrollRatio,
		ShowColors:  true,
	}
}

// LoadConfig reads settings from a YAML file. A missing file is created
// with the defaults so users have something to edit.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if werr := SaveConfig(path, cfg); werr != nil {
			return cfg, werr
		}
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// SaveConfig writes settings to a YAML file.
func SaveConfig(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// normalize clamps nonsense values back to the defaults.
func (c *Config) normalize() {
	if c.Rows <= 0 {
		c.Rows = DefaultRows
	}
	if c.Cols <= 0 {
		c.Cols = DefaultCols
	}
	if c.Scrollback < 0 {
		c.Scrollback = DefaultScrollback
	}
	if c.ScrollRatio <= 0 || c.ScrollRatio > 1 {
		c.ScrollRatio = DefaultScrollRatio
	}
}

// Options converts the config into session options.
func (c Config) Options() []Option {
	return []Option{
		WithSize(c.Rows, c.Cols),
		WithScrollback(c.Scrollback),
		WithScrollRatio(c.ScrollRatio),
		WithHighlights(c.ShowColors),
	}
}
