// Package config loads editor settings from a TOML file and watches it
// for live reload.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"

	"github.com/mosaicedit/mosaic/internal/logger"
)

// Config holds all editor settings.
type Config struct {
	History HistoryConfig `toml:"history"`
	Logging LoggingConfig `toml:"logging"`
	UI      UIConfig      `toml:"ui"`
}

// HistoryConfig bounds the undo stack.
type HistoryConfig struct {
	MaxDepth int `toml:"max_depth"`
}

// LoggingConfig selects log verbosity and destination.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Palette     []string `toml:"palette"`
	DefaultFill string   `toml:"default_fill"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{MaxDepth: 100},
		Logging: LoggingConfig{Level: "info"},
		UI: UIConfig{
			Palette: []string{
				"#7aa2f7", "#9ece6a", "#e0af68", "#f7768e",
				"#bb9af7", "#7dcfff", "#c0caf5",
			},
			DefaultFill: "#7aa2f7",
		},
	}
}

// Load reads the TOML file at path, layered over the defaults. A
// missing file is not an error; the defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// normalize repairs out-of-range values in place, warning once per
// repair. Loading never fails on a bad value, only on a bad file.
func (c *Config) normalize() {
	def := Default()

	if c.History.MaxDepth <= 0 {
		logger.Warnf("config: history.max_depth %d out of range, using %d",
			c.History.MaxDepth, def.History.MaxDepth)
		c.History.MaxDepth = def.History.MaxDepth
	}

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		logger.Warnf("config: %v, using %q", err, def.Logging.Level)
		c.Logging.Level = def.Logging.Level
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}

	kept := c.UI.Palette[:0]
	for _, hex := range c.UI.Palette {
		if _, err := colorful.Hex(hex); err != nil {
			logger.Warnf("config: dropping palette color %q: %v", hex, err)
			continue
		}
		kept = append(kept, hex)
	}
	c.UI.Palette = kept
	if len(c.UI.Palette) == 0 {
		c.UI.Palette = def.UI.Palette
	}

	if _, err := colorful.Hex(c.UI.DefaultFill); err != nil {
		logger.Warnf("config: default_fill %q: %v, using %q",
			c.UI.DefaultFill, err, def.UI.DefaultFill)
		c.UI.DefaultFill = def.UI.DefaultFill
	}
}
