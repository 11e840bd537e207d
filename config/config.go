// Package config loads editor settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"flowgrid/catalog"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config holds the editor settings. Zero fields fall back to defaults.
type Config struct {
	DebounceMS  int     `toml:"debounce_ms"`  // click delay after entering a phase
	CellWidth   float64 `toml:"cell_width"`   // logical units per terminal column
	CellHeight  float64 `toml:"cell_height"`  // logical units per terminal row
	Catalog     string  `toml:"catalog"`      // widget catalog TOML path
	HistorySize int     `toml:"history_size"` // undo states kept
	LogLevel    string  `toml:"log_level"`

	// Keys present in the file that Config does not know about.
	Unknown []string `toml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DebounceMS:  150,
		CellWidth:   10,
		CellHeight:  20,
		HistorySize: 200,
		LogLevel:    "info",
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	var file Config
	meta, err := toml.DecodeFile(path, &file)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.merge(file)
	for _, key := range meta.Undecoded() {
		cfg.Unknown = append(cfg.Unknown, key.String())
	}
	return cfg, nil
}

func (c *Config) merge(o Config) {
	if o.DebounceMS > 0 {
		c.DebounceMS = o.DebounceMS
	}
	if o.CellWidth > 0 {
		c.CellWidth = o.CellWidth
	}
	if o.CellHeight > 0 {
		c.CellHeight = o.CellHeight
	}
	if o.Catalog != "" {
		c.Catalog = o.Catalog
	}
	if o.HistorySize > 0 {
		c.HistorySize = o.HistorySize
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
}

// ClickDelay returns DebounceMS as a duration.
func (c Config) ClickDelay() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Level parses LogLevel, defaulting to info.
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// LoadCatalog returns the configured widget catalog, or the built-in one
// when none is configured.
func (c Config) LoadCatalog() (*catalog.Catalog, error) {
	if c.Catalog == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(c.Catalog)
}
