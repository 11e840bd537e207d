package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	path := writeFile(t, "flowgrid.toml", `
debounce_ms = 200
cell_width = 5
log_level = "debug"
colour = "blue"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 200*time.Millisecond, cfg.ClickDelay())
	assert.Equal(t, 5.0, cfg.CellWidth)
	assert.Equal(t, 20.0, cfg.CellHeight, "unset keys keep defaults")
	assert.Equal(t, log.DebugLevel, cfg.Level())
	assert.Equal(t, []string{"colour"}, cfg.Unknown)
}

func TestLoadMalformed(t *testing.T) {
	path := writeFile(t, "bad.toml", "debounce_ms = = 3")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLevelFallback(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "chatty"
	assert.Equal(t, log.InfoLevel, cfg.Level())
}

func TestLoadCatalog(t *testing.T) {
	cfg := Default()
	c, err := cfg.LoadCatalog()
	require.NoError(t, err)
	assert.Equal(t, 5, c.Len())

	cfg.Catalog = writeFile(t, "widgets.toml", "[[widget]]\nname = \"only\"\n")
	c, err = cfg.LoadCatalog()
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}
