package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9100
paths:
  base_dir: /srv/oltcmd
storage:
  backend: SQLite
firmware:
  presets:
    - model: ZTE F670L
      file: F670LV9.bin
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1:9100", cfg.GetServerAddr())
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, map[string]string{"ZTE F670L": "F670LV9.bin"}, cfg.FirmwareMap())
	assert.Equal(t, "ZTE F601", cfg.Firmware.DefaultModel)
	assert.Equal(t, filepath.Join("/srv/oltcmd", "olt_data.json"), cfg.ResolvePath(cfg.Paths.Catalog))
	assert.Same(t, cfg, Get())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("OLTCMD_HISTORY_RECENT_LIMIT", "5")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.History.RecentLimit)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "json", cfg.Storage.Backend)
	assert.Equal(t, 20, cfg.History.RecentLimit)
	assert.Equal(t, time.Second, cfg.Preferences.SaveDelay)
	assert.Equal(t, "F601P1N34.bin", cfg.FirmwareMap()["ZTE F601"])
	assert.Equal(t, "F10-G10-NW_1.6.0.bin", cfg.FirmwareMap()["ONU FAST"])
	assert.Equal(t, "/abs/file.json", cfg.ResolvePath("/abs/file.json"))
}
