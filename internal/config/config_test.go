package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("QSLCARD_CONFIG", filepath.Join(home, "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".local", "share", "qslcard", "qslcard.db"), cfg.Database.Path)
	require.Equal(t, filepath.Join(home, "QSL"), cfg.Export.Dir)
	require.Equal(t, 2, cfg.Export.Scale)
	require.Equal(t, 15*time.Second, cfg.Export.ImageTimeout)
	require.False(t, cfg.Export.WriteADIF)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "config.toml")
	data := []byte(`
[export]
dir = "/tmp/cards"
scale = 3
image_timeout = "2s"
write_adif = true

[card]
background = "/tmp/bg.jpg"
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	t.Setenv("QSLCARD_CONFIG", path)
	t.Setenv("QSLCARD_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/cards", cfg.Export.Dir)
	require.Equal(t, 3, cfg.Export.Scale)
	require.Equal(t, 2*time.Second, cfg.Export.ImageTimeout)
	require.True(t, cfg.Export.WriteADIF)
	require.Equal(t, "/tmp/bg.jpg", cfg.Card.Background)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestSaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "cfg", "config.toml")
	t.Setenv("QSLCARD_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Export.Dir = filepath.Join(home, "out")
	cfg.Export.WriteADIF = true
	require.NoError(t, Save(cfg))

	again, err := Load()
	require.NoError(t, err)
	require.Equal(t, cfg.Export.Dir, again.Export.Dir)
	require.True(t, again.Export.WriteADIF)
	require.Equal(t, cfg.Export.ImageTimeout, again.Export.ImageTimeout)
}
