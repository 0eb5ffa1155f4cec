package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "infix.yaml")
	src := `
mode: logic
locale: de
compare: ignorecase
tables: tables.yaml
log:
  level: debug
server:
  addr: ":9000"
  burst: 10
`
	require.NoError(t, os.WriteFile(file, []byte(src), 0o644))
	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "logic", cfg.Mode)
	assert.Equal(t, "de", cfg.Locale)
	assert.Equal(t, "ignorecase", cfg.Compare)
	assert.Equal(t, "tables.yaml", cfg.Tables)
	assert.True(t, cfg.Standard, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5, cfg.Log.MaxBackups)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 10, cfg.Server.Burst)
	assert.Equal(t, 50.0, cfg.Server.Rate)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadDefault(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
