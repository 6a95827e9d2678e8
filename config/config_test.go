package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.yaml")} {
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	}
	assert.NoError(t, Default().Validate())
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window:
  width: 1024
  title: Pong
interfaces: screens
focus: menu
watch: true
log:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height, "unset fields keep their default")
	assert.Equal(t, "Pong", cfg.Window.Title)
	assert.True(t, cfg.Window.Resizable)
	assert.Equal(t, "screens", cfg.Interfaces)
	assert.Equal(t, "menu", cfg.Focus)
	assert.True(t, cfg.Watch)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 60, cfg.TPS)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"size", "window: {width: 0}"},
		{"tps", "tps: -1"},
		{"level", "log: {level: loud}"},
		{"interfaces", "interfaces: ''"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))
			_, err := Load(path)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window: ["), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	for _, l := range []Log{{Level: "info"}, {Level: "debug", Development: true}} {
		logger, err := NewLogger(l)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}
	_, err := NewLogger(Log{Level: "loud"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
