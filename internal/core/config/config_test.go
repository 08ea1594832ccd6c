package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load("", dataDir)
	require.NoError(t, err)

	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, 5*time.Second, cfg.Notifications.DefaultDuration)
	assert.Equal(t, 5, cfg.Notifications.MaxVisible)
	assert.Equal(t, BackendLocal, cfg.Storage.Backend)
	assert.Equal(t, 50*time.Millisecond, cfg.Storage.Latency)
	assert.Equal(t, "ctrl+x", cfg.TUI.Keys.Dismiss)
	assert.Equal(t, filepath.Join(dataDir, "units.json"), cfg.UnitsFile())
	assert.Equal(t, filepath.Join(dataDir, "notifications.json"), cfg.HistoryFile())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().API, cfg.API)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
notifications:
  default_duration: 2s
  max_visible: 3
storage:
  backend: rest
  latency: 0s
api:
  base_url: https://api.example.com
  timeout: 3s
tui:
  theme: gruvbox
  keys:
    dismiss: esc
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Notifications.DefaultDuration)
	assert.Equal(t, 3, cfg.Notifications.MaxVisible)
	assert.Equal(t, BackendREST, cfg.Storage.Backend)
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, "gruvbox", cfg.TUI.Theme)
	assert.Equal(t, "esc", cfg.TUI.Keys.Dismiss)
	assert.Equal(t, "ctrl+a", cfg.TUI.Keys.Action, "unset keys keep their default")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "notifications: [")

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("UNITDESK_STORAGE_BACKEND", "redis")
	t.Setenv("UNITDESK_STORAGE_REDIS_URL", "redis://cache:6379/1")
	t.Setenv("UNITDESK_NOTIFICATIONS_MAX_VISIBLE", "9")
	t.Setenv("UNITDESK_TUI_KEYS_DISMISS_ALL", "ctrl+k")

	path := writeConfig(t, "storage:\n  backend: local\n")

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "redis://cache:6379/1", cfg.Storage.Redis.URL)
	assert.Equal(t, 9, cfg.Notifications.MaxVisible)
	assert.Equal(t, "ctrl+k", cfg.TUI.Keys.DismissAll)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("UNITDESK_NOTIFICATIONS_MAX_VISIBLE", "lots")

	_, err := Load("", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse environment")
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, "storage:\n  backend: floppy\n")

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.backend")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("UNITDESK_TEST_DOTENV=loaded\n"), 0o644))
	t.Setenv("UNITDESK_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("UNITDESK_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "loaded", os.Getenv("UNITDESK_TEST_DOTENV"))
}

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &cfg
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	names := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		names[i] = fe.Field
	}
	return names
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty data dir", func(c *Config) { c.DataDir = "" }, "data_dir"},
		{"zero duration", func(c *Config) { c.Notifications.DefaultDuration = 0 }, "notifications.default_duration"},
		{"zero max visible", func(c *Config) { c.Notifications.MaxVisible = 0 }, "notifications.max_visible"},
		{"negative history", func(c *Config) { c.Notifications.History = -1 }, "notifications.history"},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "s3" }, "storage.backend"},
		{"negative latency", func(c *Config) { c.Storage.Latency = -time.Second }, "storage.latency"},
		{"rest without url", func(c *Config) {
			c.Storage.Backend = BackendREST
			c.API.BaseURL = "localhost:8080"
		}, "api.base_url"},
		{"redis without url", func(c *Config) {
			c.Storage.Backend = BackendRedis
			c.Storage.Redis.URL = ""
		}, "storage.redis.url"},
		{"server cannot proxy rest", func(c *Config) { c.Server.Backend = BackendREST }, "server.backend"},
		{"unknown theme", func(c *Config) { c.TUI.Theme = "neon" }, "tui.theme"},
		{"empty key", func(c *Config) { c.TUI.Keys.Action = "" }, "tui.keys.action"},
		{"reserved key", func(c *Config) { c.TUI.Keys.Dismiss = "ctrl+c" }, "tui.keys.dismiss"},
		{"duplicate key", func(c *Config) { c.TUI.Keys.DismissAll = "ctrl+x" }, "tui.keys.dismiss_all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, fieldNames(t, err), tt.field)
		})
	}
}

func TestValidate_Default(t *testing.T) {
	require.NoError(t, validConfig(t).Validate())
}

func TestValidate_BaseURLIgnoredForLocal(t *testing.T) {
	cfg := validConfig(t)
	cfg.API.BaseURL = "not a url"
	require.NoError(t, cfg.Validate())
}

func TestValidateDeep(t *testing.T) {
	cfg := validConfig(t)

	file := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	cfg.DataDir = file

	err := cfg.ValidateDeep(t.TempDir())
	require.Error(t, err)

	names := fieldNames(t, err)
	assert.Contains(t, names, "config_file")
	assert.Contains(t, names, "data_dir")
}

func TestWarnings(t *testing.T) {
	cfg := validConfig(t)
	assert.Empty(t, cfg.Warnings())

	cfg.Storage.Backend = BackendREST
	cfg.Notifications.History = 0

	warnings := cfg.Warnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, "Storage", warnings[0].Category)
	assert.Equal(t, "Notifications", warnings[1].Category)
}
