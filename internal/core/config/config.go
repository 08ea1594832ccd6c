// Package config handles configuration loading and validation for unitdesk.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/unitdesk/internal/core/styles"
)

// Storage backends.
const (
	BackendLocal  = "local"
	BackendMemory = "memory"
	BackendREST   = "rest"
	BackendRedis  = "redis"
)

// Config holds the application configuration.
type Config struct {
	Notifications NotificationsConfig `yaml:"notifications" envPrefix:"NOTIFICATIONS_"`
	Storage       StorageConfig       `yaml:"storage"       envPrefix:"STORAGE_"`
	API           APIConfig           `yaml:"api"           envPrefix:"API_"`
	Server        ServerConfig        `yaml:"server"        envPrefix:"SERVER_"`
	TUI           TUIConfig           `yaml:"tui"           envPrefix:"TUI_"`
	DataDir       string              `yaml:"-"` // set by caller, not from config file
}

// NotificationsConfig controls the notification center and its history.
type NotificationsConfig struct {
	DefaultDuration time.Duration `yaml:"default_duration" env:"DEFAULT_DURATION"`
	MaxVisible      int           `yaml:"max_visible"      env:"MAX_VISIBLE"`
	History         int           `yaml:"history"          env:"HISTORY"` // entries kept; 0 disables history
}

// StorageConfig selects where business units are persisted.
type StorageConfig struct {
	Backend string        `yaml:"backend" env:"BACKEND"`
	Latency time.Duration `yaml:"latency" env:"LATENCY"` // simulated delay for the local backend
	Redis   RedisConfig   `yaml:"redis"   envPrefix:"REDIS_"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	URL            string        `yaml:"url"             env:"URL"`
	Prefix         string        `yaml:"prefix"          env:"PREFIX"`
	RetryAttempts  int           `yaml:"retry_attempts"  env:"RETRY_ATTEMPTS"`
	RetryInterval  time.Duration `yaml:"retry_interval"  env:"RETRY_INTERVAL"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"CONNECT_TIMEOUT"`
}

// APIConfig configures the REST client used by the rest backend.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"BASE_URL"`
	Timeout time.Duration `yaml:"timeout"  env:"TIMEOUT"`
}

// ServerConfig configures `unitdesk serve`.
type ServerConfig struct {
	Addr    string `yaml:"addr"    env:"ADDR"`
	Backend string `yaml:"backend" env:"BACKEND"` // store served by the API; local, memory or redis
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme string     `yaml:"theme" env:"THEME"` // one of styles.ThemeNames()
	Keys  KeysConfig `yaml:"keys"  envPrefix:"KEYS_"`
}

// KeysConfig binds the toast shortcuts.
type KeysConfig struct {
	Dismiss    string `yaml:"dismiss"     env:"DISMISS"`
	Action     string `yaml:"action"      env:"ACTION"`
	DismissAll string `yaml:"dismiss_all" env:"DISMISS_ALL"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Notifications: NotificationsConfig{
			DefaultDuration: 5 * time.Second,
			MaxVisible:      5,
			History:         200,
		},
		Storage: StorageConfig{
			Backend: BackendLocal,
			Latency: 50 * time.Millisecond,
			Redis: RedisConfig{
				URL:            "redis://localhost:6379/0",
				Prefix:         "unitdesk",
				RetryAttempts:  3,
				RetryInterval:  500 * time.Millisecond,
				ConnectTimeout: 5 * time.Second,
			},
		},
		API: APIConfig{
			BaseURL: "http://localhost:8080",
			Timeout: 10 * time.Second,
		},
		Server: ServerConfig{
			Addr:    "localhost:8080",
			Backend: BackendLocal,
		},
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
			Keys: KeysConfig{
				Dismiss:    "ctrl+x",
				Action:     "ctrl+a",
				DismissAll: "ctrl+d",
			},
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, defaults are used. UNITDESK_*
// environment variables override file values.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Notifications.DefaultDuration == 0 {
		c.Notifications.DefaultDuration = defaults.Notifications.DefaultDuration
	}
	if c.Notifications.MaxVisible == 0 {
		c.Notifications.MaxVisible = defaults.Notifications.MaxVisible
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Storage.Redis.Prefix == "" {
		c.Storage.Redis.Prefix = defaults.Storage.Redis.Prefix
	}
	if c.Storage.Redis.RetryAttempts == 0 {
		c.Storage.Redis.RetryAttempts = defaults.Storage.Redis.RetryAttempts
	}
	if c.Storage.Redis.RetryInterval == 0 {
		c.Storage.Redis.RetryInterval = defaults.Storage.Redis.RetryInterval
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = defaults.API.Timeout
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Server.Backend == "" {
		c.Server.Backend = defaults.Server.Backend
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.Keys.Dismiss == "" {
		c.TUI.Keys.Dismiss = defaults.TUI.Keys.Dismiss
	}
	if c.TUI.Keys.Action == "" {
		c.TUI.Keys.Action = defaults.TUI.Keys.Action
	}
	if c.TUI.Keys.DismissAll == "" {
		c.TUI.Keys.DismissAll = defaults.TUI.Keys.DismissAll
	}
}

// UnitsFile returns the path to the local business units JSON file.
func (c *Config) UnitsFile() string {
	return filepath.Join(c.DataDir, "units.json")
}

// HistoryFile returns the path to the notification history JSON file.
func (c *Config) HistoryFile() string {
	return filepath.Join(c.DataDir, "notifications.json")
}
