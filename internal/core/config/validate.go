package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/unitdesk/internal/core/styles"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Validate checks that the configuration is valid. Failures are returned
// as criterio.FieldErrors keyed by their YAML path.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, notEmpty),
		criterio.Run("notifications.default_duration", c.Notifications.DefaultDuration, positive),
		criterio.Run("notifications.max_visible", c.Notifications.MaxVisible, atLeastOne),
		criterio.Run("notifications.history", c.Notifications.History, notNegative),
		criterio.Run("storage.backend", c.Storage.Backend, oneOf(BackendLocal, BackendMemory, BackendREST, BackendRedis)),
		criterio.Run("storage.latency", c.Storage.Latency, notNegativeDuration),
		c.validateBackend(),
		criterio.Run("api.timeout", c.API.Timeout, notNegativeDuration),
		criterio.Run("server.addr", c.Server.Addr, notEmpty),
		criterio.Run("server.backend", c.Server.Backend, oneOf(BackendLocal, BackendMemory, BackendRedis)),
		criterio.Run("tui.theme", c.TUI.Theme, oneOf(styles.ThemeNames()...)),
		c.validateKeys(),
	)
}

// ValidateDeep adds file system checks to Validate. The configPath argument
// is the config file location (empty skips that check).
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Storage.Backend != BackendLocal && c.Storage.Latency > 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Storage",
			Item:     "latency",
			Message:  "latency only applies to the local backend",
		})
	}
	if c.Notifications.History == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Notifications",
			Item:     "history",
			Message:  "notification history is disabled",
		})
	}

	return warnings
}

func (c *Config) validateBackend() error {
	usesRedis := c.Storage.Backend == BackendRedis || c.Server.Backend == BackendRedis
	return criterio.ValidateStruct(
		criterio.Run("api.base_url", c.API.BaseURL, func(s string) error {
			if c.Storage.Backend != BackendREST {
				return nil
			}
			return httpURL(s)
		}),
		criterio.Run("storage.redis.url", c.Storage.Redis.URL, func(s string) error {
			if !usesRedis {
				return nil
			}
			return notEmpty(s)
		}),
	)
}

func (c *Config) validateKeys() error {
	keys := []struct {
		field, value string
	}{
		{"tui.keys.dismiss", c.TUI.Keys.Dismiss},
		{"tui.keys.action", c.TUI.Keys.Action},
		{"tui.keys.dismiss_all", c.TUI.Keys.DismissAll},
	}

	var errs criterio.FieldErrorsBuilder
	seen := make(map[string]string, len(keys))
	for _, k := range keys {
		switch {
		case k.value == "":
			errs = errs.Append(k.field, errors.New("cannot be empty"))
		case k.value == "ctrl+c":
			errs = errs.Append(k.field, errors.New("ctrl+c is reserved for quit"))
		case seen[k.value] != "":
			errs = errs.Append(k.field, fmt.Errorf("%q is already bound by %s", k.value, seen[k.value]))
		default:
			seen[k.value] = k.field
		}
	}
	return errs.ToError()
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func notEmpty(s string) error {
	if s == "" {
		return errors.New("cannot be empty")
	}
	return nil
}

func positive(d time.Duration) error {
	if d <= 0 {
		return errors.New("must be positive")
	}
	return nil
}

func notNegativeDuration(d time.Duration) error {
	if d < 0 {
		return errors.New("cannot be negative")
	}
	return nil
}

func atLeastOne(n int) error {
	if n < 1 {
		return errors.New("must be at least 1")
	}
	return nil
}

func notNegative(n int) error {
	if n < 0 {
		return errors.New("cannot be negative")
	}
	return nil
}

func oneOf(allowed ...string) func(string) error {
	return func(s string) error {
		if !slices.Contains(allowed, s) {
			return fmt.Errorf("invalid value %q, must be one of %v", s, allowed)
		}
		return nil
	}
}

func httpURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid URL %q, must be http(s)://host", s)
	}
	return nil
}
