// Package app wires configuration, storage and the notification center
// into the services consumed by commands and the TUI.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/colonyops/unitdesk/internal/core/businessunit"
	"github.com/colonyops/unitdesk/internal/core/config"
	"github.com/colonyops/unitdesk/internal/core/logging"
	"github.com/colonyops/unitdesk/internal/core/notify"
	"github.com/colonyops/unitdesk/internal/server"
	"github.com/colonyops/unitdesk/internal/store/jsonfile"
	"github.com/colonyops/unitdesk/internal/store/memstore"
	"github.com/colonyops/unitdesk/internal/store/redisstore"
	"github.com/colonyops/unitdesk/internal/store/rest"
)

// App is the central entry point for unitdesk operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Config  *config.Config
	Center  *notify.Center
	History notify.Store // nil when history is disabled

	// Set by OpenUnits.
	Units   *businessunit.Service
	Backend string
	Checks  []server.Check

	logger  zerolog.Logger
	unsub   func()
	closers []func() error
}

// New creates the notification center for cfg and, when enabled, attaches
// the history recorder.
func New(cfg *config.Config) *App {
	a := &App{
		Config: cfg,
		Center: notify.New(
			notify.WithDefaultDuration(cfg.Notifications.DefaultDuration),
			notify.WithLogger(logging.Component("notify")),
		),
		logger: logging.Component("app"),
	}

	if cfg.Notifications.History > 0 {
		store := jsonfile.NewNotifyStore(cfg.HistoryFile(), cfg.Notifications.History)
		a.History = store
		a.unsub = a.Center.Subscribe(notify.NewRecorder(store, a.logger))
	}

	return a
}

// OpenUnits connects the given storage backend and builds the business unit
// service on top of it.
func (a *App) OpenUnits(ctx context.Context, backend string) (*businessunit.Service, error) {
	store, err := a.openStore(ctx, backend)
	if err != nil {
		return nil, err
	}

	a.Backend = backend
	a.Units = businessunit.NewService(store, logging.Component("businessunit"))
	a.logger.Debug().Str("backend", backend).Msg("business unit store opened")
	return a.Units, nil
}

func (a *App) openStore(ctx context.Context, backend string) (businessunit.Store, error) {
	cfg := a.Config

	switch backend {
	case config.BackendLocal:
		return jsonfile.NewUnitStore(cfg.UnitsFile(), cfg.Storage.Latency), nil

	case config.BackendMemory:
		return memstore.NewUnitStore(), nil

	case config.BackendREST:
		client, err := rest.New(cfg.API.BaseURL, cfg.API.Timeout)
		if err != nil {
			return nil, fmt.Errorf("create api client: %w", err)
		}
		return client, nil

	case config.BackendRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			URL:            cfg.Storage.Redis.URL,
			RetryAttempts:  cfg.Storage.Redis.RetryAttempts,
			RetryInterval:  cfg.Storage.Redis.RetryInterval,
			ConnectTimeout: cfg.Storage.Redis.ConnectTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		a.Checks = append(a.Checks, redisstore.Healthcheck(client))
		return redisstore.NewUnitStore(client, cfg.Storage.Redis.Prefix), nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", backend)
}

// Close dismisses every active notification and releases the store.
func (a *App) Close() error {
	if a.Center == nil {
		return nil
	}
	errs := []error{a.Center.Close()}
	if a.unsub != nil {
		a.unsub()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
