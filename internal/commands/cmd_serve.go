package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/unitdesk/internal/app"
	"github.com/colonyops/unitdesk/internal/core/logging"
	"github.com/colonyops/unitdesk/internal/printer"
	"github.com/colonyops/unitdesk/internal/server"
)

type ServeCmd struct {
	flags *Flags
	app   *app.App

	// flags
	addr            string
	shutdownTimeout time.Duration
}

// NewServeCmd creates a new serve command
func NewServeCmd(flags *Flags, a *app.App) *ServeCmd {
	return &ServeCmd{flags: flags, app: a}
}

// Register adds the serve command to the application
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Serve the business unit REST API",
		UsageText: "unitdesk serve [--addr HOST:PORT]",
		Description: `Starts the JSON API used by the rest storage backend.

The API stores units in the backend selected by server.backend (local or
redis) and exposes /healthz and /readyz probes.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address (defaults to server.addr)",
				Sources:     cli.EnvVars("UNITDESK_SERVER_ADDR"),
				Destination: &cmd.addr,
			},
			&cli.DurationFlag{
				Name:        "shutdown-timeout",
				Usage:       "grace period for in-flight requests",
				Value:       5 * time.Second,
				Destination: &cmd.shutdownTimeout,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ServeCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.app.Config

	addr := cmd.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	svc, err := cmd.app.OpenUnits(ctx, cfg.Server.Backend)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(svc, logging.Component("server"),
		server.WithChecks(cmd.app.Checks...),
		server.WithShutdownTimeout(cmd.shutdownTimeout),
	)

	printer.Ctx(ctx).Infof("Serving business units on http://%s (backend %s)", addr, cfg.Server.Backend)
	return srv.Run(ctx, addr)
}
