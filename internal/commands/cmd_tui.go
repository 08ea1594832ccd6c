package commands

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/unitdesk/internal/app"
	"github.com/colonyops/unitdesk/internal/core/logging"
	"github.com/colonyops/unitdesk/internal/tui"
	"github.com/colonyops/unitdesk/pkg/profiler"
)

type TuiCmd struct {
	flags *Flags
	app   *app.App

	loadDelay time.Duration
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, a *app.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   a,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("UNITDESK_PROFILER_PORT"),
			Destination: &cmd.flags.ProfilerPort,
		},
		&cli.DurationFlag{
			Name:        "load-delay",
			Usage:       "simulated delay before the initial load completes",
			Sources:     cli.EnvVars("UNITDESK_LOAD_DELAY"),
			Value:       300 * time.Millisecond,
			Destination: &cmd.loadDelay,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	if cmd.flags.ProfilerPort > 0 {
		profServer := profiler.New(cmd.flags.ProfilerPort, logging.Component("profiler"))
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().
			Str("url", fmt.Sprintf("http://%s/debug/pprof/", profServer.Addr())).
			Msg("profiler endpoint available")
	}

	cfg := cmd.app.Config
	svc, err := cmd.app.OpenUnits(ctx, cfg.Storage.Backend)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	m := tui.New(svc, cmd.app.Center, cfg, tui.Options{
		LoadDelay: cmd.loadDelay,
		History:   cmd.app.History,
	})
	p := tea.NewProgram(m)

	unsubscribe := cmd.app.Center.Subscribe(tui.Forward(p.Send))
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
