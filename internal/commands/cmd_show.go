package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/unitdesk/internal/app"
	"github.com/colonyops/unitdesk/internal/core/businessunit"
)

type ShowCmd struct {
	flags *Flags
	app   *app.App

	// flags
	jsonOutput bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags, a *app.App) *ShowCmd {
	return &ShowCmd{flags: flags, app: a}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:          "show",
		Usage:         "Show a business unit",
		UsageText:     "unitdesk show <id> [--json]",
		ShellComplete: UnitIDCompleter(cmd.app),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return errors.New("business unit id is required")
	}
	// Completions are printed as id:name.
	id, _, _ = strings.Cut(id, ":")

	svc, err := cmd.app.OpenUnits(ctx, cmd.app.Config.Storage.Backend)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	u, err := svc.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get business unit %s: %w", id, err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return writeUnitsJSON(out, []businessunit.Unit{u})
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, field := range businessunit.Fields {
		_, _ = fmt.Fprintf(w, "%s:\t%s\n", field, u.Value(field))
	}
	_, _ = fmt.Fprintf(w, "createdAt:\t%s\n", u.CreatedAt.Format("2006-01-02 15:04:05"))
	return w.Flush()
}
