package commands

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/unitdesk/internal/app"
	"github.com/colonyops/unitdesk/internal/printer"
	"github.com/colonyops/unitdesk/pkg/iojson"
)

var errHistoryDisabled = errors.New("notification history is disabled (notifications.history is 0)")

type NotificationsCmd struct {
	flags *Flags
	app   *app.App

	// flags
	jsonOutput bool
	limit      int
}

// NewNotificationsCmd creates a new notifications command
func NewNotificationsCmd(flags *Flags, a *app.App) *NotificationsCmd {
	return &NotificationsCmd{flags: flags, app: a}
}

// Register adds the notifications command to the application
func (cmd *NotificationsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:    "notifications",
		Aliases: []string{"notif"},
		Usage:   "Inspect the notification history",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "List past notifications, newest first",
				UsageText: "unitdesk notifications ls [--json] [--limit N]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON",
						Destination: &cmd.jsonOutput,
					},
					&cli.IntFlag{
						Name:        "limit",
						Aliases:     []string{"n"},
						Usage:       "maximum entries to show (0 shows all)",
						Destination: &cmd.limit,
					},
				},
				Action: cmd.runList,
			},
			{
				Name:   "clear",
				Usage:  "Delete the notification history",
				Action: cmd.runClear,
			},
		},
	})

	return app
}

func (cmd *NotificationsCmd) runList(ctx context.Context, c *cli.Command) error {
	if cmd.app.History == nil {
		return errHistoryDisabled
	}

	records, err := cmd.app.History.List(ctx)
	if err != nil {
		return fmt.Errorf("list notifications: %w", err)
	}
	if cmd.limit > 0 && len(records) > cmd.limit {
		records = records[:cmd.limit]
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteWith(out, c.Root().ErrWriter, records)
	}

	if len(records) == 0 {
		printer.Ctx(ctx).Infof("No notifications recorded")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TIME\tKIND\tTITLE\tMESSAGE")
	for _, r := range records {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.CreatedAt.Format("2006-01-02 15:04:05"), r.Kind, r.Title, r.Message)
	}
	return w.Flush()
}

func (cmd *NotificationsCmd) runClear(ctx context.Context, _ *cli.Command) error {
	if cmd.app.History == nil {
		return errHistoryDisabled
	}

	n, err := cmd.app.History.Count(ctx)
	if err != nil {
		return fmt.Errorf("count notifications: %w", err)
	}
	if err := cmd.app.History.Clear(ctx); err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}

	printer.Ctx(ctx).Successf("Cleared %d notification(s)", n)
	return nil
}
