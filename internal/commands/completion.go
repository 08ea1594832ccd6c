package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/unitdesk/internal/app"
)

// UnitIDCompleter returns a ShellCompleteFunc that suggests stored business
// unit IDs as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func UnitIDCompleter(a *app.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		svc, err := a.OpenUnits(ctx, a.Config.Storage.Backend)
		if err != nil {
			return
		}
		units, err := svc.List(ctx)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, u := range units {
			_, _ = fmt.Fprintf(w, "%s:%s\n", u.ID, u.Name)
		}
	}
}
