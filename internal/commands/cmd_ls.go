package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
		"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/unitdesk/internal/app"
	"github.com/colonyops/unitdesk/internal/core/businessunit"
	"github.com/colonyops/unitdesk/internal/core/config"
	"github.com/colonyops/unitdesk/internal/core/jsoncolor"
	"github.com/colonyops/unitdesk/internal/core/styles"
	"github.com/colonyops/unitdesk/internal/printer"
	"github.com/colonyops/unitdesk/internal/store/jsonfile"
	"github.com/colonyops/unitdesk/pkg/iojson"
	"github.com/colonyops/unitdesk/pkg/tmpl"
)

const defaultWrapWidth = 100

type LsCmd struct {
	flags *Flags
	app   *app.App

	// flags
	jsonOutput bool
	markdown   bool
	watch      bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, a *app.App) *LsCmd {
	return &LsCmd{flags: flags, app: a}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List business units",
		UsageText: "unitdesk ls [--json | --markdown] [--watch]",
		Description: `Displays a table of all registered business units.

Use --json for machine readable output or --markdown for a rendered report.
With --watch the listing is reprinted whenever the local store changes.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "markdown",
				Aliases:     []string{"md"},
				Usage:       "render as a markdown report",
				Destination: &cmd.markdown,
			},
			&cli.BoolFlag{
				Name:        "watch",
				Aliases:     []string{"w"},
				Usage:       "reprint when the local store changes",
				Destination: &cmd.watch,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	backend := cmd.app.Config.Storage.Backend
	if cmd.watch && backend != config.BackendLocal {
		return fmt.Errorf("--watch requires the local backend, configured backend is %q", backend)
	}

	svc, err := cmd.app.OpenUnits(ctx, backend)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	out := c.Root().Writer
	if err := cmd.print(ctx, out, svc); err != nil {
		return err
	}
	if !cmd.watch {
		return nil
	}

	unitsFile := cmd.app.Config.UnitsFile()
	watcher, err := jsonfile.NewWatcher(filepath.Dir(unitsFile))
	if err != nil {
		return fmt.Errorf("watch store: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for range watcher.Watch(ctx, filepath.Base(unitsFile)) {
		log.Debug().Str("file", unitsFile).Msg("store changed")
		_, _ = fmt.Fprintln(out)
		if err := cmd.print(ctx, out, svc); err != nil {
			return err
		}
	}
	return nil
}

func (cmd *LsCmd) print(ctx context.Context, out io.Writer, svc *businessunit.Service) error {
	units, err := svc.List(ctx)
	if err != nil {
		return fmt.Errorf("list business units: %w", err)
	}

	switch {
	case cmd.jsonOutput:
		return writeUnitsJSON(out, units)
	case cmd.markdown:
		return writeUnitsMarkdown(out, units, terminalWidth(out))
	}

	if len(units) == 0 {
		printer.Ctx(ctx).Infof("No business units found")
		return nil
	}
	return writeUnitsTable(out, units)
}

func writeUnitsTable(out io.Writer, units []businessunit.Unit) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tRFC\tCURRENCY\tSERIES")
	for _, u := range units {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.RFCEmitter, u.DefaultCurrency, u.Series)
	}
	return w.Flush()
}

// writeUnitsJSON writes units as indented JSON, colorized when out is a
// terminal.
func writeUnitsJSON(out io.Writer, units []businessunit.Unit) error {
	if !isTerminal(out) {
		return iojson.WriteWith(out, os.Stderr, units)
	}

	data, err := json.Marshal(units)
	if err != nil {
		return fmt.Errorf("encode units: %w", err)
	}
	_, err = fmt.Fprintln(out, jsoncolor.Colorize(data))
	return err
}

func writeUnitsMarkdown(out io.Writer, units []businessunit.Unit, width int) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	md, err := unitsMarkdown(units)
	if err != nil {
		return err
	}

	rendered, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(out, rendered)
	return err
}

const unitsReport = `# Business units
{{ if not .Units }}
_No business units registered._
{{ else }}
{{ len .Units }} registered.

| Name | RFC | Emitter | Currency | Series | Created |
|------|-----|---------|----------|--------|---------|
{{ range .Units }}| {{ md .Name }} | ` + "`{{ .RFCEmitter }}`" + ` | {{ md .EmitterName }} | {{ .DefaultCurrency }} | {{ md .Series }} | {{ date .CreatedAt }} |
{{ end }}{{ range .Units }}{{ if .Description }}
## {{ .Name }}

{{ .Description }}
{{ end }}{{ end }}{{ end }}`

func unitsMarkdown(units []businessunit.Unit) (string, error) {
	return tmpl.Render(unitsReport, map[string]any{"Units": units})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWrapWidth
}
