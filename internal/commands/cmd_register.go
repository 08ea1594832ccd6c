package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/unitdesk/internal/app"
	"github.com/colonyops/unitdesk/internal/core/businessunit"
	"github.com/colonyops/unitdesk/internal/core/notify"
	"github.com/colonyops/unitdesk/internal/core/styles"
	"github.com/colonyops/unitdesk/internal/printer"
	"github.com/colonyops/unitdesk/pkg/iojson"
)

type RegisterCmd struct {
	flags *Flags
	app   *app.App

	// flags
	values map[string]string
	input  iojson.FileReader[businessunit.Unit]
}

// NewRegisterCmd creates a new register command
func NewRegisterCmd(flags *Flags, a *app.App) *RegisterCmd {
	return &RegisterCmd{
		flags:  flags,
		app:    a,
		values: map[string]string{},
	}
}

func (cmd *RegisterCmd) valueFlag(name, field, usage string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:  name,
		Usage: usage,
		Action: func(_ context.Context, _ *cli.Command, v string) error {
			cmd.values[field] = v
			return nil
		},
	}
}

// Register adds the register command to the application
func (cmd *RegisterCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "register",
		Aliases:   []string{"new"},
		Usage:     "Register a business unit",
		UsageText: "unitdesk register [--name NAME --rfc RFC ...] | [-f unit.json]",
		Description: `Registers a new business unit in the configured store.

With --name the unit is built from flags. With -f, or when JSON is piped on
stdin, the unit is decoded from JSON. Otherwise an interactive form is shown.`,
		Flags: []cli.Flag{
			cmd.valueFlag("name", businessunit.FieldName, "company name"),
			cmd.valueFlag("rfc", businessunit.FieldRFCEmitter, "RFC of the invoice emitter"),
			cmd.valueFlag("emitter-name", businessunit.FieldEmitterName, "legal name of the emitter"),
			cmd.valueFlag("currency", businessunit.FieldDefaultCurrency, "default currency (MXN, USD, EUR)"),
			cmd.valueFlag("series", businessunit.FieldSeries, "invoice series"),
			cmd.valueFlag("description", businessunit.FieldDescription, "free text description"),
			cmd.input.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RegisterCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	unit, err := cmd.readUnit(c)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	svc, err := cmd.app.OpenUnits(ctx, cmd.app.Config.Storage.Backend)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	center := notify.MustFromContext(ctx)

	saved, err := svc.Create(ctx, unit)
	if err != nil {
		center.Error("Error saving the business unit: "+err.Error(), notify.Options{Title: "Register"})
		p.Errorf("Business unit was not saved")
		if !p.FieldErrors(err) {
			p.Printf("  %s", err.Error())
		}
		return cli.Exit("", 1)
	}

	center.Success("Business unit saved successfully", notify.Options{Title: "Saved"})
	p.Success("Business unit saved", saved.ID)
	return nil
}

func (cmd *RegisterCmd) readUnit(c *cli.Command) (businessunit.Unit, error) {
	if cmd.values[businessunit.FieldName] != "" {
		return businessunit.FromValues(cmd.values), nil
	}

	cmd.input.Stdin = c.Root().Reader
	if cmd.input.IsSet() || !stdinIsTerminal(c) {
		return cmd.input.Read()
	}

	return cmd.runForm(c)
}

func stdinIsTerminal(c *cli.Command) bool {
	f, ok := c.Root().Reader.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func (cmd *RegisterCmd) runForm(c *cli.Command) (businessunit.Unit, error) {
	_, _ = fmt.Fprintln(c.Root().Writer, styles.CommandHeaderStyle.Render(styles.IconBuilding+" Register business unit"))
	_, _ = fmt.Fprintln(c.Root().Writer)

	var (
		name, rfc, emitter, series, description string
		currency                                = string(businessunit.DefaultCurrency)
	)

	options := make([]huh.Option[string], len(businessunit.Currencies))
	for i, opt := range businessunit.Currencies {
		options[i] = huh.NewOption(opt.Label, string(opt.Value))
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Company name").
				Validate(fieldValidator(businessunit.FieldName)).
				Value(&name),
			huh.NewInput().
				Title("Emitter RFC").
				Description("RFC of the entity that issues the invoices").
				Validate(fieldValidator(businessunit.FieldRFCEmitter)).
				Value(&rfc),
			huh.NewInput().
				Title("Legal emitter name").
				Validate(fieldValidator(businessunit.FieldEmitterName)).
				Value(&emitter),
			huh.NewSelect[string]().
				Title("Default currency").
				Options(options...).
				Value(&currency),
			huh.NewInput().
				Title("Invoice series").
				Validate(fieldValidator(businessunit.FieldSeries)).
				Value(&series),
			huh.NewText().
				Title("Description").
				Validate(fieldValidator(businessunit.FieldDescription)).
				Value(&description),
		),
	).WithTheme(huh.ThemeCharm()).Run()
	if err != nil {
		return businessunit.Unit{}, err
	}

	return businessunit.FromValues(map[string]string{
		businessunit.FieldName:            name,
		businessunit.FieldRFCEmitter:      rfc,
		businessunit.FieldEmitterName:     emitter,
		businessunit.FieldDefaultCurrency: currency,
		businessunit.FieldSeries:          series,
		businessunit.FieldDescription:     description,
	}), nil
}

func fieldValidator(field string) func(string) error {
	return func(s string) error {
		return businessunit.ValidateField(field, s)
	}
}
