package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/unitdesk/internal/app"
	"github.com/colonyops/unitdesk/internal/core/businessunit"
	"github.com/colonyops/unitdesk/internal/core/config"
	"github.com/colonyops/unitdesk/internal/core/notify"
	"github.com/colonyops/unitdesk/internal/printer"
	"github.com/colonyops/unitdesk/pkg/tuitest"
)

type testEnv struct {
	app   *app.App
	flags *Flags
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Storage.Latency = 0

	a := app.New(&cfg)
	t.Cleanup(func() { _ = a.Close() })

	return &testEnv{app: a, flags: &Flags{Config: &cfg}}
}

// run executes args against a fresh root command and returns stdout and
// the printer output.
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, status bytes.Buffer

	root := &cli.Command{
		Name:           "unitdesk",
		Writer:         &out,
		ErrWriter:      &status,
		Reader:         strings.NewReader(stdin),
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	root = NewRegisterCmd(e.flags, e.app).Register(root)
	root = NewLsCmd(e.flags, e.app).Register(root)
	root = NewShowCmd(e.flags, e.app).Register(root)
	root = NewNotificationsCmd(e.flags, e.app).Register(root)
	root = NewConfigValidateCmd(e.flags).Register(root)

	ctx := notify.WithCenter(context.Background(), e.app.Center)
	ctx = printer.NewContext(ctx, printer.New(&status))

	err := root.Run(ctx, append([]string{"unitdesk"}, args...))
	return out.String(), tuitest.StripANSI(status.String()), err
}

var registerArgs = []string{
	"register",
	"--name", "Acme Corp",
	"--rfc", "ACM010101AB1",
	"--emitter-name", "Acme SA de CV",
	"--series", "AC",
}

func TestRegister_FromFlags(t *testing.T) {
	env := newTestEnv(t)

	_, status, err := env.run(t, "", registerArgs...)
	require.NoError(t, err)
	assert.Contains(t, status, "Business unit saved")

	units, err := env.app.Units.List(context.Background())
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "Acme Corp", units[0].Name)
	assert.Equal(t, businessunit.DefaultCurrency, units[0].DefaultCurrency)

	records, err := env.app.History.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, notify.KindSuccess, records[0].Kind)
}

func TestRegister_InvalidFields(t *testing.T) {
	env := newTestEnv(t)

	_, status, err := env.run(t, "", "register", "--name", "Ac", "--rfc", "nope")
	require.Error(t, err)
	assert.Contains(t, status, "Business unit was not saved")
	assert.Contains(t, status, businessunit.FieldName+":")
	assert.Contains(t, status, businessunit.FieldRFCEmitter+":")

	records, err := env.app.History.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, notify.KindError, records[0].Kind)
}

func TestRegister_FromStdin(t *testing.T) {
	env := newTestEnv(t)

	input := `{"name":"Globex","rfcEmitter":"GLO990101XY2","emitterName":"Globex SA","defaultCurrency":"USD","series":"GX"}`
	_, _, err := env.run(t, input, "register")
	require.NoError(t, err)

	units, err := env.app.Units.List(context.Background())
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, businessunit.CurrencyUSD, units[0].DefaultCurrency)
}

func TestLs_Table(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "", registerArgs...)
	require.NoError(t, err)

	out, _, err := env.run(t, "", "ls")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "Acme Corp")
	assert.Contains(t, lines[1], "ACM010101AB1")
}

func TestLs_Empty(t *testing.T) {
	env := newTestEnv(t)

	out, status, err := env.run(t, "", "ls")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, status, "No business units found")
}

func TestLs_JSON(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "", registerArgs...)
	require.NoError(t, err)

	out, _, err := env.run(t, "", "ls", "--json")
	require.NoError(t, err)

	var units []businessunit.Unit
	require.NoError(t, json.Unmarshal([]byte(out), &units))
	require.Len(t, units, 1)
	assert.Equal(t, "Acme Corp", units[0].Name)
}

func TestLs_Markdown(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "", registerArgs...)
	require.NoError(t, err)

	out, _, err := env.run(t, "", "ls", "--markdown")
	require.NoError(t, err)

	plain := tuitest.StripANSI(out)
	assert.Contains(t, plain, "Business units")
	assert.Contains(t, plain, "Acme Corp")
}

func TestLs_WatchRequiresLocalBackend(t *testing.T) {
	env := newTestEnv(t)
	env.app.Config.Storage.Backend = config.BackendREST

	_, _, err := env.run(t, "", "ls", "--watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "local backend")
}

func TestUnitsMarkdown(t *testing.T) {
	md, err := unitsMarkdown([]businessunit.Unit{{
		Name:            "A|B",
		RFCEmitter:      "ACM010101AB1",
		DefaultCurrency: businessunit.CurrencyEUR,
		Description:     "Regional office",
	}})
	require.NoError(t, err)
	assert.Contains(t, md, `| A\|B | `+"`ACM010101AB1`")
	assert.Contains(t, md, "1 registered.")
	assert.Contains(t, md, "## A|B")
	assert.Contains(t, md, "Regional office")

	empty, err := unitsMarkdown(nil)
	require.NoError(t, err)
	assert.Contains(t, empty, "No business units registered")
}

func TestShow(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "", registerArgs...)
	require.NoError(t, err)

	units, err := env.app.Units.List(context.Background())
	require.NoError(t, err)
	id := units[0].ID

	out, _, err := env.run(t, "", "show", id+":Acme Corp")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme Corp")
	assert.Contains(t, out, "Acme SA de CV")

	_, _, err = env.run(t, "", "show", "unit-missing")
	require.ErrorIs(t, err, businessunit.ErrNotFound)

	_, _, err = env.run(t, "", "show")
	require.Error(t, err)
}

func TestNotifications_ListAndClear(t *testing.T) {
	env := newTestEnv(t)
	env.app.Center.Info("first", notify.Options{Title: "One"})
	env.app.Center.Warning("second")

	out, _, err := env.run(t, "", "notifications", "ls")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "second")
	assert.Contains(t, lines[2], "One")

	out, _, err = env.run(t, "", "notifications", "ls", "--json", "--limit", "1")
	require.NoError(t, err)
	var records []notify.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "second", records[0].Message)

	_, status, err := env.run(t, "", "notifications", "clear")
	require.NoError(t, err)
	assert.Contains(t, status, "Cleared 2 notification(s)")

	count, err := env.app.History.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotifications_HistoryDisabled(t *testing.T) {
	env := newTestEnv(t)
	env.app.History = nil

	_, _, err := env.run(t, "", "notifications", "ls")
	require.ErrorIs(t, err, errHistoryDisabled)
}

func TestConfigValidate(t *testing.T) {
	env := newTestEnv(t)

	_, status, err := env.run(t, "", "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, status, "Configuration is valid")

	env.flags.Config.Server.Addr = ""
	out, _, err := env.run(t, "", "config", "validate", "--format", "json")
	require.Error(t, err)

	var result validationOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "server.addr")
}
