package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/unitdesk/internal/core/businessunit"
	"github.com/colonyops/unitdesk/internal/server"
	"github.com/colonyops/unitdesk/internal/store/jsonfile"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	store := jsonfile.NewUnitStore(filepath.Join(t.TempDir(), "units.json"), 0)
	api := server.New(businessunit.NewService(store, zerolog.Nop()), zerolog.Nop())

	ts := httptest.NewServer(api)
	t.Cleanup(ts.Close)

	c, err := New(ts.URL+"/", 5*time.Second)
	require.NoError(t, err)
	return c
}

func validUnit() businessunit.Unit {
	return businessunit.Unit{
		Name:            "TechnoFuture Innovations",
		RFCEmitter:      "TEFI980523KL9",
		EmitterName:     "TechnoFuture Innovations S.A.P.I.",
		DefaultCurrency: businessunit.CurrencyUSD,
		Series:          "TF",
	}
}

func TestNew_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := New("ftp://example.com", 0)
	require.Error(t, err)

	_, err = New("://nope", 0)
	require.Error(t, err)
}

func TestClient_CreateGetUpdateList(t *testing.T) {
	t.Parallel()

	c := newTestClient(t)
	ctx := context.Background()

	created, err := c.Create(ctx, validUnit())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, businessunit.CurrencyUSD, created.DefaultCurrency)

	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)

	got.Series = "TX"
	updated, err := c.Update(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "TX", updated.Series)

	units, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "TX", units[0].Series)
}

func TestClient_NotFound(t *testing.T) {
	t.Parallel()

	_, err := newTestClient(t).Get(context.Background(), "unit-missing")
	require.ErrorIs(t, err, businessunit.ErrNotFound)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestClient_ValidationErrors(t *testing.T) {
	t.Parallel()

	u := validUnit()
	u.RFCEmitter = "nope"
	u.Series = ""

	_, err := newTestClient(t).Create(context.Background(), u)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	fields := businessunit.FieldErrorMap(err)
	assert.Equal(t, "enter a valid RFC", fields["rfcEmitter"])
	assert.Equal(t, "invoice series is required", fields["series"])
}

func TestClient_ServerError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(ts.Close)

	c, err := New(ts.URL, time.Second)
	require.NoError(t, err)

	_, err = c.List(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "api: 502 Bad Gateway", apiErr.Error())
	assert.False(t, errors.Is(err, businessunit.ErrNotFound))
}

func TestClient_ContextCancelled(t *testing.T) {
	t.Parallel()

	c := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.List(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
