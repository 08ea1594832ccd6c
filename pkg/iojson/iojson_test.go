package iojson

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name   string `json:"name"`
	Series string `json:"series"`
}

func TestFileReader_Stdin(t *testing.T) {
	fr := &FileReader[payload]{Stdin: strings.NewReader(`{"name":"Acme","series":"TF"}`)}
	assert.False(t, fr.IsSet())

	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, payload{Name: "Acme", Series: "TF"}, got)
}

func TestFileReader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unit.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"Acme"}`), 0o644))

	fr := &FileReader[payload]{fileFlagValue: path}
	assert.True(t, fr.IsSet())

	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
}

func TestFileReader_Errors(t *testing.T) {
	fr := &FileReader[payload]{fileFlagValue: filepath.Join(t.TempDir(), "missing.json")}
	_, err := fr.Read()
	require.ErrorContains(t, err, "open file")

	fr = &FileReader[payload]{Stdin: strings.NewReader(`{"name":`)}
	_, err = fr.Read()
	require.ErrorContains(t, err, "decode JSON")
}

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, payload{Name: "Acme"}))
	assert.JSONEq(t, `{"name":"Acme","series":""}`, out.String())
	assert.Empty(t, errOut.String())

	out.Reset()
	require.NoError(t, WriteWith(&out, &errOut, func() {}))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "json_error")
}

func TestMarshalError(t *testing.T) {
	var got Error
	require.NoError(t, json.Unmarshal([]byte(MarshalError("validation failed", map[string]any{"series": "required"})), &got))
	assert.Equal(t, "validation failed", got.Message)
	assert.Equal(t, "required", got.Data["series"])
}
