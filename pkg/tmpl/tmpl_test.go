package tmpl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    string
		data    any
		want    string
		wantErr bool
	}{
		{
			name: "simple substitution",
			tmpl: "hello {{ .Name }}",
			data: map[string]string{"Name": "world"},
			want: "hello world",
		},
		{
			name: "struct data",
			tmpl: "{{ .Name }} ({{ .Series }})",
			data: struct {
				Name   string
				Series string
			}{Name: "Acme", Series: "AC"},
			want: "Acme (AC)",
		},
		{
			name: "no variables",
			tmpl: "static string",
			data: nil,
			want: "static string",
		},
		{
			name: "markdown escaping",
			tmpl: "| {{ md .Name }} |",
			data: map[string]string{"Name": "A|B\nC"},
			want: `| A\|B C |`,
		},
		{
			name: "join and upper",
			tmpl: `{{ join .Items ", " | upper }}`,
			data: map[string][]string{"Items": {"mxn", "usd"}},
			want: "MXN, USD",
		},
		{
			name: "default",
			tmpl: `{{ .Desc | default "n/a" }}`,
			data: map[string]string{"Desc": ""},
			want: "n/a",
		},
		{
			name: "date",
			tmpl: `{{ date .At }} {{ date .Zero }}`,
			data: map[string]time.Time{
				"At":   time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC),
				"Zero": {},
			},
			want: "2024-03-09 14:05 -",
		},
		{
			name:    "missing key errors",
			tmpl:    "{{ .Missing }}",
			data:    map[string]string{},
			wantErr: true,
		},
		{
			name:    "invalid template",
			tmpl:    "{{ .Name",
			data:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.tmpl, tt.data)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
