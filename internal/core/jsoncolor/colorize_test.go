package jsoncolor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/unitdesk/pkg/tuitest"
)

func TestColorize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "object",
			input: `{"name":"Acme","count":42,"active":true,"meta":null}`,
			want:  "{\n  \"name\": \"Acme\",\n  \"count\": 42,\n  \"active\": true,\n  \"meta\": null\n}",
		},
		{
			name:  "nested array",
			input: `[{"series":"AC"},{"series":"TF"}]`,
			want:  "[\n  {\n    \"series\": \"AC\"\n  },\n  {\n    \"series\": \"TF\"\n  }\n]",
		},
		{
			name:  "escaped quote",
			input: `{"desc":"say \"hi\""}`,
			want:  "{\n  \"desc\": \"say \\\"hi\\\"\"\n}",
		},
		{
			name:  "negative float",
			input: `{"n":-1.5e3}`,
			want:  "{\n  \"n\": -1.5e3\n}",
		},
		{
			name:  "empty object",
			input: `{}`,
			want:  "{}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tuitest.StripANSI(Colorize([]byte(tt.input))))
		})
	}
}

func TestColorize_InvalidJSON(t *testing.T) {
	assert.Equal(t, "not json at all", Colorize([]byte("not json at all")))
}
