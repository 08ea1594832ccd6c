// Package tmpl renders text/template documents used for reports.
package tmpl

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// mdEscape escapes characters that break markdown table cells.
func mdEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func stringOrDefault(def, s string) string {
	if s != "" {
		return s
	}
	return def
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

var funcs = template.FuncMap{
	"md":      mdEscape,
	"join":    strings.Join,
	"upper":   strings.ToUpper,
	"default": stringOrDefault,
	"date":    formatDate,
}

// Render executes a Go template string with the given data.
// Returns an error if the template is invalid or references undefined keys.
//
// Available template functions:
//   - md: Escape a string for use inside a markdown table cell
//   - join: Join string slice with separator (e.g., join .Args " ")
//   - upper: Upper-case a string
//   - default: Fall back to a value when the piped string is empty
//   - date: Format a time as "2006-01-02 15:04", or "-" when zero
func Render(tmpl string, data any) (string, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
