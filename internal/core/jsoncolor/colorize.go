// Package jsoncolor renders JSON with theme-aware syntax highlighting for
// terminal output.
package jsoncolor

import (
	"bytes"
	"encoding/json"
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/unitdesk/internal/core/styles"
)

var literals = []string{"true", "false", "null"}

// Colorize pretty-prints data and colors keys, strings, numbers and
// literals with the active theme. Invalid JSON is returned unchanged.
func Colorize(data []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}
	raw := buf.String()

	var out strings.Builder
	for i := 0; i < len(raw); {
		ch := raw[i]
		switch {
		case ch == '"':
			end := stringEnd(raw, i)
			str := raw[i : end+1]
			if isKey(raw[end+1:]) {
				out.WriteString(styles.TextPrimaryStyle.Render(str))
			} else {
				out.WriteString(styles.TextSuccessStyle.Render(str))
			}
			i = end + 1

		case ch == ':':
			out.WriteString(styles.TextMutedStyle.Render(":"))
			i++

		case ch == '-' || (ch >= '0' && ch <= '9'):
			end := numberEnd(raw, i)
			out.WriteString(styles.TextWarningStyle.Render(raw[i:end]))
			i = end

		case strings.ContainsRune("{}[]", rune(ch)):
			out.WriteString(styles.TextForegroundStyle.Render(string(ch)))
			i++

		default:
			if lit, ok := literalAt(raw, i); ok {
				out.WriteString(literalStyle(lit).Render(lit))
				i += len(lit)
				continue
			}
			out.WriteByte(ch)
			i++
		}
	}

	return out.String()
}

func literalStyle(lit string) lipgloss.Style {
	if lit == "null" {
		return styles.TextMutedStyle
	}
	return styles.StatusStyle
}

func literalAt(s string, pos int) (string, bool) {
	for _, lit := range literals {
		if strings.HasPrefix(s[pos:], lit) {
			return lit, true
		}
	}
	return "", false
}

// isKey reports whether the text following a string starts with a colon.
func isKey(rest string) bool {
	rest = strings.TrimLeft(rest, " \t")
	return rest != "" && rest[0] == ':'
}

func numberEnd(s string, pos int) int {
	end := pos + 1
	for end < len(s) && strings.IndexByte("0123456789.eE+-", s[end]) >= 0 {
		end++
	}
	return end
}

// stringEnd returns the index of the closing quote of the string that
// starts at pos.
func stringEnd(s string, pos int) int {
	for i := pos + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return len(s) - 1
}
