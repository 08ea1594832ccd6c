package form

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/unitdesk/internal/core/styles"
)

// Field is the interface implemented by all form field types.
type Field interface {
	Update(msg tea.Msg) (Field, tea.Cmd)
	View() string
	Focus() tea.Cmd
	Blur()
	Focused() bool
	Value() string
	SetValue(v string)
	Label() string
	SetError(msg string) // empty clears
}

// frame renders a field's title, body, and error line inside the left
// border that reflects its focus and error state.
func frame(label, body, errMsg string, focused bool) string {
	titleStyle := styles.TextMutedStyle
	if focused {
		titleStyle = styles.FormTitleStyle
	}

	parts := []string{titleStyle.Render(label), body}
	if errMsg != "" {
		parts = append(parts, styles.FormErrorStyle.Render(errMsg))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	borderStyle := styles.FormFieldStyle
	switch {
	case errMsg != "":
		borderStyle = styles.FormFieldErrorStyle
	case focused:
		borderStyle = styles.FormFieldFocusedStyle
	}

	return borderStyle.Render(content)
}
