package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/unitdesk/internal/core/styles"
	"github.com/colonyops/unitdesk/internal/tui/components"
)

// View renders the TUI.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	content := m.renderMain()
	switch m.modal {
	case modalHelp:
		content = components.NewHelpDialog("Keyboard shortcuts", m.keys.helpSections()).Overlay(content, w, h)
	case modalHistory:
		content = m.history.Overlay(content, w, h)
	case modalConfirmClear:
		content = overlayCenter(m.history.Overlay(content, w, h), m.confirm.View(), w, h)
	}
	content = m.toasts.Overlay(content, w, h)

	v := tea.NewView(content)
	v.AltScreen = true
	return v
}

func (m Model) renderMain() string {
	parts := []string{
		m.renderHeader(),
		styles.TextMutedStyle.Render("Home / ") + styles.TextPrimaryStyle.Render("Client administration"),
		"",
	}

	if m.state == stateLoading {
		parts = append(parts, m.spinner.View()+" Loading business units...")
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	parts = append(parts,
		styles.PanelStyle.Render(m.form.View()),
		"",
		m.renderButton(),
		"",
		styles.HelpStyle.Render(m.help.View(m.keys)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	title := styles.HeaderStyle.Render(styles.IconBuilding + " Business unit")
	if m.units == 0 {
		return title
	}
	badge := styles.StatusStyle.Render(fmt.Sprintf("Units: %d", m.units))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", badge)
}

func (m Model) renderButton() string {
	if m.state == stateSaving {
		return styles.ButtonDisabled.Render(m.spinner.View() + " Processing...")
	}
	return styles.ButtonStyle.Render("Save information")
}
