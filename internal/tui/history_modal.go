package tui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/unitdesk/internal/core/notify"
	"github.com/colonyops/unitdesk/internal/core/styles"
)

const (
	historyModalWidthPct  = 65
	historyModalMinWidth  = 60
	historyModalMaxHeight = 30
	historyModalMargin    = 4
	historyModalChrome    = 8 // border + padding + title + divider + help
)

// HistoryModal displays a scrollable history of past notifications.
type HistoryModal struct {
	store    notify.Store
	viewport viewport.Model
	count    int
}

// NewHistoryModal creates a modal showing the notification history kept
// by store. A nil store shows an empty history.
func NewHistoryModal(store notify.Store, width, height int) *HistoryModal {
	if width <= 0 || height <= 0 {
		width, height = 80, 24
	}
	modalWidth := calcHistoryModalWidth(width)
	modalHeight := min(height-historyModalMargin, historyModalMaxHeight)
	contentHeight := max(modalHeight-historyModalChrome, 1)

	vp := viewport.New(
		viewport.WithWidth(modalWidth-6),
		viewport.WithHeight(contentHeight),
	)

	m := &HistoryModal{store: store, viewport: vp}
	m.refreshContent()
	return m
}

// Len returns the number of records shown.
func (m *HistoryModal) Len() int { return m.count }

func (m *HistoryModal) refreshContent() {
	m.count = 0
	if m.store == nil {
		m.viewport.SetContent(styles.TextMutedStyle.Render("No notifications"))
		return
	}

	history, err := m.store.List(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("failed to load notification history")
		m.viewport.SetContent(styles.TextErrorStyle.Render(fmt.Sprintf("failed to load notifications: %v", err)))
		return
	}

	if len(history) == 0 {
		m.viewport.SetContent(styles.TextMutedStyle.Render("No notifications"))
		return
	}

	m.count = len(history)
	lines := make([]string, len(history))
	for i, r := range history {
		lines[i] = formatRecord(r)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func formatRecord(r notify.Record) string {
	ts := styles.TextMutedStyle.Render(r.CreatedAt.Format("15:04:05"))

	var icon string
	var msgStyle lipgloss.Style
	switch r.Kind {
	case notify.KindError:
		icon = styles.IconNotifyError
		msgStyle = styles.TextErrorStyle
	case notify.KindWarning:
		icon = styles.IconNotifyWarning
		msgStyle = styles.TextWarningStyle
	case notify.KindSuccess:
		icon = styles.IconNotifySuccess
		msgStyle = styles.TextSuccessStyle
	default:
		icon = styles.IconNotifyInfo
		msgStyle = styles.TextPrimaryStyle
	}

	msg := r.Message
	if r.Title != "" {
		msg = r.Title + ": " + msg
	}
	return fmt.Sprintf("%s %s %s", ts, icon, msgStyle.Render(msg))
}

// ScrollUp scrolls the viewport up.
func (m *HistoryModal) ScrollUp() {
	m.viewport.ScrollUp(1)
}

// ScrollDown scrolls the viewport down.
func (m *HistoryModal) ScrollDown() {
	m.viewport.ScrollDown(1)
}

// Clear deletes the stored history and refreshes the view.
func (m *HistoryModal) Clear() error {
	if m.store == nil {
		return nil
	}
	if err := m.store.Clear(context.Background()); err != nil {
		return err
	}
	m.refreshContent()
	return nil
}

// Overlay renders the modal centered over the background.
func (m *HistoryModal) Overlay(background string, width, height int) string {
	modalWidth := calcHistoryModalWidth(width)

	scrollInfo := ""
	if m.viewport.TotalLineCount() > m.viewport.VisibleLineCount() {
		scrollInfo = styles.TextMutedStyle.Render(
			fmt.Sprintf(" (%.0f%%)", m.viewport.ScrollPercent()*100),
		)
	}

	divider := styles.DividerStyle.Render(strings.Repeat("─", max(modalWidth-6, 1)))
	modalContent := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(styles.IconBell+" Notifications"+scrollInfo),
		divider,
		m.viewport.View(),
		styles.ModalHelpStyle.Render("[up/down] scroll  [ctrl+l] clear all  [esc] close"),
	)

	modal := styles.ModalStyle.Width(modalWidth).Render(modalContent)
	return overlayCenter(background, modal, width, height)
}

func calcHistoryModalWidth(termWidth int) int {
	available := max(termWidth-historyModalMargin, 1)
	target := termWidth * historyModalWidthPct / 100
	return min(max(target, historyModalMinWidth), available)
}

// overlayCenter composites modal centered over background.
func overlayCenter(background, modal string, width, height int) string {
	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)

	modalW := lipgloss.Width(modal)
	modalH := lipgloss.Height(modal)
	modalLayer.X(max((width-modalW)/2, 0)).Y(max((height-modalH)/2, 0)).Z(1)

	compositor := lipgloss.NewCompositor(bgLayer, modalLayer)
	return compositor.Render()
}
