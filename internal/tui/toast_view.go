package tui

import (
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/unitdesk/internal/core/notify"
	"github.com/colonyops/unitdesk/internal/core/styles"
)

const toastWidth = 50

// ToastView renders the active notifications of a center and composites
// them as an overlay.
type ToastView struct {
	center     *notify.Center
	maxVisible int
	actionKey  string
}

// NewToastView creates a view over center showing at most maxVisible
// toasts. A non-positive maxVisible shows all of them. actionKey is the
// shortcut printed next to action labels.
func NewToastView(center *notify.Center, maxVisible int, actionKey string) *ToastView {
	return &ToastView{center: center, maxVisible: maxVisible, actionKey: actionKey}
}

// Visible returns the notifications that fit on screen: the newest
// maxVisible, oldest first.
func (v *ToastView) Visible() []notify.Notification {
	active := v.center.Active()
	if v.maxVisible > 0 && len(active) > v.maxVisible {
		active = active[len(active)-v.maxVisible:]
	}
	return active
}

// View renders the toast stack as a single string with toasts stacked
// vertically (oldest at top, newest at bottom).
func (v *ToastView) View() string {
	toasts := v.Visible()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, n := range toasts {
		rendered = append(rendered, v.renderToast(n))
	}

	return strings.Join(rendered, "\n")
}

func (v *ToastView) renderToast(n notify.Notification) string {
	var icon string
	var style lipgloss.Style

	switch n.Kind {
	case notify.KindError:
		icon = styles.IconNotifyError
		style = styles.ToastErrorStyle
	case notify.KindWarning:
		icon = styles.IconNotifyWarning
		style = styles.ToastWarningStyle
	case notify.KindSuccess:
		icon = styles.IconNotifySuccess
		style = styles.ToastSuccessStyle
	default:
		icon = styles.IconNotifyInfo
		style = styles.ToastInfoStyle
	}

	lines := make([]string, 0, 3)
	if n.Title != "" {
		lines = append(lines, icon+" "+styles.ToastTitleStyle.Render(n.Title), n.Message)
	} else {
		lines = append(lines, icon+" "+n.Message)
	}
	if n.HasAction() {
		label := n.ActionLabel
		if v.actionKey != "" {
			label += " (" + v.actionKey + ")"
		}
		lines = append(lines, styles.ToastActionStyle.Render(label))
	}

	return style.Width(toastWidth).Render(strings.Join(lines, "\n"))
}

// Overlay composites the toast stack over background in the lower-right corner.
func (v *ToastView) Overlay(background string, width, height int) string {
	toastContent := v.View()
	if toastContent == "" {
		return background
	}

	bgLayer := lipgloss.NewLayer(background)
	toastLayer := lipgloss.NewLayer(toastContent)

	toastW := lipgloss.Width(toastContent)
	toastH := lipgloss.Height(toastContent)

	rightX := max(width-toastW-1, 0)
	bottomY := max(height-toastH, 0)

	toastLayer.X(rightX).Y(bottomY).Z(2)

	compositor := lipgloss.NewCompositor(bgLayer, toastLayer)
	return compositor.Render()
}
