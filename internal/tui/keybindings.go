package tui

import (
	"charm.land/bubbles/v2/key"

	"github.com/colonyops/unitdesk/internal/core/config"
	"github.com/colonyops/unitdesk/internal/tui/components"
)

// KeyMap holds the application level bindings. Form navigation keys are
// owned by the form dialog and only listed here for the help line.
type KeyMap struct {
	Next       key.Binding
	Prev       key.Binding
	Submit     key.Binding
	Clear      key.Binding
	Dismiss    key.Binding
	Action     key.Binding
	DismissAll key.Binding
	Help       key.Binding
	History    key.Binding
	Quit       key.Binding

	// Modal navigation.
	Close        key.Binding
	ScrollUp     key.Binding
	ScrollDown   key.Binding
	ClearHistory key.Binding
}

// NewKeyMap builds the bindings from the configured toast shortcuts.
func NewKeyMap(keys config.KeysConfig) KeyMap {
	return KeyMap{
		Next:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:       key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		Submit:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Clear:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Dismiss:    key.NewBinding(key.WithKeys(keys.Dismiss), key.WithHelp(keys.Dismiss, "dismiss")),
		Action:     key.NewBinding(key.WithKeys(keys.Action), key.WithHelp(keys.Action, "action")),
		DismissAll: key.NewBinding(key.WithKeys(keys.DismissAll), key.WithHelp(keys.DismissAll, "dismiss all")),
		Help:       key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		History:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "history")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),

		Close:        key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "close")),
		ScrollUp:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		ScrollDown:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		ClearHistory: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear history")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Submit, k.Dismiss, k.Action, k.History, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Submit, k.Clear},
		{k.Dismiss, k.Action, k.DismissAll},
		{k.History, k.ScrollUp, k.ScrollDown, k.ClearHistory, k.Help, k.Quit},
	}
}

// helpSections groups the bindings for the help dialog.
func (k KeyMap) helpSections() []components.HelpDialogSection {
	groups := k.FullHelp()
	titles := []string{"Form", "Notifications", "General"}
	sections := make([]components.HelpDialogSection, len(groups))
	for i, g := range groups {
		sections[i] = components.HelpDialogSection{Title: titles[i], Bindings: g}
	}
	return sections
}
