package tui

import (
	"testing"

	"charm.land/bubbles/v2/key"
	"github.com/stretchr/testify/assert"

	"github.com/colonyops/unitdesk/internal/core/config"
	"github.com/colonyops/unitdesk/pkg/tuitest"
)

func TestNewKeyMap_uses_configured_toast_keys(t *testing.T) {
	km := NewKeyMap(config.KeysConfig{Dismiss: "ctrl+w", Action: "ctrl+o", DismissAll: "ctrl+e"})

	assert.True(t, key.Matches(tuitest.Ctrl('w'), km.Dismiss))
	assert.True(t, key.Matches(tuitest.Ctrl('o'), km.Action))
	assert.True(t, key.Matches(tuitest.Ctrl('e'), km.DismissAll))
	assert.False(t, key.Matches(tuitest.Ctrl('x'), km.Dismiss))
	assert.Equal(t, "ctrl+w", km.Dismiss.Help().Key)
}

func TestKeyMap_helpSections(t *testing.T) {
	km := NewKeyMap(config.DefaultConfig().TUI.Keys)

	sections := km.helpSections()
	assert.Len(t, sections, len(km.FullHelp()))
	for _, s := range sections {
		assert.NotEmpty(t, s.Title)
		assert.NotEmpty(t, s.Bindings)
	}
}
