package tuitest

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripANSI(t *testing.T) {
	in := "\x1b[1mSaved\x1b[0m   \nline two  \n\n"
	assert.Equal(t, "Saved\nline two", StripANSI(in))
}

func TestKeyHelpers(t *testing.T) {
	assert.Equal(t, "a", KeyPress('a').String())
	assert.Equal(t, "ctrl+x", Ctrl('x').String())
	assert.Equal(t, "tab", KeyTab().String())
	assert.Equal(t, "shift+tab", KeyShiftTab().String())
	assert.Equal(t, "enter", KeyEnter().String())

	msgs := Type("TF")
	require.Len(t, msgs, 2)
	assert.Equal(t, "T", msgs[0].(tea.KeyPressMsg).String())
}
