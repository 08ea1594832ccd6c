package form

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/unitdesk/internal/core/styles"
)

// filterer is an optional interface for fields that support list filtering.
type filterer interface {
	IsFiltering() bool
}

// ValidateFunc checks the value of the named field.
type ValidateFunc func(name, value string) error

// SuggestFunc returns the autofill value for the named field.
type SuggestFunc func(name string) (string, bool)

// Dialog is a form container that manages focus cycling, submission,
// cancellation, and per-field touched/error state across a set of fields.
type Dialog struct {
	fields       []Field
	names        []string // parallel slice: name of each field
	states       []FieldState
	focusedField int
	submitted    bool
	cancelled    bool
	validate     ValidateFunc
	suggest      SuggestFunc
	Title        string
}

// DialogOption configures a Dialog.
type DialogOption func(*Dialog)

// WithValidator validates fields as they are blurred and on ValidateAll.
func WithValidator(fn ValidateFunc) DialogOption {
	return func(d *Dialog) { d.validate = fn }
}

// WithSuggestions autofills empty fields when focus moves into them.
func WithSuggestions(fn SuggestFunc) DialogOption {
	return func(d *Dialog) { d.suggest = fn }
}

// NewDialog creates a form dialog with the given fields and names. The
// first field is focused automatically, without autofill.
func NewDialog(title string, fields []Field, names []string, opts ...DialogOption) *Dialog {
	d := &Dialog{
		fields: fields,
		names:  names,
		states: make([]FieldState, len(fields)),
		Title:  title,
	}
	for _, opt := range opts {
		opt(d)
	}
	if len(fields) > 0 {
		fields[0].Focus()
	}
	return d
}

// Update handles key input for the dialog, managing focus cycling and submit/cancel.
func (d *Dialog) Update(msg tea.Msg) (*Dialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return d.updateFocusedField(msg)
	}

	switch keyMsg.String() {
	case "tab":
		return d.advanceFocus()
	case "shift+tab":
		return d.retreatFocus()
	case "enter":
		if d.isTextAreaFocused() {
			return d.updateFocusedField(msg)
		}
		return d.advanceFocus()
	case "ctrl+s":
		d.blurCurrent()
		d.submitted = true
		return d, nil
	case "esc":
		if d.isFocusedFieldFiltering() {
			return d.updateFocusedField(msg)
		}
		d.cancelled = true
		return d, nil
	}

	d, cmd := d.updateFocusedField(msg)
	d.revalidateFocused()
	return d, cmd
}

// View renders all fields vertically with spacing and help text.
func (d *Dialog) View() string {
	var parts []string
	for i, field := range d.fields {
		if i > 0 {
			parts = append(parts, "")
		}
		parts = append(parts, field.View())
	}

	help := styles.TextMutedStyle.Render("tab: next  shift+tab: prev  enter: next/submit  ctrl+s: submit")
	parts = append(parts, "", help)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Values returns a map of field names to their current values.
func (d *Dialog) Values() map[string]string {
	result := make(map[string]string, len(d.fields))
	for i, field := range d.fields {
		result[d.names[i]] = field.Value()
	}
	return result
}

// State returns the touched/error state of the named field.
func (d *Dialog) State(name string) FieldState {
	if i := d.indexOf(name); i >= 0 {
		return d.states[i]
	}
	return FieldState{}
}

// ValidateAll touches and validates every field and reports whether all
// of them passed.
func (d *Dialog) ValidateAll() bool {
	valid := true
	for i := range d.fields {
		d.touch(i)
		if d.states[i].Err != "" {
			valid = false
		}
	}
	return valid
}

// SetErrors marks the named fields touched with the given messages, as
// reported by a remote validator. Unknown names are ignored.
func (d *Dialog) SetErrors(errs map[string]string) {
	for name, msg := range errs {
		i := d.indexOf(name)
		if i < 0 {
			continue
		}
		d.states[i] = FieldState{Touched: true, Err: msg}
		d.fields[i].SetError(msg)
	}
}

// Reset replaces every value, clears touched/error state, and focuses the
// first field. Names missing from values are cleared.
func (d *Dialog) Reset(values map[string]string) tea.Cmd {
	for i, field := range d.fields {
		field.Blur()
		field.SetValue(values[d.names[i]])
		field.SetError("")
		d.states[i] = FieldState{}
	}
	d.submitted = false
	d.cancelled = false
	d.focusedField = 0
	if len(d.fields) == 0 {
		return nil
	}
	return d.fields[0].Focus()
}

// Focused returns the name of the focused field.
func (d *Dialog) Focused() string {
	if len(d.fields) == 0 {
		return ""
	}
	return d.names[d.focusedField]
}

// Submitted returns whether the form was submitted.
func (d *Dialog) Submitted() bool { return d.submitted }

// ClearSubmitted acknowledges a submission so the form can be submitted again.
func (d *Dialog) ClearSubmitted() { d.submitted = false }

// Cancelled returns whether the form was cancelled.
func (d *Dialog) Cancelled() bool { return d.cancelled }

func (d *Dialog) advanceFocus() (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 {
		return d, nil
	}

	next := d.focusedField + 1
	if next >= len(d.fields) {
		d.blurCurrent()
		d.submitted = true
		return d, nil
	}

	return d, d.moveFocus(next)
}

func (d *Dialog) retreatFocus() (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 || d.focusedField == 0 {
		return d, nil
	}
	return d, d.moveFocus(d.focusedField - 1)
}

func (d *Dialog) moveFocus(to int) tea.Cmd {
	d.fields[d.focusedField].Blur()
	d.touch(d.focusedField)

	d.focusedField = to
	field := d.fields[to]
	if d.suggest != nil && field.Value() == "" {
		if v, ok := d.suggest(d.names[to]); ok {
			field.SetValue(v)
			d.revalidateFocused()
		}
	}
	return field.Focus()
}

// blurCurrent touches the focused field without moving focus.
func (d *Dialog) blurCurrent() {
	if len(d.fields) > 0 {
		d.touch(d.focusedField)
	}
}

// touch marks field i touched and validates it.
func (d *Dialog) touch(i int) {
	d.states[i].Touched = true
	d.check(i)
}

// revalidateFocused refreshes the error of the focused field once it has
// been touched, so fixing a value clears its message while typing.
func (d *Dialog) revalidateFocused() {
	if len(d.fields) == 0 || !d.states[d.focusedField].Touched {
		return
	}
	d.check(d.focusedField)
}

func (d *Dialog) check(i int) {
	msg := ""
	if d.validate != nil {
		if err := d.validate(d.names[i], d.fields[i].Value()); err != nil {
			msg = err.Error()
		}
	}
	d.states[i].Err = msg
	d.fields[i].SetError(d.states[i].Visible())
}

func (d *Dialog) indexOf(name string) int {
	for i, n := range d.names {
		if n == name {
			return i
		}
	}
	return -1
}

func (d *Dialog) updateFocusedField(msg tea.Msg) (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 {
		return d, nil
	}

	var cmd tea.Cmd
	d.fields[d.focusedField], cmd = d.fields[d.focusedField].Update(msg)
	return d, cmd
}

func (d *Dialog) isTextAreaFocused() bool {
	if len(d.fields) == 0 {
		return false
	}
	_, ok := d.fields[d.focusedField].(*TextAreaField)
	return ok
}

func (d *Dialog) isFocusedFieldFiltering() bool {
	if len(d.fields) == 0 {
		return false
	}
	if f, ok := d.fields[d.focusedField].(filterer); ok {
		return f.IsFiltering()
	}
	return false
}
