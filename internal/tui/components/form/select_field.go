package form

import (
	"io"

	"charm.land/bubbles/v2/list"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/unitdesk/internal/core/styles"
)

// SelectField is a single-select form field wrapping list.Model.
type SelectField struct {
	list    list.Model
	options []Option
	label   string
	err     string
	focused bool
}

// selectDelegate renders items in a single-select list.
type selectDelegate struct{}

func (d selectDelegate) Height() int                             { return 1 }
func (d selectDelegate) Spacing() int                            { return 0 }
func (d selectDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d selectDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(selectItem)
	if !ok {
		return
	}

	style := styles.TextForegroundStyle
	cursor := "  "
	if index == m.Index() {
		style = styles.SelectFieldItemSelectedStyle
		cursor = "> "
	}

	_, _ = io.WriteString(w, cursor)
	_, _ = io.WriteString(w, style.Render(item.label))
}

// NewSelectField creates a single-select field. defaultVal pre-selects the
// option with that value; otherwise the first option is selected.
func NewSelectField(label string, options []Option, defaultVal string) *SelectField {
	items := make([]list.Item, len(options))
	for i, opt := range options {
		items[i] = selectItem{label: opt.Label, index: i}
	}

	const maxVisible = 6
	height := max(min(len(options), maxVisible), 1)

	l := list.New(items, selectDelegate{}, 48, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowFilter(false)
	l.SetShowHelp(false)
	l.SetShowPagination(len(options) > maxVisible)
	l.Styles.TitleBar = lipgloss.NewStyle()

	l.FilterInput.Prompt = "/ "
	filterStyles := textinput.DefaultStyles(true)
	filterStyles.Focused.Prompt = styles.TextPrimaryStyle
	filterStyles.Cursor.Color = styles.ColorPrimary
	l.FilterInput.SetStyles(filterStyles)

	f := &SelectField{
		list:    l,
		options: options,
		label:   label,
	}
	f.SetValue(defaultVal)
	return f
}

func (f *SelectField) Update(msg tea.Msg) (Field, tea.Cmd) {
	if !f.focused {
		return f, nil
	}

	var cmd tea.Cmd
	f.list, cmd = f.list.Update(msg)
	return f, cmd
}

func (f *SelectField) View() string {
	body := f.list.View()
	if f.list.SettingFilter() {
		body = lipgloss.JoinVertical(lipgloss.Left, f.list.FilterInput.View(), body)
	}
	return frame(f.label, body, f.err, f.focused)
}

func (f *SelectField) Focus() tea.Cmd {
	f.focused = true
	return nil
}

func (f *SelectField) Blur() {
	f.focused = false
}

// SetValue selects the option with value v. Unknown values are ignored.
func (f *SelectField) SetValue(v string) {
	for i, opt := range f.options {
		if opt.Value == v {
			f.list.Select(i)
			return
		}
	}
}

func (f *SelectField) Value() string {
	item := f.list.SelectedItem()
	if item == nil {
		return ""
	}
	if si, ok := item.(selectItem); ok && si.index >= 0 && si.index < len(f.options) {
		return f.options[si.index].Value
	}
	return ""
}

func (f *SelectField) Focused() bool       { return f.focused }
func (f *SelectField) Label() string       { return f.label }
func (f *SelectField) SetError(msg string) { f.err = msg }

// IsFiltering returns whether the list is currently filtering.
func (f *SelectField) IsFiltering() bool {
	return f.list.SettingFilter()
}
