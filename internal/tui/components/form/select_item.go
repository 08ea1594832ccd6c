package form

// Option is a selectable value with its display label.
type Option struct {
	Value string
	Label string
}

// selectItem is the list item used by the select field.
type selectItem struct {
	label string
	index int
}

func (i selectItem) FilterValue() string { return i.label }
