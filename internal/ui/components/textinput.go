package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// Filter wraps bubbles/textinput as a case-insensitive search box.
type Filter struct {
	Model  textinput.Model
	Active bool
}

// NewFilter creates an inactive filter input.
func NewFilter(placeholder string) Filter {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	return Filter{Model: ti}
}

// Focus activates the filter for typing.
func (f *Filter) Focus() tea.Cmd {
	f.Active = true
	return f.Model.Focus()
}

// Blur stops typing but keeps the query.
func (f *Filter) Blur() {
	f.Active = false
	f.Model.Blur()
}

// Clear drops the query and deactivates the filter.
func (f *Filter) Clear() {
	f.Model.SetValue("")
	f.Blur()
}

// Update forwards messages to the input while active.
func (f Filter) Update(msg tea.Msg) (Filter, tea.Cmd) {
	if !f.Active {
		return f, nil
	}
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// View renders the input.
func (f Filter) View() string {
	return f.Model.View()
}

// Query returns the trimmed, lowercased query.
func (f Filter) Query() string {
	return strings.ToLower(strings.TrimSpace(f.Model.Value()))
}

// Match reports whether any of the fields contains the query.
func (f Filter) Match(fields ...string) bool {
	q := f.Query()
	if q == "" {
		return true
	}
	for _, s := range fields {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}
