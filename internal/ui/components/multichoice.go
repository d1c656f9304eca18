package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyplan/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D"}

// MultiChoice is a multiple-choice selector. Choosing is repeatable until
// Reveal is set, after which the correct option is highlighted.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Cursor       int
	ChosenIndex  int
	Reveal       bool
}

// NewMultiChoice creates a new multiple-choice component with nothing chosen.
func NewMultiChoice(question string, options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

// Chosen reports whether an option has been picked.
func (m MultiChoice) Chosen() bool {
	return m.ChosenIndex >= 0
}

// Update handles cursor movement and selection. Letters a-d pick directly.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Reveal {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter", "space":
		m.ChosenIndex = m.Cursor
	case "a", "b", "c", "d":
		i := int(key[0] - 'a')
		if i < len(m.Options) {
			m.Cursor = i
			m.ChosenIndex = i
		}
	}

	return m, nil
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !m.Reveal {
			prefix = "▸ "
		}
		mark := " "
		if i == m.ChosenIndex {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, optionLabels[i%len(optionLabels)], opt)

		switch {
		case m.Reveal && i == m.CorrectIndex:
			line = theme.Correct.Render(line)
		case m.Reveal && i == m.ChosenIndex:
			line = theme.Incorrect.Render(line)
		case m.Reveal:
			line = theme.Hint.Render(line)
		case i == m.Cursor:
			line = theme.Selected.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	return b.String()
}

// IsCorrect returns true if the chosen option is the correct one.
func (m MultiChoice) IsCorrect() bool {
	return m.Chosen() && m.ChosenIndex == m.CorrectIndex
}
