package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyplan/internal/ui/theme"
)

// ContentWidth returns the inner width used for cards, capped for reading.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given content width.
func Card(title, content string, cw int) string {
	body := content
	if title != "" {
		body = theme.Section.Render(title) + "\n\n" + content
	}
	return theme.Card.
		Width(cw).
		Render(body)
}

// Center places s in the middle of a width x height area.
func Center(s string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}
