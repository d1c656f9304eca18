package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyplan/internal/ui/theme"
)

const (
	bannerWide    = "S  T  U  D  Y  P  L  A  N"
	bannerCompact = "STUDYPLAN"
	tagline       = "Plan the months. Quiz the topics. Revise what's weak."
)

// renderBanner returns the title block, compact below 52 columns.
func renderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	title := bannerWide
	if width < 52 {
		title = bannerCompact
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(style.Render(title)) + "\n" +
		lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(theme.Subtitle.Render(tagline))
}
