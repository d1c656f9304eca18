// Package dashboard summarizes progress across grades and subjects.
package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyplan/internal/revision"
	"github.com/abhisek/studyplan/internal/router"
	"github.com/abhisek/studyplan/internal/screen"
	"github.com/abhisek/studyplan/internal/ui/components"
	"github.com/abhisek/studyplan/internal/ui/theme"
)

// DashboardScreen implements screen.Screen for the progress summary.
type DashboardScreen struct {
	svc *screen.Services
}

var _ screen.Screen = (*DashboardScreen)(nil)

// New creates the dashboard screen.
func New(svc *screen.Services) *DashboardScreen {
	return &DashboardScreen{svc: svc}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && (k.String() == "enter" || k.String() == "q") {
		return s, router.Pop()
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	sum := revision.Summarize(s.svc.Progress.Snapshot(), s.svc.Today())
	cw := components.ContentWidth(width)

	var b strings.Builder
	stat := func(label string, v any) string {
		return theme.Subtitle.Render(label+" ") + theme.Body.Bold(true).Render(fmt.Sprint(v))
	}
	b.WriteString(strings.Join([]string{
		stat("Completed", sum.Completed),
		stat("Weak", sum.Weak),
		stat("Due now", sum.DueNow),
		stat("Upcoming", sum.Upcoming),
	}, "    "))
	b.WriteString("\n")
	if sum.Scored > 0 {
		b.WriteString(stat("Average latest score", fmt.Sprintf("%.0f%%", sum.MeanScore*100)))
	} else {
		b.WriteString(theme.Hint.Render("No quizzes taken yet."))
	}
	b.WriteString("\n")

	if len(sum.Subjects) == 0 {
		b.WriteString("\n" + theme.Hint.Render("Complete a topic to see subject progress."))
		return components.Center(components.Card("Progress", b.String(), cw), width, height)
	}

	labelWidth := 0
	labels := make([]string, len(sum.Subjects))
	for i, st := range sum.Subjects {
		labels[i] = fmt.Sprintf("%s %s", st.Grade.Label(), st.Subject)
		labelWidth = max(labelWidth, len(labels[i]))
	}
	for i, st := range sum.Subjects {
		if i >= height-12 {
			b.WriteString("\n" + theme.Hint.Render(fmt.Sprintf("... %d more subjects", len(sum.Subjects)-i)))
			break
		}
		bar := components.NewProgressBar(labels[i], ratio(st.Completed, st.Total), true, cw-4)
		bar.LabelWidth = labelWidth
		b.WriteString("\n" + bar.View())
	}

	return components.Center(components.Card("Progress", b.String(), cw), width, height)
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
