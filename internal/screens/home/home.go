// Package home is the grade picker shown at startup.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyplan/internal/progress"
	"github.com/abhisek/studyplan/internal/revision"
	"github.com/abhisek/studyplan/internal/router"
	"github.com/abhisek/studyplan/internal/screen"
	"github.com/abhisek/studyplan/internal/screens/dashboard"
	"github.com/abhisek/studyplan/internal/screens/plan"
	revisionscreen "github.com/abhisek/studyplan/internal/screens/revision"
	"github.com/abhisek/studyplan/internal/syllabus"
	"github.com/abhisek/studyplan/internal/ui/components"
)

// HomeScreen lets the learner pick a grade or jump to revision.
type HomeScreen struct {
	svc    *screen.Services
	grades []syllabus.Grade
	menu   components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(svc *screen.Services) *HomeScreen {
	h := &HomeScreen{svc: svc, grades: syllabus.Grades()}

	var items []components.MenuItem
	for _, g := range h.grades {
		items = append(items, components.MenuItem{
			Label: g.Label(),
			Action: func() tea.Cmd {
				return router.Push(plan.New(svc, g))
			},
		})
	}
	items = append(items,
		components.MenuItem{Label: "Revision", Action: func() tea.Cmd {
			return router.Push(revisionscreen.New(svc))
		}},
		components.MenuItem{Label: "Dashboard", Action: func() tea.Cmd {
			return router.Push(dashboard.New(svc))
		}},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Choose your class"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// refreshHints puts live counts next to each menu entry.
func (h *HomeScreen) refreshHints() {
	if h.svc == nil || h.svc.Progress == nil {
		return
	}
	snap := h.svc.Progress.Snapshot()
	for i, g := range h.grades {
		done, total := gradeCounts(snap, g)
		h.menu.Items[i].Hint = fmt.Sprintf("%d/%d done", done, total)
	}
	if due := len(revision.Due(snap, h.svc.Today())); due > 0 {
		h.menu.Items[len(h.grades)].Hint = fmt.Sprintf("%d due", due)
	} else {
		h.menu.Items[len(h.grades)].Hint = ""
	}
}

func gradeCounts(p progress.Progress, g syllabus.Grade) (done, total int) {
	for _, ref := range syllabus.Topics(g) {
		total++
		if p.IsComplete(ref.Key) {
			done++
		}
	}
	return done, total
}

func (h *HomeScreen) View(width, height int) string {
	h.refreshHints()
	cw := components.ContentWidth(width)

	sections := []string{
		renderBanner(cw),
		components.Card("", h.menu.View(), cw),
	}
	return components.Center(strings.Join(sections, "\n\n"), width, height)
}
