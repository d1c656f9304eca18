package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyplan/internal/revision"
	"github.com/abhisek/studyplan/internal/router"
	"github.com/abhisek/studyplan/internal/screen"
	"github.com/abhisek/studyplan/internal/screens/home"
	"github.com/abhisek/studyplan/internal/screens/plan"
	"github.com/abhisek/studyplan/internal/syllabus"
	"github.com/abhisek/studyplan/internal/ui/layout"
)

// Options configure the TUI.
type Options struct {
	Services *screen.Services

	// Grade skips the grade picker when set.
	Grade syllabus.Grade
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	svc    *screen.Services
	width  int
	height int
}

// newAppModel creates the model with the grade picker at the bottom of the
// stack and, when a grade is given, its plan on top.
func newAppModel(opts Options) AppModel {
	r := router.New(home.New(opts.Services))
	if opts.Grade != "" {
		r.Push(plan.New(opts.Services, opts.Grade))
	}
	return AppModel{
		router: r,
		svc:    opts.Services,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil && m.router.Depth() > 1 {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			if l, ok := m.router.Active().(screen.Leaver); ok {
				l.OnLeave()
			}
			return m, tea.Quit
		}
		if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturingInput() {
			break
		}
		if msg.String() == "esc" {
			if m.router.Depth() > 1 {
				if l, ok := m.router.Active().(screen.Leaver); ok {
					l.OnLeave()
				}
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// headerStats reads the live counters shown in the header.
func (m AppModel) headerStats() layout.HeaderStats {
	if m.svc == nil || m.svc.Progress == nil {
		return layout.HeaderStats{}
	}
	snap := m.svc.Progress.Snapshot()
	return layout.HeaderStats{
		Completed: len(snap.CompletedTopics),
		Due:       len(revision.Due(snap, m.svc.Today())),
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerStats(), m.width)

	var hints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
