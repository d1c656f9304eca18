// Package revision lists weak topics due or scheduled for revision.
package revision

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	qz "github.com/abhisek/studyplan/internal/quiz"
	rev "github.com/abhisek/studyplan/internal/revision"
	"github.com/abhisek/studyplan/internal/router"
	"github.com/abhisek/studyplan/internal/screen"
	quizscreen "github.com/abhisek/studyplan/internal/screens/quiz"
	"github.com/abhisek/studyplan/internal/syllabus"
	"github.com/abhisek/studyplan/internal/ui/layout"
	"github.com/abhisek/studyplan/internal/ui/theme"
)

// View selects which tasks are listed.
type View int

const (
	ViewDue View = iota
	ViewUpcoming
)

// revisedMsg reports the result of recording a revision.
type revisedMsg struct {
	Key syllabus.Key
	Err error
}

// RevisionScreen implements screen.Screen for the revision queue.
type RevisionScreen struct {
	svc    *screen.Services
	view   View
	cursor int
	notice string
}

var _ screen.Screen = (*RevisionScreen)(nil)
var _ screen.KeyHintProvider = (*RevisionScreen)(nil)

// New creates the revision screen showing due tasks.
func New(svc *screen.Services) *RevisionScreen {
	return &RevisionScreen{svc: svc}
}

func (s *RevisionScreen) Init() tea.Cmd {
	return nil
}

func (s *RevisionScreen) Title() string {
	return "Revision"
}

func (s *RevisionScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Due/Upcoming"},
		{Key: "Enter", Description: "Re-quiz"},
		{Key: "M", Description: "Mark revised"},
		{Key: "Esc", Description: "Back"},
	}
}

// tasks returns the tasks for the current view, computed from live progress.
func (s *RevisionScreen) tasks() []rev.Task {
	snap := s.svc.Progress.Snapshot()
	if s.view == ViewUpcoming {
		return rev.Upcoming(snap, s.svc.Today())
	}
	return rev.Due(snap, s.svc.Today())
}

func (s *RevisionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case revisedMsg:
		if msg.Err != nil {
			s.notice = "Could not record revision: " + msg.Err.Error()
		} else {
			s.notice = "Revised “" + msg.Key.Topic + "”. Next review scheduled."
		}
		s.clampCursor()
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *RevisionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	s.notice = ""
	tasks := s.tasks()
	switch msg.String() {
	case "tab", "left", "right", "h", "l":
		if s.view == ViewDue {
			s.view = ViewUpcoming
		} else {
			s.view = ViewDue
		}
		s.cursor = 0
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(tasks)-1 {
			s.cursor++
		}
	case "enter":
		if s.cursor < len(tasks) {
			if s.svc.Quiz.Phase() == qz.PhaseLoading {
				s.notice = "A quiz is still loading. Try again in a moment."
				return s, nil
			}
			return s, router.Push(quizscreen.New(s.svc, tasks[s.cursor].Key))
		}
	case "m":
		if s.cursor < len(tasks) {
			key := tasks[s.cursor].Key
			ps, now := s.svc.Progress, s.svc.Today()
			return s, func() tea.Msg {
				return revisedMsg{Key: key, Err: ps.MarkRevised(context.Background(), key, now)}
			}
		}
	}
	return s, nil
}

func (s *RevisionScreen) clampCursor() {
	if n := len(s.tasks()); s.cursor >= n {
		s.cursor = max(n-1, 0)
	}
}

func (s *RevisionScreen) View(width, height int) string {
	today := s.svc.Today()
	tasks := s.tasks()

	var b strings.Builder
	due, upcoming := "Due now", "Upcoming"
	if s.view == ViewDue {
		due, upcoming = theme.Selected.Render("["+due+"]"), theme.Subtitle.Render(" "+upcoming+" ")
	} else {
		due, upcoming = theme.Subtitle.Render(" "+due+" "), theme.Selected.Render("["+upcoming+"]")
	}
	b.WriteString("  " + due + "  " + upcoming + "\n\n")

	if s.notice != "" {
		b.WriteString("  " + theme.Weak.Render(s.notice) + "\n\n")
	}

	if len(tasks) == 0 {
		msg := "Nothing to revise today. Weak topics show up here."
		if s.view == ViewUpcoming {
			msg = "No revisions scheduled."
		}
		b.WriteString("  " + theme.Hint.Render(msg))
		return b.String()
	}

	for i, t := range tasks {
		if i >= height-6 {
			b.WriteString(theme.Hint.Render(fmt.Sprintf("  ... %d more", len(tasks)-i)))
			break
		}
		b.WriteString(renderTask(t, today, i == s.cursor))
		b.WriteByte('\n')
	}
	return b.String()
}
