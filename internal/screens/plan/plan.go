// Package plan is the syllabus browser for one grade.
package plan

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/studyplan/internal/progress"
	qz "github.com/abhisek/studyplan/internal/quiz"
	"github.com/abhisek/studyplan/internal/router"
	"github.com/abhisek/studyplan/internal/screen"
	"github.com/abhisek/studyplan/internal/screens/dashboard"
	quizscreen "github.com/abhisek/studyplan/internal/screens/quiz"
	revisionscreen "github.com/abhisek/studyplan/internal/screens/revision"
	"github.com/abhisek/studyplan/internal/screens/tips"
	"github.com/abhisek/studyplan/internal/syllabus"
	"github.com/abhisek/studyplan/internal/ui/components"
	"github.com/abhisek/studyplan/internal/ui/layout"
)

// unmarkedMsg reports the result of clearing a topic.
type unmarkedMsg struct {
	Key syllabus.Key
	Err error
}

// PlanScreen implements screen.Screen for browsing and checking off topics.
type PlanScreen struct {
	svc     *screen.Services
	grade   syllabus.Grade
	all     []row
	visible []row
	cursor  int
	filter  components.Filter
	notice  string
}

var _ screen.Screen = (*PlanScreen)(nil)
var _ screen.KeyHintProvider = (*PlanScreen)(nil)
var _ screen.InputCapturer = (*PlanScreen)(nil)

// New creates the plan screen for grade.
func New(svc *screen.Services, grade syllabus.Grade) *PlanScreen {
	months, err := syllabus.ForGrade(grade)
	if err != nil {
		svc.Log().Warn("no plan for grade", zap.String("grade", string(grade)), zap.Error(err))
	}
	s := &PlanScreen{
		svc:    svc,
		grade:  grade,
		all:    buildRows(months, grade),
		filter: components.NewFilter("filter topics"),
	}
	s.applyFilter()
	return s
}

func (s *PlanScreen) Init() tea.Cmd {
	return nil
}

func (s *PlanScreen) Title() string {
	return s.grade.Label() + " plan"
}

// CapturingInput is true while the filter has focus.
func (s *PlanScreen) CapturingInput() bool {
	return s.filter.Active
}

func (s *PlanScreen) KeyHints() []layout.KeyHint {
	if s.filter.Active {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Quiz/Unmark"},
		{Key: "Q", Description: "Re-quiz"},
		{Key: "T", Description: "Tips"},
		{Key: "/", Description: "Filter"},
		{Key: "R", Description: "Revision"},
		{Key: "D", Description: "Dashboard"},
		{Key: "Esc", Description: "Grades"},
	}
}

// Selected returns the topic under the cursor.
func (s *PlanScreen) Selected() (syllabus.Key, bool) {
	if s.cursor < 0 || s.cursor >= len(s.visible) || s.visible[s.cursor].header {
		return syllabus.Key{}, false
	}
	return s.visible[s.cursor].key, true
}

func (s *PlanScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case unmarkedMsg:
		if msg.Err != nil {
			s.notice = "Could not update progress: " + msg.Err.Error()
		} else {
			s.notice = "Marked “" + msg.Key.Topic + "” as not done."
		}
		return s, nil

	case tea.KeyPressMsg:
		if s.filter.Active {
			return s.handleFilterKey(msg)
		}
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PlanScreen) handleFilterKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		s.filter.Blur()
		return s, nil
	case "esc":
		s.filter.Clear()
		s.applyFilter()
		return s, nil
	}
	var cmd tea.Cmd
	s.filter, cmd = s.filter.Update(msg)
	s.applyFilter()
	return s, cmd
}

func (s *PlanScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	s.notice = ""
	switch msg.String() {
	case "up", "k":
		s.move(-1)
	case "down", "j":
		s.move(1)
	case "/":
		return s, s.filter.Focus()
	case "enter", "space":
		key, ok := s.Selected()
		if !ok {
			return s, nil
		}
		if s.svc.Progress.Snapshot().IsComplete(key) {
			return s, s.unmark(key)
		}
		return s, s.startQuiz(key)
	case "q":
		if key, ok := s.Selected(); ok {
			return s, s.startQuiz(key)
		}
	case "t":
		if key, ok := s.Selected(); ok {
			return s, router.Push(tips.New(s.svc, key))
		}
	case "r":
		return s, router.Push(revisionscreen.New(s.svc))
	case "d":
		return s, router.Push(dashboard.New(s.svc))
	}
	return s, nil
}

// startQuiz opens a quiz unless another one is still loading.
func (s *PlanScreen) startQuiz(key syllabus.Key) tea.Cmd {
	if s.svc.Quiz.Phase() == qz.PhaseLoading {
		s.notice = "A quiz is still loading. Try again in a moment."
		return nil
	}
	return router.Push(quizscreen.New(s.svc, key))
}

func (s *PlanScreen) unmark(key syllabus.Key) tea.Cmd {
	ps := s.svc.Progress
	return func() tea.Msg {
		return unmarkedMsg{Key: key, Err: ps.Unmark(context.Background(), key)}
	}
}

// move steps the cursor by delta, skipping month headings.
func (s *PlanScreen) move(delta int) {
	for i := s.cursor + delta; i >= 0 && i < len(s.visible); i += delta {
		if !s.visible[i].header {
			s.cursor = i
			return
		}
	}
}

// applyFilter recomputes the visible rows, keeping the cursor on a topic.
func (s *PlanScreen) applyFilter() {
	prev, hadPrev := s.Selected()
	s.visible = filterRows(s.all, s.filter)
	s.cursor = -1
	for i, r := range s.visible {
		if r.header {
			continue
		}
		if s.cursor < 0 {
			s.cursor = i
		}
		if hadPrev && r.key == prev {
			s.cursor = i
			break
		}
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// counts returns completed and total topics for the grade.
func (s *PlanScreen) counts(p progress.Progress) (done, total int) {
	for _, r := range s.all {
		if r.header {
			continue
		}
		total++
		if p.IsComplete(r.key) {
			done++
		}
	}
	return done, total
}

func monthLabel(m int) string {
	return fmt.Sprintf("Month %d", m)
}
