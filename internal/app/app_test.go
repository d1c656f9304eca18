package app

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyplan/internal/content"
	"github.com/abhisek/studyplan/internal/progress"
	"github.com/abhisek/studyplan/internal/quiz"
	"github.com/abhisek/studyplan/internal/router"
	"github.com/abhisek/studyplan/internal/screen"
	"github.com/abhisek/studyplan/internal/syllabus"
)

func newServices(t *testing.T) *screen.Services {
	t.Helper()
	ps := progress.Open(context.Background(), progress.NewMemorySlot())
	return &screen.Services{
		Progress: ps,
		Quiz:     quiz.NewEngine(content.New(nil), ps),
		Content:  content.New(nil),
		Now:      time.Now,
	}
}

// leaverScreen records OnLeave calls.
type leaverScreen struct {
	left bool
}

func (s *leaverScreen) Init() tea.Cmd                           { return nil }
func (s *leaverScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *leaverScreen) View(int, int) string                    { return "leaver" }
func (s *leaverScreen) Title() string                           { return "leaver" }
func (s *leaverScreen) OnLeave()                                { s.left = true }

func TestNewAppModel_GradeSkipsPicker(t *testing.T) {
	m := newAppModel(Options{Services: newServices(t), Grade: syllabus.Grade11})
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}
	if got := m.router.Active().Title(); got != "Class 11 plan" {
		t.Errorf("active = %q", got)
	}
}

func TestAppModel_EscPopsAndLeaves(t *testing.T) {
	m := newAppModel(Options{Services: newServices(t)})
	ls := &leaverScreen{}
	m.router.Push(ls)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !ls.left {
		t.Error("esc should call OnLeave on the active screen")
	}
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc should pop")
	}
}

func TestAppModel_EscAtRootIsNoop(t *testing.T) {
	m := newAppModel(Options{Services: newServices(t)})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc on the root screen should do nothing")
	}
}

func TestAppModel_HeaderStats(t *testing.T) {
	svc := newServices(t)
	key := syllabus.Topics(syllabus.Grade9)[0].Key
	if err := svc.Progress.MarkComplete(context.Background(), key, progress.ScoreEntry{Date: time.Now(), Score: 1, Total: 5}); err != nil {
		t.Fatalf("MarkComplete: %v", err)
	}
	m := newAppModel(Options{Services: svc})
	st := m.headerStats()
	if st.Completed != 1 {
		t.Errorf("completed = %d, want 1", st.Completed)
	}
	if st.Due != 0 {
		t.Errorf("due = %d, want 0 on the day of completion", st.Due)
	}
}

func TestAppModel_ViewTooSmall(t *testing.T) {
	m := newAppModel(Options{Services: newServices(t)})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	v := updated.(AppModel).View()
	if v.Content == nil {
		t.Error("expected the min size message")
	}
}
