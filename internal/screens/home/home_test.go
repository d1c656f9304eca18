package home

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyplan/internal/progress"
	"github.com/abhisek/studyplan/internal/router"
	"github.com/abhisek/studyplan/internal/screen"
	"github.com/abhisek/studyplan/internal/screens/plan"
	"github.com/abhisek/studyplan/internal/syllabus"
)

func newServices(t *testing.T) *screen.Services {
	t.Helper()
	return &screen.Services{
		Progress: progress.Open(context.Background(), progress.NewMemorySlot()),
		Now:      time.Now,
	}
}

func TestHome_SelectGradePushesPlan(t *testing.T) {
	h := New(newServices(t))
	h.Update(tea.KeyPressMsg{Code: 'j', Text: "j"}) // Class 10

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	p, ok := msg.Screen.(*plan.PlanScreen)
	if !ok {
		t.Fatalf("pushed %T, want plan screen", msg.Screen)
	}
	if p.Title() != syllabus.Grade10.Label()+" plan" {
		t.Errorf("plan title = %q", p.Title())
	}
}

func TestHome_ViewShowsCounts(t *testing.T) {
	svc := newServices(t)
	key := syllabus.Topics(syllabus.Grade9)[0].Key
	if err := svc.Progress.MarkComplete(context.Background(), key, progress.ScoreEntry{Date: time.Now(), Score: 4, Total: 5}); err != nil {
		t.Fatalf("MarkComplete: %v", err)
	}
	v := New(svc).View(100, 30)
	if !strings.Contains(v, "1/") || !strings.Contains(v, "Class 12") {
		t.Errorf("unexpected home view:\n%s", v)
	}
}
