package dashboard

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyplan/internal/progress"
	"github.com/abhisek/studyplan/internal/router"
	"github.com/abhisek/studyplan/internal/screen"
	"github.com/abhisek/studyplan/internal/syllabus"
)

func TestDashboard_Empty(t *testing.T) {
	svc := &screen.Services{Progress: progress.Open(context.Background(), progress.NewMemorySlot())}
	v := New(svc).View(100, 30)
	if !strings.Contains(v, "No quizzes taken yet") {
		t.Errorf("empty dashboard should say no quizzes:\n%s", v)
	}
}

func TestDashboard_ShowsSubjects(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.Local)
	ps := progress.Open(context.Background(), progress.NewMemorySlot())
	key := syllabus.Topics(syllabus.Grade11)[0].Key
	if err := ps.MarkComplete(context.Background(), key, progress.ScoreEntry{Date: now, Score: 3, Total: 5}); err != nil {
		t.Fatalf("MarkComplete: %v", err)
	}
	svc := &screen.Services{Progress: ps, Now: func() time.Time { return now }}

	v := New(svc).View(100, 40)
	for _, want := range []string{"Class 11", key.Subject, "60%"} {
		if !strings.Contains(v, want) {
			t.Errorf("dashboard missing %q:\n%s", want, v)
		}
	}
}

func TestDashboard_EnterPops(t *testing.T) {
	svc := &screen.Services{Progress: progress.Open(context.Background(), progress.NewMemorySlot())}
	_, cmd := New(svc).Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("enter should pop")
	}
}
