package tips

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyplan/internal/content"
	"github.com/abhisek/studyplan/internal/llm"
	"github.com/abhisek/studyplan/internal/router"
	"github.com/abhisek/studyplan/internal/screen"
	"github.com/abhisek/studyplan/internal/syllabus"
)

func topic() syllabus.Key {
	return syllabus.Topics(syllabus.Grade10)[0].Key
}

func TestTipsScreen_LoadsTips(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("1. Draw it.\n2. Explain it."))
	svc := &screen.Services{Content: content.New(mock)}
	s := New(svc, topic())

	if !strings.Contains(s.View(100, 30), "Asking") {
		t.Error("expected a loading message before tips arrive")
	}

	s.Update(s.Init()())
	if !s.ready || !strings.Contains(s.text, "Draw it") {
		t.Fatalf("tips not applied: ready=%v text=%q", s.ready, s.text)
	}
}

func TestTipsScreen_FallbackWithoutProvider(t *testing.T) {
	svc := &screen.Services{Content: content.New(nil)}
	s := New(svc, topic())
	s.Update(s.Init()())
	if s.text != content.FallbackTip {
		t.Errorf("text = %q, want fallback", s.text)
	}
}

func TestTipsScreen_IgnoresOtherTopic(t *testing.T) {
	svc := &screen.Services{Content: content.New(nil)}
	s := New(svc, topic())
	s.Update(tipsReadyMsg{Topic: syllabus.Key{Topic: "other"}, Text: "x"})
	if s.ready {
		t.Error("tips for another topic should be ignored")
	}
}

func TestTipsScreen_EnterPops(t *testing.T) {
	s := New(&screen.Services{Content: content.New(nil)}, topic())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("enter should pop the tips screen")
	}
}
