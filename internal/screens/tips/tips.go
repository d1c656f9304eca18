// Package tips shows generated study tips for one topic.
package tips

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyplan/internal/router"
	"github.com/abhisek/studyplan/internal/screen"
	"github.com/abhisek/studyplan/internal/syllabus"
	"github.com/abhisek/studyplan/internal/ui/components"
	"github.com/abhisek/studyplan/internal/ui/layout"
	"github.com/abhisek/studyplan/internal/ui/theme"
)

// tipsReadyMsg carries the tips text for a topic.
type tipsReadyMsg struct {
	Topic syllabus.Key
	Text  string
}

// TipsScreen implements screen.Screen for study tips.
type TipsScreen struct {
	svc   *screen.Services
	topic syllabus.Key
	text  string
	ready bool
}

var _ screen.Screen = (*TipsScreen)(nil)
var _ screen.KeyHintProvider = (*TipsScreen)(nil)

// New creates a tips screen for topic.
func New(svc *screen.Services, topic syllabus.Key) *TipsScreen {
	return &TipsScreen{svc: svc, topic: topic}
}

func (s *TipsScreen) Init() tea.Cmd {
	adapter, topic := s.svc.Content, s.topic
	return func() tea.Msg {
		return tipsReadyMsg{Topic: topic, Text: adapter.StudyTips(context.Background(), topic)}
	}
}

func (s *TipsScreen) Title() string {
	return "Study tips"
}

func (s *TipsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back"},
	}
}

func (s *TipsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tipsReadyMsg:
		if msg.Topic == s.topic {
			s.text = msg.Text
			s.ready = true
		}
	case tea.KeyPressMsg:
		if msg.String() == "enter" || msg.String() == "q" {
			return s, router.Pop()
		}
	}
	return s, nil
}

func (s *TipsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	title := fmt.Sprintf("%s · %s", s.topic.Subject, s.topic.Topic)

	body := theme.Hint.Render("Asking your study coach...")
	if s.ready {
		body = lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 4).Render(s.text)
	}
	return components.Center(components.Card(title, body, cw), width, height)
}
