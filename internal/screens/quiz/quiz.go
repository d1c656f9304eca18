// Package quiz is the quiz-taking screen.
package quiz

import (
	"context"
	"errors"
	"sync/atomic"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	qz "github.com/abhisek/studyplan/internal/quiz"
	"github.com/abhisek/studyplan/internal/router"
	"github.com/abhisek/studyplan/internal/screen"
	"github.com/abhisek/studyplan/internal/syllabus"
	"github.com/abhisek/studyplan/internal/ui/components"
	"github.com/abhisek/studyplan/internal/ui/layout"
)

// screenIDs tags async results so a late answer for a closed screen is
// never applied to a newer one.
var screenIDs atomic.Int64

// QuizScreen implements screen.Screen for one quiz attempt.
type QuizScreen struct {
	svc   *screen.Services
	topic syllabus.Key
	id    int64

	session    *qz.Session
	choices    []components.MultiChoice
	current    int
	submitting bool
	errMsg     string
	saveErr    string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Leaver = (*QuizScreen)(nil)

// New creates a quiz screen for topic. The quiz starts on Init.
func New(svc *screen.Services, topic syllabus.Key) *QuizScreen {
	return &QuizScreen{
		svc:   svc,
		topic: topic,
		id:    screenIDs.Add(1),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.start()
}

func (s *QuizScreen) Title() string {
	return "Quiz: " + s.topic.Topic
}

// OnLeave discards the engine session.
func (s *QuizScreen) OnLeave() {
	s.svc.Quiz.Leave()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.session == nil:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case s.session.Phase == qz.PhaseResult:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Done"}}
		return append(hints, layout.KeyHint{Key: "R", Description: "Retake"})
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Option"},
		{Key: "Enter/A-D", Description: "Choose"},
		{Key: "←→", Description: "Question"},
		{Key: "S", Description: "Submit"},
		{Key: "Esc", Description: "Leave"},
	}
}

func (s *QuizScreen) start() tea.Cmd {
	id, topic, engine := s.id, s.topic, s.svc.Quiz
	return func() tea.Msg {
		sess, err := engine.Start(context.Background(), topic)
		return quizLoadedMsg{screenID: id, Session: sess, Err: err}
	}
}

func (s *QuizScreen) submit() tea.Cmd {
	if s.submitting {
		return nil
	}
	s.submitting = true
	id, engine := s.id, s.svc.Quiz
	return func() tea.Msg {
		sess, err := engine.SubmitAnswers(context.Background())
		return quizSubmittedMsg{screenID: id, Session: sess, Err: err}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizLoadedMsg:
		if msg.screenID != s.id {
			return s, nil
		}
		return s.handleLoaded(msg)

	case quizSubmittedMsg:
		if msg.screenID != s.id {
			return s, nil
		}
		return s.handleSubmitted(msg)

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleLoaded(msg quizLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, qz.ErrAbandoned) {
			return s, nil
		}
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.setSession(msg.Session)
	return s, nil
}

func (s *QuizScreen) handleSubmitted(msg quizSubmittedMsg) (screen.Screen, tea.Cmd) {
	s.submitting = false
	if msg.Err != nil {
		if msg.Session.Phase != qz.PhaseResult {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.saveErr = "Your score could not be saved: " + msg.Err.Error()
		s.svc.Log().Warn("quiz result not saved", zap.Error(msg.Err))
	}
	s.setSession(msg.Session)
	return s, nil
}

// setSession adopts an engine snapshot and rebuilds the choice widgets.
func (s *QuizScreen) setSession(sess qz.Session) {
	s.session = &sess
	s.choices = make([]components.MultiChoice, len(sess.Questions))
	for i, q := range sess.Questions {
		mc := components.NewMultiChoice(q.Question, q.Options, q.Answer)
		if i < len(sess.Answers) && sess.Answers[i] != qz.Unanswered {
			mc.ChosenIndex = sess.Answers[i]
			mc.Cursor = sess.Answers[i]
		}
		mc.Reveal = sess.Phase == qz.PhaseResult
		s.choices[i] = mc
	}
	if s.current >= len(s.choices) {
		s.current = 0
	}
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		s.OnLeave()
		return s, router.Pop()
	}
	if s.session == nil {
		return s, nil
	}

	if s.session.Phase == qz.PhaseResult {
		switch msg.String() {
		case "enter", "q":
			s.OnLeave()
			return s, router.Pop()
		case "r":
			s.OnLeave()
			next := New(s.svc, s.topic)
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
		return s, nil
	}

	if s.submitting {
		return s, nil
	}

	switch msg.String() {
	case "left", "h", "p":
		if s.current > 0 {
			s.current--
		}
		return s, nil
	case "right", "l", "n", "tab":
		if s.current < len(s.choices)-1 {
			s.current++
		}
		return s, nil
	case "s":
		return s, s.submitButton().Press()
	}

	before := s.choices[s.current].ChosenIndex
	var cmd tea.Cmd
	s.choices[s.current], cmd = s.choices[s.current].Update(msg)
	after := s.choices[s.current].ChosenIndex
	if after != before || (after >= 0 && msg.String() == "enter") {
		if err := s.svc.Quiz.Answer(s.current, after); err != nil {
			s.svc.Log().Warn("answer rejected", zap.Error(err))
			return s, cmd
		}
		s.session.Answers[s.current] = after
		if s.current < len(s.choices)-1 {
			s.current++
		}
	}
	return s, cmd
}

func (s *QuizScreen) submitButton() components.Button {
	label := "Submit answers"
	if s.submitting {
		label = "Submitting..."
	}
	return components.NewButton(label, !s.submitting, s.submit)
}
