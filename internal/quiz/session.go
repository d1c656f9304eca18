package quiz

import (
	"time"

	"github.com/abhisek/studyplan/internal/content"
	"github.com/abhisek/studyplan/internal/syllabus"
)

// Phase is the lifecycle position of a quiz session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseQuestions
	PhaseResult
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseQuestions:
		return "questions"
	case PhaseResult:
		return "result"
	default:
		return "idle"
	}
}

// Unanswered marks a question with no recorded choice.
const Unanswered = -1

// Session is a snapshot of one quiz attempt.
type Session struct {
	ID        string
	Topic     syllabus.Key
	Phase     Phase
	StartedAt time.Time

	Questions []content.MCQ

	// Answers holds the chosen option per question, or Unanswered.
	Answers []int

	// Degraded is set when no quiz could be produced; the session went
	// straight to PhaseResult with no questions.
	Degraded bool

	// Result fields, set on submission.
	Score          int
	Total          int
	Percent        float64
	Tier           Tier
	Recommendation string
}

// Answered returns how many questions have a recorded choice.
func (s Session) Answered() int {
	n := 0
	for _, a := range s.Answers {
		if a != Unanswered {
			n++
		}
	}
	return n
}

// Correct returns how many recorded choices match the answer key.
func (s Session) Correct() int {
	n := 0
	for i, q := range s.Questions {
		if i < len(s.Answers) && s.Answers[i] == q.Answer {
			n++
		}
	}
	return n
}

func (s *Session) clone() Session {
	c := *s
	c.Questions = append([]content.MCQ(nil), s.Questions...)
	c.Answers = append([]int(nil), s.Answers...)
	return c
}
