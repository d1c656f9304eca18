package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/studyplan/internal/quiz"
	"github.com/abhisek/studyplan/internal/ui/components"
	"github.com/abhisek/studyplan/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.session == nil {
		return renderLoading(width, s.topic.Topic)
	}
	cw := components.ContentWidth(width)
	var body string
	if s.session.Phase == qz.PhaseResult {
		body = s.renderResult(cw)
	} else {
		body = s.renderQuestion(cw)
	}
	return components.Center(body, width, height)
}

func (s *QuizScreen) renderQuestion(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s · %s · Question %d of %d",
		s.topic.Subject, s.topic.Topic, s.current+1, len(s.choices))))
	b.WriteString("\n\n")
	b.WriteString(s.choices[s.current].View())
	b.WriteString("\n")

	var dots []string
	for i, mc := range s.choices {
		dot := "○"
		if mc.Chosen() {
			dot = "●"
		}
		if i == s.current {
			dot = theme.Selected.Render(dot)
		} else {
			dot = theme.Subtitle.Render(dot)
		}
		dots = append(dots, dot)
	}
	b.WriteString(strings.Join(dots, " "))
	b.WriteString(theme.Hint.Render(fmt.Sprintf("   %d/%d answered", s.session.Answered(), len(s.choices))))
	b.WriteString("\n\n")
	b.WriteString(s.submitButton().View())

	return components.Card("", b.String(), cw)
}

func (s *QuizScreen) renderResult(cw int) string {
	if s.session.Degraded {
		return components.Card("Quiz unavailable",
			theme.Body.Render("A quiz could not be generated for this topic right now.")+"\n"+
				theme.Hint.Render("The topic was not marked complete. Press R to try again."), cw)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Text).
		Render(fmt.Sprintf("%d / %d  (%.0f%%)", s.session.Score, s.session.Total, s.session.Percent)))
	b.WriteString("\n\n")
	b.WriteString(tierStyle(s.session.Tier).Render(s.session.Recommendation))
	b.WriteString("\n\n")

	for i, q := range s.session.Questions {
		mark := theme.Correct.Render("✓")
		if s.session.Answers[i] != q.Answer {
			mark = theme.Incorrect.Render("✗")
		}
		b.WriteString(mark + " " + theme.Body.Render(truncate(q.Question, cw-8)))
		b.WriteString("\n")
		if s.session.Answers[i] != q.Answer {
			b.WriteString(theme.Hint.Render("    " + truncate(q.Options[q.Answer], cw-10)))
			b.WriteString("\n")
		}
	}

	if s.saveErr != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render(s.saveErr))
	}

	return components.Card("Result", b.String(), cw)
}

func tierStyle(t qz.Tier) lipgloss.Style {
	switch t {
	case qz.TierMastery:
		return theme.Correct
	case qz.TierMinorGaps:
		return theme.Weak
	default:
		return theme.Incorrect
	}
}

func renderLoading(width int, topic string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("\n\n\n  Preparing a quiz on %s...", topic))
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n < 4 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
