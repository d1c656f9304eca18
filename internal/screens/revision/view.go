package revision

import (
	"fmt"
	"time"

	rev "github.com/abhisek/studyplan/internal/revision"
	"github.com/abhisek/studyplan/internal/ui/theme"
)

func renderTask(t rev.Task, today time.Time, selected bool) string {
	label := fmt.Sprintf("%s · %s · %s", t.Key.Grade.Label(), t.Subject, t.TopicName)

	var when string
	switch {
	case t.Overdue(today) > 0:
		when = theme.Incorrect.Render(fmt.Sprintf("%d day(s) overdue", t.Overdue(today)))
	case t.IsDue(today):
		when = theme.Weak.Render("due today")
	default:
		when = theme.Subtitle.Render(fmt.Sprintf("in %d day(s), %s", t.DaysUntil(today), t.DueDate.Format("Jan 2")))
	}

	score := ""
	if t.LastScore != nil {
		score = theme.Hint.Render(fmt.Sprintf("  last %.0f%%", *t.LastScore*100))
	}
	step := theme.Hint.Render(fmt.Sprintf("  +%dd", t.RevisionStep))

	if selected {
		return theme.Selected.Render("  ▸ "+label) + "  " + when + score + step
	}
	return "    " + theme.Unselected.Render(label) + "  " + when + score + step
}
