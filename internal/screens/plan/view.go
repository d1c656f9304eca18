package plan

import (
	"fmt"
	"strings"

	"github.com/abhisek/studyplan/internal/progress"
	"github.com/abhisek/studyplan/internal/revision"
	"github.com/abhisek/studyplan/internal/ui/components"
	"github.com/abhisek/studyplan/internal/ui/theme"
)

func (s *PlanScreen) View(width, height int) string {
	snap := s.svc.Progress.Snapshot()
	done, total := s.counts(snap)

	var b strings.Builder
	bar := components.NewProgressBar(fmt.Sprintf("%d/%d topics done", done, total), fraction(done, total), true, min(width-4, 70))
	b.WriteString("  " + bar.View() + "\n")

	if s.filter.Active || s.filter.Query() != "" {
		b.WriteString("  " + s.filter.View() + "\n")
	}
	if s.notice != "" {
		b.WriteString("  " + theme.Weak.Render(s.notice) + "\n")
	}
	b.WriteString("\n")

	used := strings.Count(b.String(), "\n")
	listHeight := max(height-used, 1)

	if len(s.visible) == 0 || (len(s.visible) == 1 && s.visible[0].header) {
		b.WriteString(theme.Hint.Render("  No topics match the filter."))
		return b.String()
	}

	start, end := window(len(s.visible), s.cursor, listHeight)
	for i := start; i < end; i++ {
		b.WriteString(s.renderRow(snap, i, width))
		b.WriteByte('\n')
	}
	return b.String()
}

func (s *PlanScreen) renderRow(snap progress.Progress, i, width int) string {
	r := s.visible[i]
	if r.header {
		return "  " + theme.Section.Render(monthLabel(r.month))
	}

	check := "[ ]"
	var extra string
	rec, done := snap.CompletedTopics[r.key]
	if done {
		check = theme.Done.Render("[✓]")
		if latest, ok := rec.LatestScore(); ok {
			extra = theme.Hint.Render(fmt.Sprintf("  %.0f%%", latest.Ratio()*100))
		}
		if revision.IsWeak(rec) {
			extra += "  " + theme.Weak.Render("weak")
		}
	}

	label := fmt.Sprintf("%s · %s", r.key.Subject, r.key.Topic)
	if max(width-24, 10) < len([]rune(label)) {
		label = string([]rune(label)[:max(width-27, 7)]) + "..."
	}
	if i == s.cursor {
		return theme.Selected.Render("  ▸ ") + check + " " + theme.Selected.Render(label) + extra
	}
	return "    " + check + " " + theme.Unselected.Render(label) + extra
}

// window returns the [start,end) slice of n rows of at most size rows that
// keeps cursor visible.
func window(n, cursor, size int) (int, int) {
	if n <= size {
		return 0, n
	}
	start := cursor - size/2
	start = max(0, min(start, n-size))
	return start, start + size
}

func fraction(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}
