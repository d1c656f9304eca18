package revision

import (
	"time"

	"github.com/abhisek/studyplan/internal/progress"
	"github.com/abhisek/studyplan/internal/syllabus"
)

// SubjectStats counts completed topics for one subject of a grade.
type SubjectStats struct {
	Grade     syllabus.Grade
	Subject   string
	Completed int
	Total     int
}

// Summary aggregates progress for the dashboard.
type Summary struct {
	Completed int
	Weak      int
	DueNow    int
	Upcoming  int

	// MeanScore is the mean latest-score ratio over scored topics, 0 when
	// nothing is scored.
	MeanScore float64
	Scored    int

	Subjects []SubjectStats
}

// Summarize computes dashboard figures. Subject rows follow syllabus order
// for every grade that has at least one completed topic.
func Summarize(p progress.Progress, today time.Time) Summary {
	s := Summary{Completed: len(p.CompletedTopics)}

	var sum float64
	for _, r := range p.CompletedTopics {
		if latest, ok := r.LatestScore(); ok {
			sum += latest.Ratio()
			s.Scored++
		}
		if IsWeak(r) {
			s.Weak++
		}
	}
	if s.Scored > 0 {
		s.MeanScore = sum / float64(s.Scored)
	}

	for _, t := range Tasks(p, today) {
		if t.IsDue(today) {
			s.DueNow++
		} else {
			s.Upcoming++
		}
	}

	active := make(map[syllabus.Grade]bool)
	for k := range p.CompletedTopics {
		active[k.Grade] = true
	}
	for _, g := range syllabus.Grades() {
		if !active[g] {
			continue
		}
		idx := make(map[string]int)
		var rows []SubjectStats
		for _, ref := range syllabus.Topics(g) {
			i, ok := idx[ref.Subject]
			if !ok {
				i = len(rows)
				idx[ref.Subject] = i
				rows = append(rows, SubjectStats{Grade: g, Subject: ref.Subject})
			}
			rows[i].Total++
			if p.IsComplete(ref.Key) {
				rows[i].Completed++
			}
		}
		s.Subjects = append(s.Subjects, rows...)
	}
	return s
}
