package plan

import (
	"github.com/abhisek/studyplan/internal/syllabus"
	"github.com/abhisek/studyplan/internal/ui/components"
)

// row is one line of the plan list: a month heading or a topic.
type row struct {
	month  int
	header bool
	key    syllabus.Key
}

// buildRows flattens a grade's plan into month headings followed by their
// topics in syllabus order.
func buildRows(months []syllabus.MonthPlan, g syllabus.Grade) []row {
	var rows []row
	for _, m := range months {
		rows = append(rows, row{month: m.Month, header: true})
		for _, s := range m.Subjects {
			for _, t := range s.Topics {
				rows = append(rows, row{
					month: m.Month,
					key:   syllabus.Key{Grade: g, Subject: s.Name, Month: m.Month, Topic: t},
				})
			}
		}
	}
	return rows
}

// filterRows keeps topics matching f and the headings of months that still
// have a topic.
func filterRows(rows []row, f components.Filter) []row {
	if f.Query() == "" {
		return rows
	}
	var out []row
	var pending *row
	for i := range rows {
		r := rows[i]
		if r.header {
			pending = &rows[i]
			continue
		}
		if !f.Match(r.key.Subject, r.key.Topic) {
			continue
		}
		if pending != nil {
			out = append(out, *pending)
			pending = nil
		}
		out = append(out, r)
	}
	return out
}
