package revision

import (
	"sort"
	"time"

	"github.com/abhisek/studyplan/internal/progress"
)

// Task is a topic due (or scheduled) for revision. It is derived on every
// read and never stored.
type Task struct {
	Key          progress.TopicKey
	TopicName    string
	Subject      string
	RevisionStep int
	DueDate      time.Time

	// LastScore is the latest score ratio in [0,1], nil when the
	// topic has no scores.
	LastScore *float64
}

// IsDue reports whether the task is due on or before today.
func (t Task) IsDue(today time.Time) bool {
	return !t.DueDate.After(Day(today))
}

// Overdue returns how many whole days past due the task is, 0 if not due.
func (t Task) Overdue(today time.Time) int {
	d := Day(today)
	if !d.After(t.DueDate) {
		return 0
	}
	return int(d.Sub(t.DueDate).Hours()/24 + 0.5)
}

// DaysUntil returns the number of days until the task is due, 0 if due.
func (t Task) DaysUntil(today time.Time) int {
	d := Day(today)
	if !t.DueDate.After(d) {
		return 0
	}
	return int(t.DueDate.Sub(d).Hours()/24 + 0.5)
}

// IsWeak reports whether a record's latest score is below WeakThreshold.
// Records without scores are never weak.
func IsWeak(r *progress.Record) bool {
	latest, ok := r.LatestScore()
	if !ok {
		return false
	}
	return latest.Ratio() < WeakThreshold
}

// Tasks returns a task for every weak topic, ordered by due date and then
// by grade, subject, month and topic.
func Tasks(p progress.Progress, today time.Time) []Task {
	loc := today.Location()
	var tasks []Task
	for key, r := range p.CompletedTopics {
		if !IsWeak(r) {
			continue
		}
		anchor := r.CompletionDate
		if last, ok := r.LastRevised(); ok && last.After(anchor) {
			anchor = last
		}
		step := Step(len(r.History))
		latest, _ := r.LatestScore()
		ratio := latest.Ratio()

		tasks = append(tasks, Task{
			Key:          key,
			TopicName:    key.Topic,
			Subject:      key.Subject,
			RevisionStep: step,
			DueDate:      Day(anchor.In(loc)).AddDate(0, 0, step),
			LastScore:    &ratio,
		})
	}
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].DueDate.Equal(tasks[j].DueDate) {
			return tasks[i].DueDate.Before(tasks[j].DueDate)
		}
		return tasks[i].Key.Less(tasks[j].Key)
	})
	return tasks
}

// Due returns the tasks due on or before today.
func Due(p progress.Progress, today time.Time) []Task {
	var out []Task
	for _, t := range Tasks(p, today) {
		if t.IsDue(today) {
			out = append(out, t)
		}
	}
	return out
}

// Upcoming returns the tasks due after today.
func Upcoming(p progress.Progress, today time.Time) []Task {
	var out []Task
	for _, t := range Tasks(p, today) {
		if !t.IsDue(today) {
			out = append(out, t)
		}
	}
	return out
}
