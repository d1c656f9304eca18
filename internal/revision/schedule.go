// Package revision derives spaced-repetition revision tasks for weak topics
// from the learner's progress. Everything here is pure: callers pass the
// current date in.
package revision

import "time"

// Intervals is the expanding revision schedule in days. The number of
// revisions already recorded for a topic selects the step.
var Intervals = []int{1, 3, 7, 30, 60}

// WeakThreshold is the latest-score ratio below which a topic is weak.
const WeakThreshold = 0.8

// Step returns the interval for a topic that has been revised n times.
// Past the end of the schedule the last interval repeats.
func Step(revisions int) int {
	if revisions < 0 {
		revisions = 0
	}
	if revisions >= len(Intervals) {
		return Intervals[len(Intervals)-1]
	}
	return Intervals[revisions]
}

// Day truncates t to midnight in t's location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
