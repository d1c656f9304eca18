// Package content produces study tips and multiple-choice quizzes for a
// syllabus topic from a generative model, degrading to safe defaults
// whenever the model cannot deliver.
package content

import "strings"

// OptionCount is the number of options every question carries.
const OptionCount = 4

// FallbackTip is returned by StudyTips when no tips could be produced.
const FallbackTip = "Utilize neural associations to strengthen long-term memory."

// MCQ is one multiple-choice question. Answer is the index of the correct
// option.
type MCQ struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   int      `json:"answer"`
}

// Valid reports whether q has a question, exactly four non-empty options
// and an answer index within them.
func (q MCQ) Valid() bool {
	if strings.TrimSpace(q.Question) == "" || len(q.Options) != OptionCount {
		return false
	}
	for _, o := range q.Options {
		if strings.TrimSpace(o) == "" {
			return false
		}
	}
	return q.Answer >= 0 && q.Answer < OptionCount
}

// Sanitize drops invalid questions. It returns nil rather than an empty
// slice when nothing survives.
func Sanitize(qs []MCQ) []MCQ {
	var out []MCQ
	for _, q := range qs {
		if q.Valid() {
			out = append(out, q)
		}
	}
	return out
}
