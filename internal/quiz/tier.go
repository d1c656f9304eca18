package quiz

import "errors"

var (
	// ErrEmptyQuiz is returned when a score is submitted for zero questions.
	ErrEmptyQuiz = errors.New("quiz has no questions")

	// ErrInvalidScore is returned for a negative score or total, or a score
	// above the total.
	ErrInvalidScore = errors.New("invalid quiz score")
)

// Tier classifies a quiz result.
type Tier int

const (
	TierLowRetention Tier = iota // below 60%
	TierMinorGaps                // 60% up to 80%
	TierMastery                  // 80% and above
)

// Feedback shown for each tier.
const (
	MessageMastery      = "Cognitive mastery achieved. Neural pathway successfully reinforced."
	MessageMinorGaps    = "Knowledge sync complete. Minor gaps identified for next review."
	MessageLowRetention = "Low retention detected. A refresh session is scheduled."
)

func (t Tier) String() string {
	switch t {
	case TierMastery:
		return "mastery"
	case TierMinorGaps:
		return "minor-gaps"
	default:
		return "low-retention"
	}
}

// Message returns the feedback for t.
func (t Tier) Message() string {
	switch t {
	case TierMastery:
		return MessageMastery
	case TierMinorGaps:
		return MessageMinorGaps
	default:
		return MessageLowRetention
	}
}

// Classify maps a score to its tier. Thresholds are compared in integer
// arithmetic so 4 of 5 is exactly 80%.
func Classify(score, total int) (Tier, error) {
	switch {
	case total == 0:
		return 0, ErrEmptyQuiz
	case total < 0 || score < 0 || score > total:
		return 0, ErrInvalidScore
	case score*100 >= 80*total:
		return TierMastery, nil
	case score*100 >= 60*total:
		return TierMinorGaps, nil
	default:
		return TierLowRetention, nil
	}
}

// Percent returns score as a percentage of total, or 0 for an empty quiz.
func Percent(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(score) / float64(total) * 100
}
