package revision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyplan/internal/progress"
)

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(progress.Empty(), day(2025, 1, 1))
	assert.Equal(t, Summary{}, s)
}

func TestSummarize(t *testing.T) {
	p := progress.Empty()
	p.CompletedTopics[motion] = record(day(2025, 1, 1), nil, [2]int{2, 5})
	p.CompletedTopics[tissues] = record(day(2025, 1, 4), nil, [2]int{5, 5})
	p.CompletedTopics[polys] = record(day(2025, 1, 4), nil, [2]int{3, 5})

	s := Summarize(p, day(2025, 1, 3))
	assert.Equal(t, 3, s.Completed)
	assert.Equal(t, 2, s.Weak)
	assert.Equal(t, 1, s.DueNow)
	assert.Equal(t, 1, s.Upcoming)
	assert.Equal(t, 3, s.Scored)
	assert.InDelta(t, (0.4+1.0+0.6)/3, s.MeanScore, 1e-9)

	require.Len(t, s.Subjects, 3)
	assert.Equal(t, "Mathematics", s.Subjects[0].Subject)
	assert.Equal(t, 1, s.Subjects[0].Completed)
	assert.Equal(t, "Science", s.Subjects[1].Subject)
	assert.Equal(t, 2, s.Subjects[1].Completed)
	assert.Equal(t, "Social Science", s.Subjects[2].Subject)
	assert.Equal(t, 0, s.Subjects[2].Completed)
	assert.Greater(t, s.Subjects[1].Total, 2)
}
