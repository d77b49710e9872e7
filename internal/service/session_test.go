package service

import (
	"testing"

	"lingua_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func results(outcomes ...bool) []EvaluationResult {
	rs := make([]EvaluationResult, 0, len(outcomes))
	for _, correct := range outcomes {
		rs = append(rs, EvaluationResult{IsCorrect: correct})
	}
	return rs
}

func TestSummarizeScores(t *testing.T) {
	cases := []struct {
		name    string
		results []EvaluationResult
		total   int
		correct int
		score   float64
	}{
		{"all correct", results(true, true, true, true), 4, 4, 100},
		{"three of four", results(true, true, true, false), 4, 3, 75},
		{"half", results(true, false), 2, 1, 50},
		{"one of three", results(true, false, false), 3, 1, 100.0 / 3.0},
		{"none correct", results(false, false, false, false, false), 5, 0, 0},
		{"single question", results(true), 1, 1, 100},
		{"seven of ten", results(true, true, true, true, true, true, true, false, false, false), 10, 7, 70},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			summary, err := Summarize(tc.results, tc.total)
			require.NoError(t, err)
			assert.Equal(t, tc.correct, summary.CorrectCount)
			assert.Equal(t, tc.total, summary.TotalQuestions)
			assert.InDelta(t, tc.score, summary.ScorePercent, 1e-9)
		})
	}
}

func TestSummarizeUnansweredCountAgainstTotal(t *testing.T) {
	// Total comes from the question list, not from the answers received:
	// skipping a question lowers the score.
	summary, err := Summarize(results(true, true), 4)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.CorrectCount)
	assert.Equal(t, 4, summary.TotalQuestions)
	assert.InDelta(t, 50, summary.ScorePercent, 1e-9)
}

func TestSummarizeEmptyQuiz(t *testing.T) {
	_, err := Summarize(nil, 0)
	assert.ErrorIs(t, err, util.ErrEmptyQuiz)

	_, err = Summarize(results(true), -1)
	assert.ErrorIs(t, err, util.ErrEmptyQuiz)
}

func TestQuizSessionAccumulates(t *testing.T) {
	session := NewQuizSession("lesson-1")
	session.Add(EvaluationResult{QuestionID: "q1", IsCorrect: true})
	session.Add(EvaluationResult{QuestionID: "q2", IsCorrect: false})
	session.Add(EvaluationResult{QuestionID: "q3", IsCorrect: true})

	summary, err := session.Summarize(3)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.CorrectCount)
	assert.InDelta(t, 100.0*2/3, summary.ScorePercent, 1e-9)
}
