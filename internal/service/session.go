package service

import (
	"time"

	"lingua_backend/internal/util"
)

// QuizSession accumulates per-question results over one attempt at a quiz
// lesson. It lives only in memory for the duration of the attempt; nothing
// is persisted until the attempt is recorded as a whole.
type QuizSession struct {
	LessonID  string
	StartedAt time.Time
	Results   []EvaluationResult
}

func NewQuizSession(lessonID string) *QuizSession {
	return &QuizSession{
		LessonID:  lessonID,
		StartedAt: time.Now(),
	}
}

func (s *QuizSession) Add(r EvaluationResult) {
	s.Results = append(s.Results, r)
}

// SessionSummary is the aggregate outcome of a completed quiz attempt.
type SessionSummary struct {
	CorrectCount   int     `json:"correctCount"`
	TotalQuestions int     `json:"totalQuestions"`
	ScorePercent   float64 `json:"scorePercent"`
}

// Summarize folds per-question results into a final score. A quiz must have
// at least one question to be completable, so totalQuestions < 1 is a
// validation error rather than a division by zero.
func Summarize(results []EvaluationResult, totalQuestions int) (SessionSummary, error) {
	if totalQuestions < 1 {
		return SessionSummary{}, util.ErrEmptyQuiz
	}

	correct := 0
	for _, r := range results {
		if r.IsCorrect {
			correct++
		}
	}

	return SessionSummary{
		CorrectCount:   correct,
		TotalQuestions: totalQuestions,
		ScorePercent:   100 * float64(correct) / float64(totalQuestions),
	}, nil
}

func (s *QuizSession) Summarize(totalQuestions int) (SessionSummary, error) {
	return Summarize(s.Results, totalQuestions)
}
