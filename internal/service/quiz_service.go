package service

import (
	"encoding/json"
	"errors"
	"time"

	"lingua_backend/internal/model"
	"lingua_backend/internal/repository"
	"lingua_backend/internal/util"
	"lingua_backend/pkg/logger"
	"lingua_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizService drives the grading pipeline: evaluate one answer at a time,
// then fold a finished attempt into progression state through the recorder.
type QuizService struct {
	QuestionRepo *repository.QuestionRepository
	AttemptRepo  *repository.AttemptRepository
	UserRepo     *repository.UserRepository
	Catalog      *CatalogService
	Progress     *ProgressService
	Gamification *GamificationService
}

func NewQuizService(
	questionRepo *repository.QuestionRepository,
	attemptRepo *repository.AttemptRepository,
	userRepo *repository.UserRepository,
	catalog *CatalogService,
	progress *ProgressService,
	gamification *GamificationService,
) *QuizService {
	return &QuizService{
		QuestionRepo: questionRepo,
		AttemptRepo:  attemptRepo,
		UserRepo:     userRepo,
		Catalog:      catalog,
		Progress:     progress,
		Gamification: gamification,
	}
}

// AnswerSubmission is one learner answer keyed by question.
type AnswerSubmission struct {
	QuestionID       string          `json:"questionId" binding:"required"`
	Value            json.RawMessage `json:"value"`
	TimeTakenSeconds *int            `json:"timeTakenSeconds"`
}

// AnswerFeedback is what the client shows after checking one answer.
type AnswerFeedback struct {
	QuestionID    string          `json:"questionId"`
	IsCorrect     bool            `json:"isCorrect"`
	CorrectAnswer json.RawMessage `json:"correctAnswer"`
	Explanation   string          `json:"explanation,omitempty"`
}

// QuizCompletion is the response to finishing a quiz or a lesson.
type QuizCompletion struct {
	Summary   SessionSummary `json:"summary"`
	XPAwarded int            `json:"xpAwarded"`
	Profile   *model.User    `json:"profile"`
}

// CheckAnswer grades one submitted answer and logs the attempt. The log is
// fire-and-forget: a failed insert is reported but never fails grading.
func (s *QuizService) CheckAnswer(userID string, role model.UserRole, sub AnswerSubmission) (*AnswerFeedback, error) {
	question, err := s.QuestionRepo.FindByID(sub.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	if err := s.Catalog.AuthorizeLesson(userID, role, question.LessonID); err != nil {
		return nil, err
	}

	result, err := Evaluate(question, sub.Value)
	if err != nil {
		return nil, err
	}

	s.logAttempt(userID, question.ID, result, sub.TimeTakenSeconds)

	outcome := "incorrect"
	if result.IsCorrect {
		outcome = "correct"
	}
	monitoring.AnswersGraded.WithLabelValues(string(question.Type), outcome).Inc()

	return &AnswerFeedback{
		QuestionID:    question.ID,
		IsCorrect:     result.IsCorrect,
		CorrectAnswer: json.RawMessage(question.CorrectAnswer),
		Explanation:   question.Explanation,
	}, nil
}

// CompleteQuiz re-grades the full answer set server side, aggregates the
// session, computes the progression delta and records everything through
// the recorder. Questions with no matching submission grade as incorrect.
func (s *QuizService) CompleteQuiz(userID string, role model.UserRole, lessonID string, answers []AnswerSubmission) (*QuizCompletion, error) {
	lesson, err := s.Catalog.GetLesson(userID, role, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson.Type != model.LessonQuiz {
		return nil, util.ErrNotAQuiz
	}

	questions, err := s.QuestionRepo.ListByLesson(lessonID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrEmptyQuiz
	}

	byQuestion := make(map[string]json.RawMessage, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a.Value
	}

	session := NewQuizSession(lessonID)
	for i := range questions {
		result, err := Evaluate(&questions[i], byQuestion[questions[i].ID])
		if err != nil {
			return nil, err
		}
		session.Add(result)
	}

	summary, err := session.Summarize(len(questions))
	if err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	delta := ComputeProgression(lesson.XPReward, summary.ScorePercent, snapshotOf(user), time.Now())

	score := summary.ScorePercent
	profile, err := s.Progress.RecordAttempt(userID, AttemptOutcome{
		LessonID:    lesson.ID,
		LessonTitle: lesson.Title,
		Status:      model.ProgressCompleted,
		Score:       &score,
		Scored:      true,
		Delta:       delta,
	})
	if err != nil {
		return nil, err
	}

	monitoring.LessonsCompleted.WithLabelValues(string(lesson.Type)).Inc()
	monitoring.XPAwarded.Add(float64(delta.XPAwarded))

	s.checkAchievementsAsync(userID)

	return &QuizCompletion{
		Summary:   summary,
		XPAwarded: delta.XPAwarded,
		Profile:   profile,
	}, nil
}

// CompleteLesson marks a non-quiz lesson done with full, unscaled credit.
func (s *QuizService) CompleteLesson(userID string, role model.UserRole, lessonID string) (*QuizCompletion, error) {
	lesson, err := s.Catalog.GetLesson(userID, role, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson.Type == model.LessonQuiz {
		return nil, util.ErrNotAQuiz
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	delta := ComputeDirectCompletion(lesson.XPReward, snapshotOf(user), time.Now())

	score := 100.0
	profile, err := s.Progress.RecordAttempt(userID, AttemptOutcome{
		LessonID:    lesson.ID,
		LessonTitle: lesson.Title,
		Status:      model.ProgressCompleted,
		Score:       &score,
		Delta:       delta,
	})
	if err != nil {
		return nil, err
	}

	monitoring.LessonsCompleted.WithLabelValues(string(lesson.Type)).Inc()
	monitoring.XPAwarded.Add(float64(delta.XPAwarded))

	s.checkAchievementsAsync(userID)

	return &QuizCompletion{
		Summary:   SessionSummary{CorrectCount: 0, TotalQuestions: 0, ScorePercent: 100},
		XPAwarded: delta.XPAwarded,
		Profile:   profile,
	}, nil
}

// AttemptHistory returns the caller's recent logged answers to one question,
// newest first.
func (s *QuizService) AttemptHistory(userID string, role model.UserRole, questionID string, limit int) ([]model.QuestionAttempt, error) {
	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	if err := s.Catalog.AuthorizeLesson(userID, role, question.LessonID); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.AttemptRepo.ListByUserAndQuestion(userID, questionID, limit)
}

func (s *QuizService) logAttempt(userID, questionID string, result EvaluationResult, timeTaken *int) {
	attempt := &model.QuestionAttempt{
		UserID:           userID,
		QuestionID:       questionID,
		UserAnswer:       datatypes.JSON(result.Submitted),
		IsCorrect:        result.IsCorrect,
		TimeTakenSeconds: timeTaken,
	}
	go func() {
		if err := s.AttemptRepo.Create(attempt); err != nil {
			logger.Log.Warn("failed to log question attempt",
				zap.String("user_id", userID),
				zap.String("question_id", questionID),
				zap.Error(err))
		}
	}()
}

// Achievement checks ride a non-critical side channel after completion.
func (s *QuizService) checkAchievementsAsync(userID string) {
	go func() {
		if _, err := s.Gamification.CheckAchievements(userID); err != nil {
			logger.Log.Warn("achievement check failed",
				zap.String("user_id", userID),
				zap.Error(err))
		}
	}()
}

func snapshotOf(user *model.User) ProfileSnapshot {
	return ProfileSnapshot{
		XP:                user.XP,
		StreakCount:       user.StreakCount,
		StreakFreezeCount: user.StreakFreezeCount,
		LastActivityDate:  user.LastActivityDate,
	}
}
