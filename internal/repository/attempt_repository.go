package repository

import (
	"lingua_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// Create appends one answer-attempt log row. Callers treat this as
// best-effort; a failed log never fails the grading pipeline.
func (r *AttemptRepository) Create(attempt *model.QuestionAttempt) error {
	return r.DB.Create(attempt).Error
}

// HasAttemptFasterThan reports whether the user ever answered correctly
// within the given number of seconds. Used by the speed achievement check.
func (r *AttemptRepository) HasAttemptFasterThan(userID string, seconds int) (bool, error) {
	var count int64
	err := r.DB.Model(&model.QuestionAttempt{}).
		Where("user_id = ? AND is_correct = ? AND time_taken_seconds IS NOT NULL AND time_taken_seconds <= ?", userID, true, seconds).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

func (r *AttemptRepository) ListByUserAndQuestion(userID, questionID string, limit int) ([]model.QuestionAttempt, error) {
	var attempts []model.QuestionAttempt
	err := r.DB.Where("user_id = ? AND question_id = ?", userID, questionID).
		Order("created_at DESC").Limit(limit).Find(&attempts).Error
	return attempts, err
}
