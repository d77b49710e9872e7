package repository

import (
	"lingua_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUserAndLesson(userID, lessonID string) (*model.Progress, error) {
	var progress model.Progress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// CreateIfAbsent inserts a fresh record and silently does nothing when the
// (user, lesson) row already exists; the unique index is load-bearing here.
func (r *ProgressRepository) CreateIfAbsent(progress *model.Progress) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoNothing: true,
	}).Create(progress).Error
}

func (r *ProgressRepository) ListByUser(userID string) ([]model.Progress, error) {
	var records []model.Progress
	err := r.DB.Where("user_id = ?", userID).Find(&records).Error
	return records, err
}

func (r *ProgressRepository) CountCompleted(userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Progress{}).
		Where("user_id = ? AND status = ?", userID, model.ProgressCompleted).
		Count(&count).Error
	return count, err
}

// HasCompletionWithScoreAtLeast reports whether any completed lesson reached
// the given score. Used by the perfect_score achievement check.
func (r *ProgressRepository) HasCompletionWithScoreAtLeast(userID string, score float64) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Progress{}).
		Where("user_id = ? AND status = ? AND score >= ?", userID, model.ProgressCompleted, score).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}
