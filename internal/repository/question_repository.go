package repository

import (
	"lingua_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// ListByLesson returns the lesson's question set in its authored order.
func (r *QuestionRepository) ListByLesson(lessonID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("lesson_id = ?", lessonID).Order("order_index").Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var question model.Question
	err := r.DB.First(&question, "id = ?", id).Error
	return &question, err
}

func (r *QuestionRepository) CountByLesson(lessonID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("lesson_id = ?", lessonID).Count(&count).Error
	return count, err
}
