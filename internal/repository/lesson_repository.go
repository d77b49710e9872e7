package repository

import (
	"lingua_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) FindByID(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, "id = ?", id).Error
	return &lesson, err
}

func (r *LessonRepository) ListPublishedByUnit(unitID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("unit_id = ? AND is_published = ?", unitID, true).
		Order("order_index").Find(&lessons).Error
	return lessons, err
}

// CourseIDForLesson resolves the owning course through the unit table.
func (r *LessonRepository) CourseIDForLesson(lessonID string) (string, error) {
	var courseID string
	err := r.DB.Model(&model.Lesson{}).
		Select("units.course_id").
		Joins("JOIN units ON units.id = lessons.unit_id").
		Where("lessons.id = ?", lessonID).
		Scan(&courseID).Error
	return courseID, err
}
