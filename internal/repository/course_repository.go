package repository

import (
	"time"

	"lingua_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) ListPublished() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("is_published = ?", true).Order("order_index").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, "id = ?", id).Error
	return &course, err
}

func (r *CourseRepository) ListUnits(courseID string) ([]model.Unit, error) {
	var units []model.Unit
	err := r.DB.Where("course_id = ?", courseID).Order("order_index").Find(&units).Error
	return units, err
}

func (r *CourseRepository) FindUnitByID(id string) (*model.Unit, error) {
	var unit model.Unit
	err := r.DB.First(&unit, "id = ?", id).Error
	return &unit, err
}

// HasAccess reports whether the user holds an unexpired grant to the course.
func (r *CourseRepository) HasAccess(userID, courseID string, now time.Time) (bool, error) {
	var count int64
	err := r.DB.Model(&model.CourseAccess{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Count(&count).Error
	return count > 0, err
}

// GrantAccess upserts on the (user, course) unique key: re-granting refreshes
// the grantor and expiry instead of inserting a duplicate row.
func (r *CourseRepository) GrantAccess(access *model.CourseAccess) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"granted_by", "granted_at", "expires_at"}),
	}).Create(access).Error
}

func (r *CourseRepository) RevokeAccess(userID, courseID string) error {
	return r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&model.CourseAccess{}).Error
}

func (r *CourseRepository) ListAccessByUser(userID string) ([]model.CourseAccess, error) {
	var grants []model.CourseAccess
	err := r.DB.Where("user_id = ?", userID).Find(&grants).Error
	return grants, err
}
