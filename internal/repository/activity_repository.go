package repository

import (
	"lingua_backend/internal/model"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) Create(entry *model.ActivityEntry) error {
	return r.DB.Create(entry).Error
}

func (r *ActivityRepository) ListByUser(userID string, limit int) ([]model.ActivityEntry, error) {
	var entries []model.ActivityEntry
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

func (r *ActivityRepository) ListPublic(limit int) ([]model.ActivityEntry, error) {
	var entries []model.ActivityEntry
	err := r.DB.Where("is_public = ?", true).
		Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
