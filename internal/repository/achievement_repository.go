package repository

import (
	"time"

	"lingua_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) ListAll() ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.Order("requirement_value").Find(&achievements).Error
	return achievements, err
}

func (r *AchievementRepository) ListEarnedIDs(userID string) (map[string]bool, error) {
	var rows []model.UserAchievement
	if err := r.DB.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	earned := make(map[string]bool, len(rows))
	for _, row := range rows {
		earned[row.AchievementID] = true
	}
	return earned, nil
}

func (r *AchievementRepository) ListUserAchievements(userID string) ([]model.UserAchievement, error) {
	var rows []model.UserAchievement
	err := r.DB.Where("user_id = ?", userID).Order("earned_at DESC").Find(&rows).Error
	return rows, err
}

// Award records an earned achievement; awarding twice is a no-op thanks to
// the (user, achievement) unique index.
func (r *AchievementRepository) Award(userID, achievementID string) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
		DoNothing: true,
	}).Create(&model.UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
		EarnedAt:      time.Now(),
	}).Error
}
