package model

import "time"

type AchievementType string

const (
	AchievementBadge AchievementType = "badge"
	AchievementCrown AchievementType = "crown"
)

type RequirementType string

const (
	RequireXP               RequirementType = "xp"
	RequireStreak           RequirementType = "streak"
	RequireLessonsCompleted RequirementType = "lessons_completed"
	RequirePerfectScore     RequirementType = "perfect_score"
	RequireSpeed            RequirementType = "speed"
)

// swagger:model Achievement
type Achievement struct {
	UUIDBase
	Title            string          `gorm:"size:100;not null" json:"title"`
	Description      string          `gorm:"size:255;not null" json:"description"`
	Icon             string          `gorm:"size:50;not null" json:"icon"`
	Type             AchievementType `gorm:"type:enum('badge','crown');default:'badge'" json:"type"`
	Tier             *int            `json:"tier"`
	RequirementType  RequirementType `gorm:"size:32;not null" json:"requirementType"`
	RequirementValue int             `gorm:"not null" json:"requirementValue"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// swagger:model UserAchievement
type UserAchievement struct {
	UUIDBase
	UserID        string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_achievement" json:"userId"`
	AchievementID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_achievement" json:"achievementId"`
	EarnedAt      time.Time `json:"earnedAt"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
