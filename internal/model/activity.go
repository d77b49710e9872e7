package model

import "gorm.io/datatypes"

type ActivityType string

const (
	ActivityLessonCompleted   ActivityType = "lesson_completed"
	ActivityAchievementEarned ActivityType = "achievement_earned"
	ActivityStreakMilestone   ActivityType = "streak_milestone"
	ActivityLevelUp           ActivityType = "level_up"
)

// ActivityEntry is an append-only feed record. The grading pipeline only
// ever inserts these; reads happen on the profile feed endpoint.
// swagger:model ActivityEntry
type ActivityEntry struct {
	UUIDBase
	UserID       string         `gorm:"type:varchar(36);not null;index" json:"userId"`
	ActivityType ActivityType   `gorm:"size:32;not null" json:"activityType"`
	ActivityData datatypes.JSON `json:"activityData"`
	IsPublic     bool           `gorm:"default:true" json:"isPublic"`
}

func (ActivityEntry) TableName() string {
	return "activity_feed"
}
