package model

import "time"

type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "not_started"
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressCompleted  ProgressStatus = "completed"
)

// Progress tracks one user's state on one lesson. Unique per (user, lesson);
// Attempts only grows and Status never moves backwards from completed.
// Score is set on completion and reflects the most recent attempt.
// swagger:model Progress
type Progress struct {
	UUIDBase
	UserID        string         `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_lesson" json:"userId"`
	LessonID      string         `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_lesson" json:"lessonId"`
	Status        ProgressStatus `gorm:"type:enum('not_started','in_progress','completed');default:'not_started'" json:"status"`
	Score         *float64       `json:"score"`
	Attempts      int            `gorm:"default:0" json:"attempts"`
	CompletedAt   *time.Time     `json:"completedAt"`
	LastAttemptAt *time.Time     `json:"lastAttemptAt"`
}

func (Progress) TableName() string {
	return "progress"
}
