package model

import "time"

type LessonType string

const (
	LessonVideo     LessonType = "video"
	LessonPDF       LessonType = "pdf"
	LessonLiveClass LessonType = "live_class"
	LessonQuiz      LessonType = "quiz"
)

// swagger:model Lesson
type Lesson struct {
	UUIDBase
	UnitID          string     `gorm:"type:varchar(36);not null;index" json:"unitId"`
	Title           string     `gorm:"size:200;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	Type            LessonType `gorm:"type:enum('video','pdf','live_class','quiz');not null" json:"type"`
	ContentURL      string     `gorm:"size:255" json:"contentUrl"`
	MeetLink        string     `gorm:"size:255" json:"meetLink"`
	ScheduledAt     *time.Time `json:"scheduledAt"`
	DurationMinutes int        `gorm:"default:0" json:"durationMinutes"`
	XPReward        int        `gorm:"column:xp_reward;default:10" json:"xpReward"`
	OrderIndex      int        `gorm:"default:0" json:"orderIndex"`
	IsPublished     bool       `gorm:"default:false;index" json:"isPublished"`
}

func (Lesson) TableName() string {
	return "lessons"
}
