package model

import "time"

// swagger:model Course
type Course struct {
	UUIDBase
	Title        string `gorm:"size:200;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	Language     string `gorm:"size:50;not null" json:"language"`
	Level        string `gorm:"size:50;not null" json:"level"` // e.g. A1, B2
	ThumbnailURL string `gorm:"size:255" json:"thumbnailUrl"`
	IsPublished  bool   `gorm:"default:false;index" json:"isPublished"`
	OrderIndex   int    `gorm:"default:0" json:"orderIndex"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model Unit
type Unit struct {
	UUIDBase
	CourseID    string `gorm:"type:varchar(36);not null;index" json:"courseId"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	OrderIndex  int    `gorm:"default:0" json:"orderIndex"`
}

func (Unit) TableName() string {
	return "units"
}

// CourseAccess is a per-user grant to a course, optionally expiring.
// Unique per (user, course); re-granting updates the existing row.
// swagger:model CourseAccess
type CourseAccess struct {
	UUIDBase
	UserID    string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_course" json:"userId"`
	CourseID  string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_course" json:"courseId"`
	GrantedBy string     `gorm:"type:varchar(36)" json:"grantedBy"`
	GrantedAt time.Time  `json:"grantedAt"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

func (CourseAccess) TableName() string {
	return "course_access"
}
