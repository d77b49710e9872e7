package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentTrial  PaymentStatus = "trial"
)

// User is a learner profile. XP is the accumulating experience total and
// Level is always derived from it (100 XP per level); the two are written
// together so they cannot drift apart.
// swagger:model User
type User struct {
	UUIDBase
	Email             string        `gorm:"size:100;unique;not null" json:"email"`
	Password          string        `gorm:"size:100;not null" json:"-"`
	FullName          string        `gorm:"size:100" json:"fullName"`
	AvatarURL         string        `gorm:"size:255" json:"avatarUrl"`
	Role              UserRole      `gorm:"type:enum('student','admin');default:'student'" json:"role"`
	PaymentStatus     PaymentStatus `gorm:"type:enum('paid','unpaid','trial');default:'trial'" json:"paymentStatus"`
	TrialEndDate      *time.Time    `json:"trialEndDate"`
	LoginEnabled      bool          `gorm:"default:true" json:"loginEnabled"`
	XP                int           `gorm:"column:xp;default:0" json:"xp"`
	Level             int           `gorm:"default:1" json:"level"`
	StreakCount       int           `gorm:"default:0" json:"streakCount"`
	StreakFreezeCount int           `gorm:"default:0" json:"streakFreezeCount"`
	LastActivityDate  *time.Time    `gorm:"type:date" json:"lastActivityDate"`
}

func (User) TableName() string {
	return "users"
}
