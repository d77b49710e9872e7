package database

import (
	"fmt"
	"log"

	"lingua_backend/internal/config"
	"lingua_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !migrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Unit{},
		&model.CourseAccess{},
		&model.Lesson{},
		&model.Question{},
		&model.QuestionAttempt{},
		&model.Progress{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.ActivityEntry{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedAchievements(db)

	return db, nil
}

// seedAchievements installs the default badge set on an empty table so a
// fresh deployment has something to award.
func seedAchievements(db *gorm.DB) {
	var count int64
	db.Model(&model.Achievement{}).Count(&count)
	if count > 0 {
		return
	}

	tier := func(n int) *int { return &n }
	defaults := []model.Achievement{
		{Title: "First Steps", Description: "Earn your first 10 XP", Icon: "footprints", Type: model.AchievementBadge, Tier: tier(1), RequirementType: model.RequireXP, RequirementValue: 10},
		{Title: "Scholar", Description: "Reach 500 XP", Icon: "scroll", Type: model.AchievementBadge, Tier: tier(2), RequirementType: model.RequireXP, RequirementValue: 500},
		{Title: "Sage", Description: "Reach 2000 XP", Icon: "owl", Type: model.AchievementCrown, Tier: tier(3), RequirementType: model.RequireXP, RequirementValue: 2000},
		{Title: "Week One", Description: "Keep a 7-day streak", Icon: "flame", Type: model.AchievementBadge, Tier: tier(1), RequirementType: model.RequireStreak, RequirementValue: 7},
		{Title: "Unstoppable", Description: "Keep a 30-day streak", Icon: "bonfire", Type: model.AchievementCrown, Tier: tier(2), RequirementType: model.RequireStreak, RequirementValue: 30},
		{Title: "Getting Started", Description: "Complete 5 lessons", Icon: "book", Type: model.AchievementBadge, Tier: tier(1), RequirementType: model.RequireLessonsCompleted, RequirementValue: 5},
		{Title: "Bookworm", Description: "Complete 50 lessons", Icon: "library", Type: model.AchievementCrown, Tier: tier(2), RequirementType: model.RequireLessonsCompleted, RequirementValue: 50},
		{Title: "Perfectionist", Description: "Score 100% on a quiz", Icon: "star", Type: model.AchievementBadge, RequirementType: model.RequirePerfectScore, RequirementValue: 100},
		{Title: "Quick Thinker", Description: "Answer correctly in under 5 seconds", Icon: "bolt", Type: model.AchievementBadge, RequirementType: model.RequireSpeed, RequirementValue: 5},
	}

	for i := range defaults {
		if err := db.Create(&defaults[i]).Error; err != nil {
			log.Printf("failed to seed achievement %q: %v", defaults[i].Title, err)
		}
	}
}
