package service

import (
	"encoding/json"
	"errors"
	"time"

	"lingua_backend/internal/model"
	"lingua_backend/internal/repository"
	"lingua_backend/internal/util"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProgressService is the recorder: it persists a completed attempt's
// progress row, profile delta and feed entries as one transaction, and
// serves the read side used when a learner opens a lesson.
type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	UserRepo     *repository.UserRepository
	ActivityRepo *repository.ActivityRepository
	DB           *gorm.DB
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	userRepo *repository.UserRepository,
	activityRepo *repository.ActivityRepository,
	db *gorm.DB,
) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		UserRepo:     userRepo,
		ActivityRepo: activityRepo,
		DB:           db,
	}
}

// AttemptOutcome bundles everything one completion writes.
type AttemptOutcome struct {
	LessonID    string
	LessonTitle string
	Status      model.ProgressStatus
	Score       *float64
	Scored      bool // quiz completions carry the score into the feed entry
	Delta       ProgressionDelta
}

type lessonCompletedData struct {
	LessonID    string   `json:"lesson_id"`
	LessonTitle string   `json:"lesson_title"`
	Score       *float64 `json:"score,omitempty"`
	XPEarned    int      `json:"xp_earned"`
}

// GetOrCreateProgress returns the user's record for a lesson, creating an
// in_progress row with zero attempts on first view. Calling it repeatedly
// neither duplicates rows nor touches the attempt counter.
func (s *ProgressService) GetOrCreateProgress(userID, lessonID string) (*model.Progress, error) {
	progress, err := s.ProgressRepo.FindByUserAndLesson(userID, lessonID)
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := &model.Progress{
		UserID:   userID,
		LessonID: lessonID,
		Status:   model.ProgressInProgress,
	}
	if err := s.ProgressRepo.CreateIfAbsent(fresh); err != nil {
		return nil, err
	}
	// Re-read so a concurrent first view returns the winning row.
	return s.ProgressRepo.FindByUserAndLesson(userID, lessonID)
}

// ListProgress returns every progress row the user has, for the course
// overview screens.
func (s *ProgressService) ListProgress(userID string) ([]model.Progress, error) {
	return s.ProgressRepo.ListByUser(userID)
}

// RecordAttempt applies one completed attempt atomically: the progress
// upsert, the XP/level update, the streak fields and the activity feed
// entries all commit or roll back together, so a failure can never award
// XP without the matching progress row or vice versa.
func (s *ProgressService) RecordAttempt(userID string, outcome AttemptOutcome) (*model.User, error) {
	now := time.Now()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := upsertProgress(tx, userID, outcome, now); err != nil {
			return err
		}

		delta := outcome.Delta

		// Atomic increment: concurrent completions on two devices both
		// land their XP. Level is derived in the same statement so the
		// stored level can never drift from the XP total.
		if delta.XPAwarded > 0 {
			if err := tx.Exec(
				"UPDATE users SET level = FLOOR((xp + ?) / ?) + 1, xp = xp + ? WHERE id = ?",
				delta.XPAwarded, XPPerLevel, delta.XPAwarded, userID,
			).Error; err != nil {
				return err
			}
		}

		streakApplied := false
		if delta.StreakChanged {
			// Guarded by last_activity_date: whichever concurrent attempt
			// advances the day first wins, the loser becomes a same-day
			// no-op instead of double-counting the streak.
			res := tx.Model(&model.User{}).
				Where("id = ? AND (last_activity_date IS NULL OR last_activity_date < ?)",
					userID, delta.LastActivityDate).
				Updates(map[string]interface{}{
					"streak_count":        delta.StreakCount,
					"streak_freeze_count": delta.StreakFreezeCount,
					"last_activity_date":  delta.LastActivityDate,
				})
			if res.Error != nil {
				return res.Error
			}
			streakApplied = res.RowsAffected > 0
		}

		feedData := lessonCompletedData{
			LessonID:    outcome.LessonID,
			LessonTitle: outcome.LessonTitle,
			XPEarned:    delta.XPAwarded,
		}
		if outcome.Scored {
			feedData.Score = outcome.Score
		}
		if err := appendFeed(tx, userID, model.ActivityLessonCompleted, feedData); err != nil {
			return err
		}

		if streakApplied {
			for _, m := range delta.Milestones {
				if err := appendFeed(tx, userID, model.ActivityStreakMilestone, m); err != nil {
					return err
				}
			}
		}

		if delta.LeveledUp {
			if err := appendFeed(tx, userID, model.ActivityLevelUp, map[string]int{
				"level": delta.NewLevel,
			}); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Refreshed snapshot so the caller can update its view without a
	// second round trip.
	return s.UserRepo.FindByID(userID)
}

func upsertProgress(tx *gorm.DB, userID string, outcome AttemptOutcome, now time.Time) error {
	var existing model.Progress
	err := tx.Where("user_id = ? AND lesson_id = ?", userID, outcome.LessonID).
		First(&existing).Error

	switch {
	case err == nil:
		if existing.Status == model.ProgressCompleted && outcome.Status != model.ProgressCompleted {
			return util.ErrProgressRegression
		}
		updates := map[string]interface{}{
			"status":          outcome.Status,
			"score":           outcome.Score,
			"attempts":        gorm.Expr("attempts + 1"),
			"last_attempt_at": now,
		}
		if outcome.Status == model.ProgressCompleted {
			updates["completed_at"] = now
		}
		return tx.Model(&existing).Updates(updates).Error

	case errors.Is(err, gorm.ErrRecordNotFound):
		record := &model.Progress{
			UserID:        userID,
			LessonID:      outcome.LessonID,
			Status:        outcome.Status,
			Score:         outcome.Score,
			Attempts:      1,
			LastAttemptAt: &now,
		}
		if outcome.Status == model.ProgressCompleted {
			record.CompletedAt = &now
		}
		return tx.Create(record).Error

	default:
		return err
	}
}

func appendFeed(tx *gorm.DB, userID string, activityType model.ActivityType, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return tx.Create(&model.ActivityEntry{
		UserID:       userID,
		ActivityType: activityType,
		ActivityData: datatypes.JSON(payload),
		IsPublic:     true,
	}).Error
}
