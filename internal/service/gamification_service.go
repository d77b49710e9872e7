package service

import (
	"context"
	"encoding/json"
	"time"

	"lingua_backend/internal/config"
	"lingua_backend/internal/model"
	"lingua_backend/internal/repository"
	"lingua_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const leaderboardCacheKey = "lingua:leaderboard"

// GamificationService owns the read side of the reward system: leaderboard,
// achievements and the activity feed, plus the nightly streak sweep.
type GamificationService struct {
	UserRepo        *repository.UserRepository
	AchievementRepo *repository.AchievementRepository
	ProgressRepo    *repository.ProgressRepository
	AttemptRepo     *repository.AttemptRepository
	ActivityRepo    *repository.ActivityRepository
	Redis           *redis.Client
	Config          *config.Config
}

func NewGamificationService(
	userRepo *repository.UserRepository,
	achievementRepo *repository.AchievementRepository,
	progressRepo *repository.ProgressRepository,
	attemptRepo *repository.AttemptRepository,
	activityRepo *repository.ActivityRepository,
	rdb *redis.Client,
	cfg *config.Config,
) *GamificationService {
	return &GamificationService{
		UserRepo:        userRepo,
		AchievementRepo: achievementRepo,
		ProgressRepo:    progressRepo,
		AttemptRepo:     attemptRepo,
		ActivityRepo:    activityRepo,
		Redis:           rdb,
		Config:          cfg,
	}
}

// LeaderboardEntry is one ranked row. Rank is 1-based and ties keep their
// insertion order from the XP sort.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"userId"`
	FullName    string `json:"fullName"`
	AvatarURL   string `json:"avatarUrl"`
	XP          int    `json:"xp"`
	Level       int    `json:"level"`
	StreakCount int    `json:"streakCount"`
}

// Leaderboard returns the top users by XP, served from a short-lived Redis
// cache. A cache miss or Redis outage falls through to the database.
func (s *GamificationService) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, leaderboardCacheKey).Result()
		if err == nil {
			var entries []LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("leaderboard cache read failed", zap.Error(err))
		}
	}

	users, err := s.UserRepo.FindTopByXP(s.Config.Leaderboard.Size)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:        i + 1,
			UserID:      u.ID,
			FullName:    u.FullName,
			AvatarURL:   u.AvatarURL,
			XP:          u.XP,
			Level:       u.Level,
			StreakCount: u.StreakCount,
		})
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			ttl := time.Duration(s.Config.Leaderboard.CacheTTLSeconds) * time.Second
			if err := s.Redis.Set(ctx, leaderboardCacheKey, payload, ttl).Err(); err != nil {
				logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
			}
		}
	}

	return entries, nil
}

// AchievementView pairs an achievement definition with the caller's earned
// state so the client renders locked and unlocked badges from one list.
type AchievementView struct {
	model.Achievement
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earnedAt,omitempty"`
}

func (s *GamificationService) ListAchievements(userID string) ([]AchievementView, error) {
	all, err := s.AchievementRepo.ListAll()
	if err != nil {
		return nil, err
	}
	earned, err := s.AchievementRepo.ListUserAchievements(userID)
	if err != nil {
		return nil, err
	}

	earnedAt := make(map[string]time.Time, len(earned))
	for _, ua := range earned {
		earnedAt[ua.AchievementID] = ua.EarnedAt
	}

	views := make([]AchievementView, 0, len(all))
	for _, a := range all {
		v := AchievementView{Achievement: a}
		if at, ok := earnedAt[a.ID]; ok {
			v.Earned = true
			t := at
			v.EarnedAt = &t
		}
		views = append(views, v)
	}
	return views, nil
}

type achievementEarnedData struct {
	AchievementID string `json:"achievement_id"`
	Title         string `json:"title"`
	Icon          string `json:"icon"`
}

// CheckAchievements re-evaluates every achievement requirement against the
// user's current stats and awards the ones newly satisfied. Returns the
// achievements granted by this call. Awarding is idempotent per user.
func (s *GamificationService) CheckAchievements(userID string) ([]model.Achievement, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	all, err := s.AchievementRepo.ListAll()
	if err != nil {
		return nil, err
	}
	earned, err := s.AchievementRepo.ListEarnedIDs(userID)
	if err != nil {
		return nil, err
	}

	var granted []model.Achievement
	for _, a := range all {
		if earned[a.ID] {
			continue
		}
		ok, err := s.meetsRequirement(user, a)
		if err != nil {
			return granted, err
		}
		if !ok {
			continue
		}
		if err := s.AchievementRepo.Award(userID, a.ID); err != nil {
			return granted, err
		}
		s.announceAchievement(userID, a)
		granted = append(granted, a)
	}
	return granted, nil
}

func (s *GamificationService) meetsRequirement(user *model.User, a model.Achievement) (bool, error) {
	switch a.RequirementType {
	case model.RequireXP:
		return user.XP >= a.RequirementValue, nil

	case model.RequireStreak:
		return user.StreakCount >= a.RequirementValue, nil

	case model.RequireLessonsCompleted:
		count, err := s.ProgressRepo.CountCompleted(user.ID)
		if err != nil {
			return false, err
		}
		return count >= int64(a.RequirementValue), nil

	case model.RequirePerfectScore:
		return s.ProgressRepo.HasCompletionWithScoreAtLeast(user.ID, 100)

	case model.RequireSpeed:
		return s.AttemptRepo.HasAttemptFasterThan(user.ID, a.RequirementValue)

	default:
		logger.Log.Warn("unknown achievement requirement type",
			zap.String("achievement_id", a.ID),
			zap.String("requirement_type", string(a.RequirementType)))
		return false, nil
	}
}

func (s *GamificationService) announceAchievement(userID string, a model.Achievement) {
	payload, err := json.Marshal(achievementEarnedData{
		AchievementID: a.ID,
		Title:         a.Title,
		Icon:          a.Icon,
	})
	if err != nil {
		return
	}
	entry := &model.ActivityEntry{
		UserID:       userID,
		ActivityType: model.ActivityAchievementEarned,
		ActivityData: datatypes.JSON(payload),
		IsPublic:     true,
	}
	if err := s.ActivityRepo.Create(entry); err != nil {
		logger.Log.Warn("failed to append achievement feed entry",
			zap.String("user_id", userID),
			zap.String("achievement_id", a.ID),
			zap.Error(err))
	}
}

// MyFeed returns the caller's own activity entries, newest first.
func (s *GamificationService) MyFeed(userID string, limit int) ([]model.ActivityEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.ActivityRepo.ListByUser(userID, limit)
}

// RecentActivity returns the newest public entries across all users.
func (s *GamificationService) RecentActivity(limit int) ([]model.ActivityEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.ActivityRepo.ListPublic(limit)
}

// SweepResult summarizes one run of the streak sweep.
type SweepResult struct {
	Scanned int `json:"scanned"`
	Bridged int `json:"bridged"`
	Reset   int `json:"reset"`
}

// SweepStreaks walks every user with activity history and settles streaks
// for days with no completions: a one-day gap is still alive, a longer gap
// consumes a freeze when one is banked, otherwise the streak drops to zero.
func (s *GamificationService) SweepStreaks(now time.Time) (*SweepResult, error) {
	users, err := s.UserRepo.FindWithActivity()
	if err != nil {
		return nil, err
	}

	result := &SweepResult{Scanned: len(users)}
	today := Midnight(now)

	for _, u := range users {
		if u.LastActivityDate == nil {
			continue
		}
		daysDiff := DaysBetween(*u.LastActivityDate, today)
		if daysDiff <= 1 {
			continue
		}

		if u.StreakFreezeCount > 0 {
			if err := s.UserRepo.UpdateStreakFields(u.ID, u.StreakCount, u.StreakFreezeCount-1); err != nil {
				logger.Log.Warn("streak sweep update failed",
					zap.String("user_id", u.ID), zap.Error(err))
				continue
			}
			result.Bridged++
			continue
		}

		if u.StreakCount == 0 {
			continue
		}
		if err := s.UserRepo.UpdateStreakFields(u.ID, 0, u.StreakFreezeCount); err != nil {
			logger.Log.Warn("streak sweep update failed",
				zap.String("user_id", u.ID), zap.Error(err))
			continue
		}
		result.Reset++
	}

	logger.Log.Info("streak sweep finished",
		zap.Int("scanned", result.Scanned),
		zap.Int("bridged", result.Bridged),
		zap.Int("reset", result.Reset))
	return result, nil
}
