package controller

import (
	"strconv"

	"lingua_backend/internal/service"
	"lingua_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GamificationController struct {
	Gamification *service.GamificationService
}

func NewGamificationController(gamification *service.GamificationService) *GamificationController {
	return &GamificationController{Gamification: gamification}
}

// Leaderboard godoc
// @Summary XP leaderboard
// @Description Top users by XP, cached for a short interval
// @Tags gamification
// @Produce  json
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry}
// @Router /api/leaderboard [get]
// @Security BearerAuth
func (c *GamificationController) Leaderboard(ctx *gin.Context) {
	entries, err := c.Gamification.Leaderboard(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// ListAchievements godoc
// @Summary All achievements with the caller's earned state
// @Tags gamification
// @Produce  json
// @Success 200 {object} util.Response{data=[]service.AchievementView}
// @Router /api/achievements [get]
// @Security BearerAuth
func (c *GamificationController) ListAchievements(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	views, err := c.Gamification.ListAchievements(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// MyFeed godoc
// @Summary The caller's activity feed
// @Tags gamification
// @Produce  json
// @Param   limit query int false "Max entries (default 50)"
// @Success 200 {object} util.Response{data=[]model.ActivityEntry}
// @Router /api/activity [get]
// @Security BearerAuth
func (c *GamificationController) MyFeed(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	entries, err := c.Gamification.MyFeed(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// RecentActivity godoc
// @Summary Recent public activity across all learners
// @Tags gamification
// @Produce  json
// @Param   limit query int false "Max entries (default 50)"
// @Success 200 {object} util.Response{data=[]model.ActivityEntry}
// @Router /api/activity/recent [get]
// @Security BearerAuth
func (c *GamificationController) RecentActivity(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	entries, err := c.Gamification.RecentActivity(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
