package controller

import (
	"errors"
	"strconv"
	"time"

	"lingua_backend/internal/repository"
	"lingua_backend/internal/service"
	"lingua_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminController groups the management endpoints: user listing, login
// gating, course access grants and the manual gamification triggers.
type AdminController struct {
	UserService  *service.UserService
	Gamification *service.GamificationService
}

func NewAdminController(userService *service.UserService, gamification *service.GamificationService) *AdminController {
	return &AdminController{
		UserService:  userService,
		Gamification: gamification,
	}
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce  json
// @Param   page query int false "Page (default 1)"
// @Param   limit query int false "Page size (default 20)"
// @Param   role query string false "Filter by role"
// @Param   search query string false "Match name or email"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/users [get]
// @Security BearerAuth
func (c *AdminController) ListUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	filter := repository.UserFilter{
		Role:   ctx.Query("role"),
		Search: ctx.Query("search"),
	}

	users, total, err := c.UserService.ListUsers(page, limit, filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  users,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// LoginEnabledRequest toggles an account's login gate.
// swagger:model LoginEnabledRequest
type LoginEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SetLoginEnabled godoc
// @Summary Enable or disable an account's login
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   id path string true "User ID"
// @Param   body body LoginEnabledRequest true "New state"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "User not found"
// @Router /api/admin/users/{id}/login-enabled [put]
// @Security BearerAuth
func (c *AdminController) SetLoginEnabled(ctx *gin.Context) {
	var req LoginEnabledRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.SetLoginEnabled(ctx.Param("id"), *req.Enabled); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// GrantAccessRequest grants a user entry to one course.
// swagger:model GrantAccessRequest
type GrantAccessRequest struct {
	CourseID  string     `json:"courseId" binding:"required"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// GrantCourseAccess godoc
// @Summary Grant course access to a user
// @Description Granting twice refreshes the existing grant
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   id path string true "User ID"
// @Param   body body GrantAccessRequest true "Course and optional expiry"
// @Success 201 {object} util.Response{data=model.CourseAccess}
// @Failure 404 {object} util.Response "User or course not found"
// @Router /api/admin/users/{id}/access [post]
// @Security BearerAuth
func (c *AdminController) GrantCourseAccess(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req GrantAccessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	access, err := c.UserService.GrantCourseAccess(claims.UserID, ctx.Param("id"), req.CourseID, req.ExpiresAt)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) || errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, access)
}

// RevokeCourseAccess godoc
// @Summary Revoke a user's course access
// @Tags admin
// @Produce  json
// @Param   id path string true "User ID"
// @Param   courseId path string true "Course ID"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id}/access/{courseId} [delete]
// @Security BearerAuth
func (c *AdminController) RevokeCourseAccess(ctx *gin.Context) {
	if err := c.UserService.RevokeCourseAccess(ctx.Param("id"), ctx.Param("courseId")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListCourseAccess godoc
// @Summary List a user's course grants
// @Tags admin
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} util.Response{data=[]model.CourseAccess}
// @Failure 404 {object} util.Response "User not found"
// @Router /api/admin/users/{id}/access [get]
// @Security BearerAuth
func (c *AdminController) ListCourseAccess(ctx *gin.Context) {
	grants, err := c.UserService.ListCourseAccess(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, grants)
}

// RecomputeAchievements godoc
// @Summary Re-run achievement checks for a user
// @Description Awards anything the user's current stats satisfy; useful after backfills
// @Tags admin
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} util.Response{data=[]model.Achievement}
// @Router /api/admin/users/{id}/achievements/recompute [post]
// @Security BearerAuth
func (c *AdminController) RecomputeAchievements(ctx *gin.Context) {
	granted, err := c.Gamification.CheckAchievements(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, granted)
}

// SweepStreaks godoc
// @Summary Run the streak sweep now
// @Description Settles streaks for users who missed a day, outside the scheduled run
// @Tags admin
// @Produce  json
// @Success 200 {object} util.Response{data=service.SweepResult}
// @Router /api/admin/streaks/sweep [post]
// @Security BearerAuth
func (c *AdminController) SweepStreaks(ctx *gin.Context) {
	result, err := c.Gamification.SweepStreaks(time.Now())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
