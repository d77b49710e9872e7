package controller

import (
	"errors"

	"lingua_backend/internal/service"
	"lingua_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// LoginRequest carries the login request body.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary Register a new learner account
// @Description Creates a student account on a time-limited trial
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body service.RegisterInput true "Registration details"
// @Success 201 {object} util.Response{data=object} "Account created"
// @Failure 400 {object} util.Response "Invalid request body"
// @Failure 409 {object} util.Response "Email already registered"
// @Failure 500 {object} util.Response "Internal server error"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var input service.RegisterInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.Register(input)
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Conflict(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": user.ID, "trialEndDate": user.TrialEndDate})
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and returns a bearer token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "Credentials"
// @Success 200 {object} util.Response{data=object} "Token and profile"
// @Failure 401 {object} util.Response "Invalid credentials"
// @Failure 403 {object} util.Response "Login disabled"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidCredentials):
			util.Error(ctx, 401, err.Error())
		case errors.Is(err, util.ErrLoginDisabled):
			util.Error(ctx, 403, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"token": token, "user": user})
}

// Profile godoc
// @Summary Current user profile
// @Description Returns the authenticated user's profile with XP, level and streak
// @Tags auth
// @Produce  json
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response "Unauthorized"
// @Router /api/profile [get]
// @Security BearerAuth
func (c *AuthController) Profile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.AuthService.GetProfile(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}

// UpdateProfile godoc
// @Summary Update the caller's display name or avatar
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body service.UpdateProfileInput true "Fields to change"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response "Unauthorized"
// @Router /api/profile [put]
// @Security BearerAuth
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.UpdateProfileInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.UpdateProfile(claims.UserID, input)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}
