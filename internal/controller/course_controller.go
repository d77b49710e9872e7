package controller

import (
	"errors"

	"lingua_backend/internal/service"
	"lingua_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	Catalog  *service.CatalogService
	Progress *service.ProgressService
}

func NewCourseController(catalog *service.CatalogService, progress *service.ProgressService) *CourseController {
	return &CourseController{Catalog: catalog, Progress: progress}
}

// ListCourses godoc
// @Summary List published courses
// @Tags catalog
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses [get]
// @Security BearerAuth
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.Catalog.ListCourses()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary Get one course
// @Tags catalog
// @Produce  json
// @Param   id path string true "Course ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response "Course not found"
// @Router /api/courses/{id} [get]
// @Security BearerAuth
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, err := c.Catalog.GetCourse(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// ListUnits godoc
// @Summary List a course's units
// @Tags catalog
// @Produce  json
// @Param   id path string true "Course ID"
// @Success 200 {object} util.Response{data=[]model.Unit}
// @Failure 404 {object} util.Response "Course not found"
// @Router /api/courses/{id}/units [get]
// @Security BearerAuth
func (c *CourseController) ListUnits(ctx *gin.Context) {
	units, err := c.Catalog.ListUnits(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, units)
}

// ListLessons godoc
// @Summary List a unit's published lessons
// @Tags catalog
// @Produce  json
// @Param   id path string true "Unit ID"
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Failure 404 {object} util.Response "Unit not found"
// @Router /api/units/{id}/lessons [get]
// @Security BearerAuth
func (c *CourseController) ListLessons(ctx *gin.Context) {
	lessons, err := c.Catalog.ListLessons(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lessons)
}

// GetLesson godoc
// @Summary Open a lesson
// @Description Returns the lesson and the caller's progress record, creating an in_progress record on first view
// @Tags catalog
// @Produce  json
// @Param   id path string true "Lesson ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 403 {object} util.Response "No access to the owning course"
// @Failure 404 {object} util.Response "Lesson not found"
// @Router /api/lessons/{id} [get]
// @Security BearerAuth
func (c *CourseController) GetLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lesson, err := c.Catalog.GetLesson(claims.UserID, claims.Role, ctx.Param("id"))
	if err != nil {
		respondCatalogError(ctx, err)
		return
	}

	progress, err := c.Progress.GetOrCreateProgress(claims.UserID, lesson.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"lesson": lesson, "progress": progress})
}

// ListQuestions godoc
// @Summary List a quiz lesson's questions
// @Description Questions come back in authored order; answer keys are stripped
// @Tags catalog
// @Produce  json
// @Param   id path string true "Lesson ID"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Failure 403 {object} util.Response "No access to the owning course"
// @Failure 404 {object} util.Response "Lesson not found"
// @Router /api/lessons/{id}/questions [get]
// @Security BearerAuth
func (c *CourseController) ListQuestions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lesson, err := c.Catalog.GetLesson(claims.UserID, claims.Role, ctx.Param("id"))
	if err != nil {
		respondCatalogError(ctx, err)
		return
	}

	questions, err := c.Catalog.ListQuestions(lesson.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	// The answer key never leaves the server; grading is server side.
	for i := range questions {
		questions[i].CorrectAnswer = nil
		questions[i].Explanation = ""
	}

	util.Success(ctx, questions)
}

// MyProgress godoc
// @Summary The caller's progress across all lessons
// @Tags catalog
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Progress}
// @Router /api/progress [get]
// @Security BearerAuth
func (c *CourseController) MyProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	records, err := c.Progress.ListProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

func respondCatalogError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrLessonNotFound),
		errors.Is(err, util.ErrLessonNotPublished),
		errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrCourseAccessDenied):
		util.Error(ctx, 403, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
