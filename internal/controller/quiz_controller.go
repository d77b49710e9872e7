package controller

import (
	"errors"
	"strconv"

	"lingua_backend/internal/service"
	"lingua_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// CompleteQuizRequest is the full answer set for one quiz attempt.
// swagger:model CompleteQuizRequest
type CompleteQuizRequest struct {
	Answers []service.AnswerSubmission `json:"answers" binding:"required"`
}

// CheckAnswer godoc
// @Summary Grade one answer
// @Description Returns immediate feedback with the correct answer and explanation
// @Tags quiz
// @Accept  json
// @Produce  json
// @Param   body body service.AnswerSubmission true "Submitted answer"
// @Success 200 {object} util.Response{data=service.AnswerFeedback}
// @Failure 400 {object} util.Response "Invalid request body or unusable question"
// @Failure 403 {object} util.Response "No access to the owning course"
// @Failure 404 {object} util.Response "Question not found"
// @Router /api/quiz/check [post]
// @Security BearerAuth
func (c *QuizController) CheckAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var sub service.AnswerSubmission
	if err := ctx.ShouldBindJSON(&sub); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	feedback, err := c.QuizService.CheckAnswer(claims.UserID, claims.Role, sub)
	if err != nil {
		respondQuizError(ctx, err)
		return
	}
	util.Success(ctx, feedback)
}

// CompleteQuiz godoc
// @Summary Finish a quiz attempt
// @Description Re-grades every answer server side, scores the session and applies XP, level and streak changes atomically
// @Tags quiz
// @Accept  json
// @Produce  json
// @Param   id path string true "Lesson ID"
// @Param   body body CompleteQuizRequest true "All submitted answers"
// @Success 200 {object} util.Response{data=service.QuizCompletion}
// @Failure 400 {object} util.Response "Not a quiz, or the quiz has no questions"
// @Failure 403 {object} util.Response "No access to the owning course"
// @Failure 404 {object} util.Response "Lesson not found"
// @Router /api/lessons/{id}/complete-quiz [post]
// @Security BearerAuth
func (c *QuizController) CompleteQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CompleteQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	completion, err := c.QuizService.CompleteQuiz(claims.UserID, claims.Role, ctx.Param("id"), req.Answers)
	if err != nil {
		respondQuizError(ctx, err)
		return
	}
	util.Success(ctx, completion)
}

// CompleteLesson godoc
// @Summary Complete a non-quiz lesson
// @Description Marks a video, pdf or live class lesson completed with full XP credit
// @Tags quiz
// @Produce  json
// @Param   id path string true "Lesson ID"
// @Success 200 {object} util.Response{data=service.QuizCompletion}
// @Failure 400 {object} util.Response "Lesson is a quiz; use complete-quiz"
// @Failure 403 {object} util.Response "No access to the owning course"
// @Failure 404 {object} util.Response "Lesson not found"
// @Router /api/lessons/{id}/complete [post]
// @Security BearerAuth
func (c *QuizController) CompleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	completion, err := c.QuizService.CompleteLesson(claims.UserID, claims.Role, ctx.Param("id"))
	if err != nil {
		respondQuizError(ctx, err)
		return
	}
	util.Success(ctx, completion)
}

// AttemptHistory godoc
// @Summary The caller's past answers to one question
// @Tags quiz
// @Produce  json
// @Param   id path string true "Question ID"
// @Param   limit query int false "Max entries (default 10)"
// @Success 200 {object} util.Response{data=[]model.QuestionAttempt}
// @Failure 403 {object} util.Response "No access to the owning course"
// @Failure 404 {object} util.Response "Question not found"
// @Router /api/questions/{id}/attempts [get]
// @Security BearerAuth
func (c *QuizController) AttemptHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	attempts, err := c.QuizService.AttemptHistory(claims.UserID, claims.Role, ctx.Param("id"), limit)
	if err != nil {
		respondQuizError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

func respondQuizError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrLessonNotFound),
		errors.Is(err, util.ErrLessonNotPublished),
		errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrCourseAccessDenied):
		util.Error(ctx, 403, err.Error())
	case errors.Is(err, util.ErrNotAQuiz),
		errors.Is(err, util.ErrEmptyQuiz),
		errors.Is(err, util.ErrUnknownQuestionType),
		errors.Is(err, util.ErrMalformedAnswerKey),
		errors.Is(err, util.ErrProgressRegression):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
