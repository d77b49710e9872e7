package app

import (
	"lingua_backend/docs"
	"lingua_backend/internal/config"
	"lingua_backend/internal/middleware"
	"lingua_backend/internal/model"
	"lingua_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.Profile)
		authGroup.PUT("/profile", c.auth.UpdateProfile)

		// Catalog
		authGroup.GET("/courses", c.course.ListCourses)
		authGroup.GET("/courses/:id", c.course.GetCourse)
		authGroup.GET("/courses/:id/units", c.course.ListUnits)
		authGroup.GET("/units/:id/lessons", c.course.ListLessons)
		authGroup.GET("/lessons/:id", c.course.GetLesson)
		authGroup.GET("/lessons/:id/questions", c.course.ListQuestions)
		authGroup.GET("/progress", c.course.MyProgress)

		// Grading and completion
		authGroup.POST("/quiz/check", c.quiz.CheckAnswer)
		authGroup.GET("/questions/:id/attempts", c.quiz.AttemptHistory)
		authGroup.POST("/lessons/:id/complete-quiz", c.quiz.CompleteQuiz)
		authGroup.POST("/lessons/:id/complete", c.quiz.CompleteLesson)

		// Gamification
		authGroup.GET("/leaderboard", c.gamification.Leaderboard)
		authGroup.GET("/achievements", c.gamification.ListAchievements)
		authGroup.GET("/activity", c.gamification.MyFeed)
		authGroup.GET("/activity/recent", c.gamification.RecentActivity)
	}

	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.admin.ListUsers)
		admin.PUT("/users/:id/login-enabled", c.admin.SetLoginEnabled)
		admin.GET("/users/:id/access", c.admin.ListCourseAccess)
		admin.POST("/users/:id/access", c.admin.GrantCourseAccess)
		admin.DELETE("/users/:id/access/:courseId", c.admin.RevokeCourseAccess)
		admin.POST("/users/:id/achievements/recompute", c.admin.RecomputeAchievements)
		admin.POST("/streaks/sweep", c.admin.SweepStreaks)
	}
}
