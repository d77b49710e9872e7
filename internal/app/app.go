package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lingua_backend/internal/config"
	"lingua_backend/internal/controller"
	"lingua_backend/internal/repository"
	"lingua_backend/internal/service"
	"lingua_backend/pkg/configwatcher"
	"lingua_backend/pkg/database"
	"lingua_backend/pkg/logger"
	"lingua_backend/pkg/monitoring"
	"lingua_backend/pkg/security"
	"lingua_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	course      *repository.CourseRepository
	lesson      *repository.LessonRepository
	question    *repository.QuestionRepository
	attempt     *repository.AttemptRepository
	progress    *repository.ProgressRepository
	achievement *repository.AchievementRepository
	activity    *repository.ActivityRepository
}

type services struct {
	auth         *service.AuthService
	catalog      *service.CatalogService
	progress     *service.ProgressService
	quiz         *service.QuizService
	gamification *service.GamificationService
	user         *service.UserService
}

type controllers struct {
	auth         *controller.AuthController
	course       *controller.CourseController
	quiz         *controller.QuizController
	gamification *controller.GamificationController
	admin        *controller.AdminController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		course:      repository.NewCourseRepository(db),
		lesson:      repository.NewLessonRepository(db),
		question:    repository.NewQuestionRepository(db),
		attempt:     repository.NewAttemptRepository(db),
		progress:    repository.NewProgressRepository(db),
		achievement: repository.NewAchievementRepository(db),
		activity:    repository.NewActivityRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.catalog = service.NewCatalogService(repos.course, repos.lesson, repos.question)
	s.progress = service.NewProgressService(repos.progress, repos.user, repos.activity, db)
	s.gamification = service.NewGamificationService(
		repos.user,
		repos.achievement,
		repos.progress,
		repos.attempt,
		repos.activity,
		rdb,
		cfg,
	)
	s.quiz = service.NewQuizService(
		repos.question,
		repos.attempt,
		repos.user,
		s.catalog,
		s.progress,
		s.gamification,
	)
	s.user = service.NewUserService(repos.user, repos.course)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		course:       controller.NewCourseController(s.catalog, s.progress),
		quiz:         controller.NewQuizController(s.quiz),
		gamification: controller.NewGamificationController(s.gamification),
		admin:        controller.NewAdminController(s.user, s.gamification),
		health:       controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if maxRequests > 0 && window > 0 {
		router.Use(security.RateLimiter(maxRequests, window))
	}

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services) {
	if a.Config.StreakSweep.Enabled {
		go func() {
			interval := time.Duration(a.Config.StreakSweep.IntervalMinutes) * time.Minute
			ticker := time.NewTicker(interval)
			for range ticker.C {
				if _, err := s.gamification.SweepStreaks(time.Now()); err != nil {
					logger.Log.Error("streak sweep error", zap.Error(err))
				}
			}
		}()
	}

	// Lapsed trials flip to unpaid once an hour.
	go func() {
		ticker := time.NewTicker(time.Hour)
		for range ticker.C {
			if err := s.user.ExpireTrials(time.Now()); err != nil {
				logger.Log.Error("trial expiry error", zap.Error(err))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	// Release deployments migrate only when asked to; debug migrates freely.
	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("lingua-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, cfg)

	// Tunables that are read per request or per tick can change without a
	// restart; everything else needs one.
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		cfg.Leaderboard = newCfg.Leaderboard
		cfg.StreakSweep.Enabled = newCfg.StreakSweep.Enabled
		cfg.Registration = newCfg.Registration
		logger.Log.Info("runtime config reloaded")
	})
	go configwatcher.WatchConfig("configs/config.yaml", func(raw interface{}) {
		newCfg, ok := raw.(*config.Config)
		if !ok {
			return
		}
		for _, cb := range app.configCallbacks {
			cb(newCfg)
		}
	})

	app.startBackgroundTasks(services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
