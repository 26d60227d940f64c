package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/chainboard/job-board-api/docs"
	"github.com/chainboard/job-board-api/internal/api/handler"
	"github.com/chainboard/job-board-api/internal/api/middleware"
	"github.com/chainboard/job-board-api/internal/core/domain"
	"github.com/chainboard/job-board-api/internal/core/ports"
	"github.com/chainboard/job-board-api/internal/core/service"
	mongodb "github.com/chainboard/job-board-api/internal/infrastructure/db/mongo"
	redisdb "github.com/chainboard/job-board-api/internal/infrastructure/db/redis"
	"github.com/chainboard/job-board-api/pkg/logger"
)

// RouterConfig carries everything the HTTP layer needs that is not a live
// connection: secrets, fee policy, and behavior flags.
type RouterConfig struct {
	JWTSecret           string
	FeePolicy           domain.FeePolicy
	DoubleConfirmPolicy service.DoubleConfirmPolicy
	FeedConfirmedOnly   bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, ledger ports.LedgerReader, completion ports.TextCompletionClient, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	log := logger.Get()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("jobboard"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	jobRepo := mongodb.NewJobRepository(db)
	claimRepo := mongodb.NewClaimRepository(db)
	claimLock := redisdb.NewClaimLock(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	profileService := service.NewProfileService(userRepo, log)
	jobService := service.NewJobService(jobRepo, cfg.FeedConfirmedOnly, log)
	paymentService := service.NewPaymentService(jobRepo, claimRepo, ledger, cfg.FeePolicy, claimLock, cfg.DoubleConfirmPolicy, log)
	generativeService := service.NewGenerativeService(completion, userRepo, jobRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	jobHandler := handler.NewJobHandler(jobService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	generativeHandler := handler.NewGenerativeHandler(generativeService)

	authMiddleware := middleware.Auth(cfg.JWTSecret)
	aiLimiter := middleware.NewRateLimiter(middleware.DefaultAIRateLimiterConfig())
	// Echo's Shutdown runs the hook, ending the limiter's cleanup goroutine.
	e.Server.RegisterOnShutdown(aiLimiter.Stop)

	// --- User routes ---
	user := e.Group("/api/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)
	user.GET("/get-profile", profileHandler.Get, authMiddleware)
	user.POST("/update-profile", profileHandler.Update, authMiddleware)
	user.POST("/add-skills", profileHandler.AddSkills, authMiddleware)

	e.GET("/api/dashboard", profileHandler.Dashboard, authMiddleware)

	// --- Job routes ---
	job := e.Group("/api/job")
	job.POST("/create-job", jobHandler.Create, authMiddleware)
	job.GET("/get-jobs", jobHandler.List, authMiddleware)
	job.GET("/get-jobs-by-skill/:skill", jobHandler.ListBySkill, authMiddleware)
	job.GET("/get-jobs-by-tags/:tag", jobHandler.ListByTag, authMiddleware)
	job.GET("/get-jobs-by-location/:location", jobHandler.ListByLocation, authMiddleware)
	job.GET("/user-posts", jobHandler.UserPosts, authMiddleware)

	// --- Payment routes ---
	e.POST("/api/payment/confirm-payment", paymentHandler.Confirm, authMiddleware)

	// --- AI routes (model calls are metered per user) ---
	ai := e.Group("/api/ai", authMiddleware, aiLimiter.Middleware())
	ai.POST("/match-score", generativeHandler.MatchScore)
	ai.GET("/smart-suggestions", generativeHandler.SmartSuggestions)
	ai.POST("/extract-skills", generativeHandler.ExtractSkills)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
