// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "courtmap/docs" // swagger docs
	"courtmap/internal/cache"
	"courtmap/internal/config"
	"courtmap/internal/database"
	"courtmap/internal/middleware"
	"courtmap/internal/models"
	"courtmap/internal/repository"
	"courtmap/internal/service"
	"courtmap/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	store          storage.PhotoStorage
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo       repository.UserRepository
	courtRepo      repository.CourtRepository
	suggestionRepo repository.SuggestionRepository
	reviewRepo     repository.ReviewRepository
	photoRepo      repository.PhotoRepository
	reportRepo     repository.ReportRepository
	banRepo        repository.BanRepository

	userService       *service.UserService
	courtService      *service.CourtService
	suggestionService *service.SuggestionService
	reviewService     *service.ReviewService
	photoService      *service.PhotoService
	banService        *service.BanService
	moderationService *service.ModerationService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	store, err := storage.NewS3(context.Background(), storage.S3Config{
		Region:          cfg.S3Region,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Bucket:          cfg.S3Bucket,
	}, middleware.Logger)
	if err != nil {
		return nil, fmt.Errorf("object storage init failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, redisClient, store)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis/storage and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, store storage.PhotoStorage) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	courtRepo := repository.NewCourtRepository(db)
	suggestionRepo := repository.NewSuggestionRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	reportRepo := repository.NewReportRepository(db)
	banRepo := repository.NewBanRepository(db)

	middleware.InitMiddleware(cfg)
	middleware.SetRevocationClient(redisClient)

	prom := middleware.InitMetrics("courtmap-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		store:          store,
		promMiddleware: prom,
		userRepo:       userRepo,
		courtRepo:      courtRepo,
		suggestionRepo: suggestionRepo,
		reviewRepo:     reviewRepo,
		photoRepo:      photoRepo,
		reportRepo:     reportRepo,
		banRepo:        banRepo,
	}

	server.userService = service.NewUserService(userRepo)
	server.courtService = service.NewCourtService(courtRepo)
	server.banService = service.NewBanService(banRepo, userRepo)
	server.suggestionService = service.NewSuggestionService(suggestionRepo, courtRepo, userRepo, server.banService)
	server.reviewService = service.NewReviewService(reviewRepo, courtRepo, server.banService, server.isAdminByUserID)
	server.photoService = service.NewPhotoService(photoRepo, courtRepo, store, server.banService, server.isAdminByUserID, cfg.PhotoMaxUploadSizeMB)
	server.moderationService = service.NewModerationService(reportRepo, reviewRepo, photoRepo, suggestionRepo, store)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Distributed tracing
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Courtmap Backend Metrics Dashboard",
	}))

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.Logout)

	// Public court routes (browse). OptionalAuth picks up a Bearer token when
	// one is sent so signed-in browsing carries the user through to logging.
	publicCourts := api.Group("/tennis-courts", middleware.OptionalAuth)
	publicCourts.Get("/", s.GetCourts)
	// Define specific /:id/:resource routes BEFORE generic /:id route
	publicCourts.Get("/:id/reviews", s.GetReviews)
	publicCourts.Get("/:id/photos", s.GetPhotos)
	publicCourts.Get("/:id/edit-suggestions", s.GetSuggestions)
	publicCourts.Get("/:id", s.GetCourt)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// User routes
	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)

	// Content submission and the suggestion workflow
	courts := protected.Group("/tennis-courts")
	courts.Post("/:id/edit-suggestions", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "create_suggestion"), s.CreateSuggestion)
	courts.Patch("/:id/edit-suggestions/:suggestionId", s.UpdateSuggestion)
	courts.Put("/:id/edit-suggestions/:suggestionId", s.ReviewSuggestion)
	courts.Delete("/:id/edit-suggestions/:suggestionId", s.DeleteSuggestion)
	courts.Post("/:id/reviews", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "create_review"), s.CreateReview)
	courts.Post("/:id/photos", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "upload_photo"), s.UploadPhoto)

	// Own-content management and reporting
	reviews := protected.Group("/reviews")
	reviews.Put("/:id", s.UpdateReview)
	reviews.Delete("/:id", s.DeleteReview)
	reviews.Post("/:id/report", middleware.RateLimit(
		s.redis, 10, 10*time.Minute, "report"), s.ReportReview)

	photos := protected.Group("/court-photos")
	photos.Delete("/:id", s.DeletePhoto)
	photos.Post("/:id/report", middleware.RateLimit(
		s.redis, 10, 10*time.Minute, "report"), s.ReportPhoto)

	protected.Post("/edit-suggestions/:id/report", middleware.RateLimit(
		s.redis, 10, 10*time.Minute, "report"), s.ReportSuggestion)

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())
	admin.Get("/reports", s.GetReports)
	admin.Post("/reports/clear", s.ClearReports)
	admin.Post("/reports/:id/dismiss", s.DismissReport)
	admin.Post("/reports/:id/delete-content", s.DeleteReportedContent)
	admin.Get("/court-suggestions", s.GetPendingSuggestions)
	admin.Get("/user-bans", s.GetBans)
	admin.Post("/user-bans", s.CreateBan)
	admin.Delete("/user-bans/:id", s.RevokeBan)
	admin.Get("/users/:id/bans", s.GetUserBans)
	admin.Post("/users/:id/promote-admin", s.PromoteToAdmin)
	admin.Post("/users/:id/demote-admin", s.DemoteFromAdmin)
	admin.Post("/tennis-courts", s.CreateCourt)
	admin.Put("/tennis-courts/:id", s.UpdateCourt)
	admin.Delete("/tennis-courts/:id", s.DeleteCourt)
	admin.Delete("/reviews/:id", s.DeleteReview)
	admin.Delete("/court-photos/:id", s.DeletePhoto)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so that userID is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		admin, err := s.isAdminByUserID(c.UserContext(), userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admin access required"))
		}

		return c.Next()
	}
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return middleware.AuthRequired
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "Courtmap API",
		BodyLimit: (s.config.PhotoMaxUploadSizeMB + 1) * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
