// @title LXP Core API
// @version 1.0
// @description Learning experience platform core API: activities, personal calendar, AI usage accounting.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"lxp-core/internal/adapter"
	"lxp-core/internal/adapter/contentgen"
	"lxp-core/internal/cache"
	"lxp-core/internal/config"
	"lxp-core/internal/database"
	"lxp-core/internal/handler"
	"lxp-core/internal/logger"
	"lxp-core/internal/middleware"
	"lxp-core/internal/repository"
	"lxp-core/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Initialize repositories
	userRepository := repository.NewSQLXUserRepository(db)
	usageLogRepository := repository.NewSQLXAIUsageLogRepository(db)
	calendarEventRepository := repository.NewSQLXCalendarEventRepository(db)
	activityRepository := repository.NewSQLXActivityRepository(db)

	// Initialize Redis and the cache adapter
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize the LLM content generator
	generator, err := contentgen.NewOllamaContentGenerator(cfg.LLM.ServerURL, cfg.LLM.Model)
	if err != nil {
		appLogger.Fatal("Failed to create content generator", zap.Error(err))
	}
	appLogger.Info("Content generator initialized", zap.String("model", cfg.LLM.Model))

	// Initialize services
	authService, err := service.NewAuthService(userRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	userService := service.NewUserService(userRepository)
	usageService := service.NewUsageService(usageLogRepository)
	calendarService := service.NewCalendarService(calendarEventRepository)
	activityService := service.NewActivityService(activityRepository, generator, usageService, cacheAdapter, cfg.CacheTTL.Activity)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg)
	userHandler := handler.NewUserHandler(userService)
	usageHandler := handler.NewUsageHandler(usageService)
	calendarHandler := handler.NewCalendarHandler(calendarService)
	activityHandler := handler.NewActivityHandler(activityService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PATCH,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	validationMW := middleware.NewValidationMiddleware()

	// API group
	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Get("/google/login", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// User routes (all protected)
	userGroup := apiGroup.Group("/users", middleware.Protected(authService))
	userGroup.Get("/me", userHandler.GetMyProfile)
	userGroup.Delete("/me", userHandler.DeleteMyAccount)
	userGroup.Get("/me/usage", validationMW.ValidatePagination(), usageHandler.GetMyUsageLogs)
	userGroup.Get("/me/usage/summary", usageHandler.GetMyUsageSummary)

	// Calendar routes (all protected)
	calendarGroup := apiGroup.Group("/calendar", middleware.Protected(authService))
	calendarGroup.Post("/events", calendarHandler.CreateEvent)
	calendarGroup.Get("/events", calendarHandler.ListEvents)
	calendarGroup.Get("/events/:id", calendarHandler.GetEvent)
	calendarGroup.Patch("/events/:id", calendarHandler.UpdateEvent)
	calendarGroup.Delete("/events/:id", calendarHandler.DeleteEvent)

	// Activity routes (all protected)
	activityGroup := apiGroup.Group("/activities", middleware.Protected(authService))
	activityGroup.Post("/", activityHandler.CreateActivity)
	activityGroup.Get("/", validationMW.ValidatePagination(), activityHandler.ListActivities)
	activityGroup.Post("/draft", activityHandler.GenerateDraft)
	activityGroup.Get("/:id", activityHandler.GetActivity)
	activityGroup.Delete("/:id", activityHandler.DeleteActivity)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
