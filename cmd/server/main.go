package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/surya-platform/service-storefront/internal/auth"
	"github.com/surya-platform/service-storefront/internal/config"
	"github.com/surya-platform/service-storefront/internal/database"
	"github.com/surya-platform/service-storefront/internal/events"
	"github.com/surya-platform/service-storefront/internal/handlers"
	"github.com/surya-platform/service-storefront/internal/logger"
	"github.com/surya-platform/service-storefront/internal/middleware"
	"github.com/surya-platform/service-storefront/internal/monitoring"
	"github.com/surya-platform/service-storefront/internal/observability"
	"github.com/surya-platform/service-storefront/internal/repository"
	"github.com/surya-platform/service-storefront/internal/routes"
	"github.com/surya-platform/service-storefront/internal/services"
)

func main() {
	// Load .env file in development
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize Sentry for error tracking
	sentryMonitor, err := monitoring.NewSentryMonitor(&monitoring.SentryConfig{
		DSN:              cfg.Sentry.DSN,
		Environment:      cfg.Sentry.Environment,
		Release:          cfg.Sentry.Release,
		ServiceName:      "storefront-service",
		TracesSampleRate: 0.1,
	}, zapLogger)
	if err != nil {
		zapLogger.Warn("Failed to initialize Sentry", zap.Error(err))
	}
	defer sentryMonitor.Flush(2 * time.Second)

	// Connect to database
	db, err := database.Connect(cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	// Initialize JWT manager for auth middleware
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, 15*time.Minute)

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	serviceRepo := repository.NewServiceRepository(db)

	// Connect to Redis for the snapshot cache (optional)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		zapLogger.Warn("Redis unavailable, dashboard snapshot caching disabled", zap.Error(err))
		redisClient = nil
	}

	cacheService := services.NewDashboardCacheService(redisClient, cfg.Dashboard.CacheTTL, zapLogger)

	// Initialize dashboard statistics service
	dashboardService := services.NewDashboardService(
		orderRepo,
		userRepo,
		productRepo,
		serviceRepo,
		services.NewStaticTrendProvider(),
		zapLogger,
	)

	// Connect to NATS (optional - only if configured)
	var natsConn *nats.Conn
	var eventPublisher *events.Publisher
	var eventSubscriber *events.Subscriber

	if cfg.NATS.URL != "" {
		natsConn, err = nats.Connect(cfg.NATS.URL)
		if err != nil {
			zapLogger.Warn("Failed to connect to NATS, event-driven cache invalidation disabled", zap.Error(err))
		} else {
			zapLogger.Info("Connected to NATS", zap.String("url", cfg.NATS.URL))
			eventPublisher = events.NewPublisher(natsConn, zapLogger)

			eventSubscriber = events.NewSubscriber(natsConn, cacheService, zapLogger)
			if err := eventSubscriber.Start(); err != nil {
				zapLogger.Warn("Failed to start event subscriber", zap.Error(err))
			}
		}
	}

	// Initialize admin service
	adminService := services.NewAdminService(userRepo, orderRepo, eventPublisher, zapLogger)

	// Initialize Prometheus metrics
	metrics := observability.NewMetrics()

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, cacheService, metrics, zapLogger)
	userHandler := handlers.NewUserHandler(adminService, zapLogger)
	orderHandler := handlers.NewOrderHandler(adminService, zapLogger)

	// Start dashboard cache warmer
	var warmer *services.DashboardWarmer
	if cfg.Dashboard.WarmInterval != "" && redisClient != nil {
		warmer, err = services.NewDashboardWarmer(cfg.Dashboard.WarmInterval, dashboardService, cacheService, zapLogger)
		if err != nil {
			zapLogger.Warn("Failed to initialize dashboard cache warmer", zap.Error(err))
		} else {
			warmer.Start()
		}
	}

	// Set Gin mode
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := gin.New()

	// Apply global middleware
	router.Use(sentryMonitor.GinMiddleware())
	router.Use(sentryMonitor.RecoveryMiddleware())
	router.Use(middleware.LoggerMiddleware(zapLogger))
	router.Use(metrics.GinMiddleware())

	// CORS - use environment-based configuration
	allowedOrigins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")
	router.Use(middleware.CORSWithOrigins(allowedOrigins))

	// Security headers
	router.Use(middleware.SecurityHeaders())

	// Rate limiting (50 requests per second, burst 100)
	rateLimiter := middleware.NewRateLimiter(50, 100)
	rateLimiter.CleanupLimiters()
	router.Use(rateLimiter.Middleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "storefront",
			"time":    time.Now().UTC(),
		})
	})

	// Prometheus metrics
	router.GET("/metrics", metrics.Handler())

	// Setup routes using the routes package
	routes.SetupRoutes(router, &routes.RouteConfig{
		DashboardHandler: dashboardHandler,
		UserHandler:      userHandler,
		OrderHandler:     orderHandler,
		JWTManager:       jwtManager,
	})

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		zapLogger.Info("🚀 Storefront service starting on port " + cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	if warmer != nil {
		warmer.Stop()
	}
	if eventSubscriber != nil {
		eventSubscriber.Stop()
	}
	if natsConn != nil {
		natsConn.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
