package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/handlers"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/middleware"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/routes"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/comment"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/extension"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/project"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/task"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/user"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/workspace"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/infrastructure/cache"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/infrastructure/persistence/postgres/connection"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/infrastructure/persistence/postgres/migrations"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/infrastructure/scheduler"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/pkg/config"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("") // Empty string will make it search in default locations
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	log := logger.NewLoggerFromConfig(cfg.Logging)
	defer log.Sync()

	log.Info("Configuration loaded successfully")
	log.Info("Server mode: " + cfg.Server.Mode)

	// Set up Gin
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	gin.DefaultWriter = os.Stdout

	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))
	router.Use(middleware.NewMetricsMiddleware().CollectMetrics())
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     append(cfg.CORS.AllowedHeaders, "Content-Type", "Authorization"),
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		// cors.New rejects a config with neither origins nor the wildcard
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	router.Use(cors.New(corsConfig))

	// Add Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Connect to database
	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize Redis
	redisConfig := cache.NewConfigFromEnv(cfg)
	redisClient, err := cache.NewRedisClient(redisConfig)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	userRepo := user.NewRepository(db)
	workspaceRepo := workspace.NewRepository(db)
	projectRepo := project.NewRepository(db)
	taskRepo := task.NewRepository(db)
	commentRepo := comment.NewRepository(db)
	extensionRepo := extension.NewRepository(db)

	// Initialize services
	userService := user.NewService(userRepo, cfg, log.Logger)
	workspaceService := workspace.NewService(workspaceRepo, log.Logger)
	projectService := project.NewService(projectRepo)
	taskService := task.NewService(taskRepo, workspaceRepo, redisClient, log.Logger)

	// Initialize notification system
	notificationSystem := SetupNotificationSystem(
		db,
		workspaceRepo,
		userService,
		cfg,
		cfg.Server.Mode != "production",
	)

	commentService := comment.NewService(commentRepo, notificationSystem.Mentions, redisClient, log.Logger)
	extensionService := extension.NewService(
		extensionRepo, taskRepo, workspaceRepo, notificationSystem.Service, redisClient, log.Logger)

	// Initialize and start the recurring task scheduler
	generator := task.NewGenerator(taskRepo, redisClient, log.Logger)
	recurringScheduler := scheduler.NewScheduler(generator, redisClient, log)
	recurringScheduler.Start()
	defer recurringScheduler.Stop()
	log.Info("Recurring task scheduler started successfully")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService, userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	commentHandler := handlers.NewCommentHandler(commentService)
	notificationHandler := handlers.NewNotificationHandler(notificationSystem.Service, cfg.Auth.JWTSecret, log)
	extensionHandler := handlers.NewExtensionHandler(extensionService, taskService)

	// Health check routes (no /api prefix as these are system endpoints)
	routes.SetupHealthRoutes(router, db, redisClient)

	// Register API routes
	routes.NewAuthRoutes(authHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewWorkspaceRoutes(workspaceHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewProjectRoutes(projectHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewTaskRoutes(taskHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewCommentRoutes(commentHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewNotificationRoutes(notificationHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)
	routes.NewExtensionRoutes(extensionHandler, cfg.Auth.JWTSecret).RegisterRoutes(router)

	for _, route := range router.Routes() {
		log.Info("Route registered",
			zap.String("method", route.Method),
			zap.String("path", route.Path))
	}

	// Start the server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownTimeout := cfg.Server.Timeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
