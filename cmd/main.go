package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"profilematch/config"
	"profilematch/database"
	"profilematch/docs"
	"profilematch/internal/cache"
	"profilematch/internal/controllers"
	"profilematch/internal/events"
	"profilematch/internal/logger"
	"profilematch/internal/matching"
	"profilematch/internal/messaging"
	"profilematch/internal/middleware"
	"profilematch/internal/ratelimit"
	"profilematch/internal/repository"
	"profilematch/internal/services"
	"profilematch/internal/validation"
	"profilematch/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// @title Profile Match API
// @version 1.0
// @description User profile directory with compatibility matching.
// @BasePath /
func main() {
	if err := run(); err != nil {
		log.Fatalf("profilematch: %v", err)
	}
}

// run wires the service and blocks until a shutdown signal arrives or the
// server fails. Every resource it opens is released before it returns.
func run() error {
	cfg, err := config.Load(".env", "../.env")
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer zlog.Sync()

	docs.SwaggerInfo.Title = "Profile Match API"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.ConnectDatabase(cfg.Database, cfg.App.Name)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := database.MigrateDatabase(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	database.MonitorDBConnections(ctx, db, 10*time.Second)

	healthChecks := []routes.HealthCheck{{
		Name:  "database",
		Check: func(ctx context.Context) error { return database.Ping(ctx, db) },
	}}

	// Rate limiter: shared Redis window when configured, per-process buckets
	// otherwise.
	rule := ratelimit.Rule{Limit: cfg.RateLimit.Requests, Window: cfg.RateLimit.Window}
	var limiter ratelimit.Limiter
	if cfg.Redis.URL != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redisClient.Close()

		limiter = ratelimit.NewRedisLimiter(redisClient.Client(), rule)
		healthChecks = append(healthChecks, routes.HealthCheck{
			Name:    "redis",
			Check:   redisClient.Ping,
			Details: redisClient.GetStatus,
		})
		log.Println("Rate limiting via Redis")
	} else {
		memLimiter := ratelimit.NewMemoryLimiter(rule)
		go memLimiter.Run(ctx, 5*time.Minute)
		limiter = memLimiter
		log.Println("Rate limiting in memory")
	}

	observers := []events.Observer{
		events.NewLogObserver(zlog.Named("events")),
		events.NewMetricsObserver(),
	}
	if cfg.NATS.URL != "" {
		natsCfg := messaging.DefaultNATSConfig()
		natsCfg.URL = cfg.NATS.URL
		natsCfg.Name = cfg.App.Name

		natsClient, err := messaging.NewNATSClient(natsCfg, zlog.Named("nats"))
		if err != nil {
			return fmt.Errorf("connect nats: %w", err)
		}
		defer natsClient.Close()

		observers = append(observers, events.NewPublishObserver(natsClient, cfg.NATS.SubjectPrefix, zlog.Named("events")))
	}

	if err := validation.Register(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}

	router := newRouter(cfg, db, limiter, events.Multi(observers...), zlog, healthChecks)

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on port %s", cfg.App.Port)
		log.Printf("Health Check: http://localhost:%s/health", cfg.App.Port)
		log.Printf("API Documentation: http://localhost:%s/swagger/index.html", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newRouter(
	cfg *config.Config,
	db *gorm.DB,
	limiter ratelimit.Limiter,
	observer events.Observer,
	zlog *zap.Logger,
	healthChecks []routes.HealthCheck,
) *gin.Engine {
	gin.SetMode(cfg.App.GinMode)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(zlog.Named("http")))

	userRepo := repository.NewUserRepository(db)
	userService := services.NewUserService(userRepo, matching.NewEngine(), observer)
	userController := controllers.NewUserController(userService)

	routes.RegisterHealthRoutes(router, cfg.App.Name, healthChecks...)
	routes.RegisterSwaggerRoutes(router)
	routes.RegisterUserRoutes(router, userController, middleware.RateLimit(limiter, zlog.Named("ratelimit")))

	return router
}
