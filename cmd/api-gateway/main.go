package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/tutor-match-api/api/swagger"
	"github.com/noah-isme/tutor-match-api/internal/handler"
	"github.com/noah-isme/tutor-match-api/internal/middleware"
	"github.com/noah-isme/tutor-match-api/internal/repository"
	"github.com/noah-isme/tutor-match-api/internal/service"
	"github.com/noah-isme/tutor-match-api/pkg/cache"
	"github.com/noah-isme/tutor-match-api/pkg/config"
	"github.com/noah-isme/tutor-match-api/pkg/database"
	"github.com/noah-isme/tutor-match-api/pkg/jobs"
	"github.com/noah-isme/tutor-match-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/tutor-match-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/tutor-match-api/pkg/middleware/requestid"
)

// @title Tutor Match API
// @version 1.0.0
// @description Matches students with tutors by subject, week day and time of day.
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	db, err := database.NewPostgres(context.Background(), cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(context.Background(), db, logr); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisRequired() {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redisClient.Close()
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := service.NewMetricsService()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.WithResponseMeta())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	handlers, stop := buildHandlers(ctx, cfg, db, redisClient, metrics, logr)
	defer stop()
	handler.RegisterRoutes(r, cfg.APIPrefix, handlers)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		serverErrors <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case sig := <-quit:
		logr.Info("shutdown requested", zap.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

// buildHandlers wires repositories and services. The returned func stops
// background workers.
func buildHandlers(ctx context.Context, cfg *config.Config, db *sqlx.DB, redisClient *redis.Client, metrics *service.MetricsService, logr *zap.Logger) (handler.Handlers, func()) {
	validate := validator.New()
	stop := func() {}

	var searchCache *service.CacheService
	if cfg.SearchCache.Enabled && redisClient != nil {
		cacheRepo := repository.NewCacheRepository(redisClient, "tutor-match:")
		searchCache = service.NewCacheService(cacheRepo, metrics, cfg.SearchCache.TTL, logr, true)
	}

	classSvc := service.NewClassService(repository.NewClassRepository(db), searchCache, metrics, validate, logr)
	if searchCache != nil {
		queue := jobs.NewQueue("search-cache", func(ctx context.Context, _ jobs.Job) error {
			return classSvc.InvalidateSearchCache(ctx)
		}, jobs.QueueConfig{Workers: 1, MaxRetries: 5, RetryDelay: 2 * time.Second, Logger: logr})
		queue.Start(ctx)
		classSvc.UseRetryQueue(queue)
		stop = queue.Stop
	}
	connectionSvc := service.NewConnectionService(repository.NewConnectionRepository(db), validate, logr)

	handlers := handler.Handlers{
		Classes:     handler.NewClassHandler(classSvc),
		Connections: handler.NewConnectionHandler(connectionSvc),
		Metrics:     handler.NewMetricsHandler(metrics, db),
	}

	if cfg.Favorites.Enabled && redisClient != nil {
		favoriteSvc := service.NewFavoriteService(repository.NewFavoriteRepository(redisClient, cfg.Favorites.TTL), logr, true)
		handlers.Favorites = handler.NewFavoriteHandler(favoriteSvc)
	}

	return handlers, stop
}
