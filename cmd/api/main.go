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

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/himarpl/himarpl-api/internal/auth"
	"github.com/himarpl/himarpl-api/internal/handler"
	"github.com/himarpl/himarpl-api/internal/ratelimit"
	"github.com/himarpl/himarpl-api/internal/repository"
	"github.com/himarpl/himarpl-api/internal/router"
	"github.com/himarpl/himarpl-api/internal/service"
	"github.com/himarpl/himarpl-api/pkg/cache"
	"github.com/himarpl/himarpl-api/pkg/config"
	"github.com/himarpl/himarpl-api/pkg/database"
	"github.com/himarpl/himarpl-api/pkg/logger"
)

// @title HIMARPL API
// @version 1.0
// @description Public read API for departments, members and news, plus the greetings demo resource.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

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
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redisClient.Close()
	}

	limiter, closeLimiter, err := newLimiter(cfg.RateLimit, redisClient)
	if err != nil {
		return err
	}
	defer closeLimiter()

	authenticator, err := auth.New(cfg.Auth)
	if err != nil {
		return err
	}

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cfg.Cache.Enabled)

	departmentSvc := service.NewDepartmentService(repository.NewDepartmentRepository(db, metricsSvc), cacheSvc, logr)
	userSvc := service.NewUserService(repository.NewUserRepository(db, metricsSvc), cacheSvc, logr)
	newsSvc := service.NewNewsService(repository.NewNewsRepository(db, metricsSvc), cacheSvc, logr)
	greetingSvc := service.NewGreetingService(validator.New(), logr)

	engine, err := router.New(router.Options{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		TrustedProxies: cfg.TrustedProxies,
		EnableDocs:     cfg.EnableDocs,
		Logger:         logr,
		Metrics:        metricsSvc,
		Limiter:        limiter,
		Authenticator:  authenticator,
	}, router.Handlers{
		Departments: handler.NewDepartmentHandler(departmentSvc),
		Users:       handler.NewUserHandler(userSvc),
		News:        handler.NewNewsHandler(newsSvc),
		Greetings:   handler.NewGreetingHandler(greetingSvc, cfg.APIPrefix),
		Metrics:     handler.NewMetricsHandler(metricsSvc, db),
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLimiter(cfg config.RateLimitConfig, client *redis.Client) (ratelimit.Limiter, func(), error) {
	noop := func() {}
	if !cfg.Enabled {
		return ratelimit.Noop{}, noop, nil
	}
	switch cfg.Backend {
	case config.RateLimitBackendRedis:
		if client == nil {
			return nil, noop, errors.New("rate limit backend redis requires REDIS_ENABLED=true")
		}
		return ratelimit.NewRedisLimiter(client, cfg.Prefix, cfg.Requests, cfg.Window), noop, nil
	case "", config.RateLimitBackendMemory:
		limiter := ratelimit.NewMemoryLimiter(cfg.Requests, cfg.Window)
		return limiter, func() { _ = limiter.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown rate limit backend %q", cfg.Backend)
	}
}
