package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogdesk/database"
	_ "blogdesk/docs"
	"blogdesk/internal/cache"
	"blogdesk/internal/config"
	"blogdesk/internal/microservices/http-api/handler"
	"blogdesk/internal/microservices/http-api/middleware"
	"blogdesk/internal/microservices/http-api/repository"
	"blogdesk/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Error("database_connect_failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if err := database.Migrate(db, logger); err != nil {
		logger.Error("database_migrate_failed", "error", err)
		os.Exit(1)
	}

	statsDB, err := database.Stats(db)
	if err != nil {
		logger.Error("stats_db_failed", "error", err)
		os.Exit(1)
	}

	// Redis is optional: without it every cache lookup misses.
	redisCache, err := cache.New(cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		logger.Warn("redis_unavailable_cache_disabled", "redis_url", cfg.RedisURL, "error", err)
		redisCache = cache.Disabled()
	}
	defer redisCache.Close()

	profileRepo := repository.NewProfileRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	statsRepo := repository.NewStatsRepository(statsDB)

	services := handler.Services{
		Auth:     service.NewAuthService(profileRepo, cfg, logger),
		Profiles: service.NewProfileService(profileRepo),
		Blogs:    service.NewBlogService(blogRepo, profileRepo, logger),
		Comments: service.NewCommentService(commentRepo, blogRepo, profileRepo, logger),
		Admin:    service.NewAdminService(profileRepo, statsRepo, redisCache, cfg.CacheExpiry(), logger),
		Category: service.NewCategoryService(categoryRepo, redisCache, cfg.CacheExpiry(), logger),
	}

	router := handler.NewRouter(services, handler.RouterOptions{
		Logger:         logger,
		RequestTimeout: cfg.RequestTimeout,
		Limiter:        middleware.NewRateLimiter(cfg.ThrottleLimit, cfg.ThrottleTTL),
		Docs:           !cfg.IsProduction(),
	})

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           corsHandler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting_http_server", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		logger.Info("received_shutdown_signal")
	case err := <-errChan:
		logger.Error("server_error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
		return
	}
	logger.Info("server_stopped_gracefully")
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
