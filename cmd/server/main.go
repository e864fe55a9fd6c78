package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/vendorops/insights/application/port/outbound"
	"github.com/vendorops/insights/application/usecase/insight"
	"github.com/vendorops/insights/infrastructure/adapter/postgres"
	"github.com/vendorops/insights/infrastructure/config"
	insighthttp "github.com/vendorops/insights/infrastructure/http"
	"github.com/vendorops/insights/infrastructure/http/handler"
	"github.com/vendorops/insights/infrastructure/http/middleware"
	"github.com/vendorops/insights/infrastructure/service/jwt"
	"github.com/vendorops/insights/infrastructure/service/lock"
	"github.com/vendorops/insights/infrastructure/service/logger"
	"github.com/vendorops/insights/infrastructure/service/metrics"
	"github.com/vendorops/insights/infrastructure/service/ratelimit"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "insights",
	})
	structuredLogger.Info(ctx, "Application starting", map[string]interface{}{
		"env":             cfg.Environment,
		"max_concurrency": cfg.InsightMaxConcurrency,
	})

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to open database", err, nil)
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.DBMaxConnections)
	db.SetMaxIdleConns(cfg.DBMaxConnections / 2)
	db.SetConnMaxIdleTime(cfg.DBMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		structuredLogger.Error(ctx, "Failed to ping database", err, nil)
		log.Fatalf("Failed to ping database: %v", err)
	}
	structuredLogger.Info(ctx, "Database connection established", map[string]interface{}{
		"max_connections": cfg.DBMaxConnections,
	})

	checks := map[string]insighthttp.HealthCheck{
		"database": db.PingContext,
	}

	// Redis backs the cross-instance entity lock and the write limiter.
	// Without it a single instance falls back to in-process locking.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			structuredLogger.Error(ctx, "Failed to ping redis", err, nil)
			log.Fatalf("Failed to ping redis: %v", err)
		}
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	var locker outbound.EntityLocker
	if redisClient != nil {
		locker = lock.NewRedisLocker(redisClient, cfg.EntityLockTTL)
	} else {
		structuredLogger.Warn(ctx, "REDIS_URL not set, using in-process entity locks", nil)
		locker = lock.NewMemoryLocker(cfg.EntityLockTTL)
	}

	rlLogger := logrus.New()
	rlLogger.SetFormatter(&logrus.JSONFormatter{})
	var rateLimitMiddleware *middleware.RateLimitMiddleware
	if cfg.RateLimitEnabled {
		rateLimitService := ratelimit.NewRateLimitService(redisClient, rlLogger)
		rateLimitMiddleware = middleware.NewRateLimitMiddleware(rateLimitService, structuredLogger, cfg.RateLimitRequests, cfg.RateLimitWindow)
	}

	tokenService, err := jwt.NewJWTService(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}

	components := insighthttp.Components{
		Auth:      middleware.NewAuthMiddleware(tokenService, structuredLogger),
		RateLimit: rateLimitMiddleware,
		Checks:    checks,
		Logger:    structuredLogger,
	}

	deps := insight.Dependencies{
		Products:    postgres.NewProductRepositoryAdapter(db),
		Competitors: postgres.NewCompetitorPriceRepositoryAdapter(db),
		Inventory:   postgres.NewInventoryRepositoryAdapter(db),
		UnitOfWork:  postgres.NewUnitOfWorkAdapter(db),
		Locker:      locker,
		Logger:      structuredLogger,
	}
	if cfg.MetricsEnabled {
		recorder := metrics.New()
		deps.Metrics = recorder
		components.Metrics = recorder
	}

	insightUseCase := insight.NewInsightUseCase(deps, insight.Options{
		MaxConcurrency: cfg.InsightMaxConcurrency,
		LockTTL:        cfg.EntityLockTTL,
	})
	components.Insights = handler.NewInsightHandler(insightUseCase, structuredLogger, cfg.InsightDefaultWindowDays)

	var origins []string
	if cfg.CORSEnabled {
		origins = cfg.CORSAllowedOrigins
	}
	server := insighthttp.NewServer(insighthttp.ServerConfig{
		Addr:         cfg.Address(),
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  60 * time.Second,
		CORSOrigins:  origins,
		LogRequests:  cfg.LogEnableRequestLog,
	}, components)

	go func() {
		if err := server.Start(); err != nil {
			structuredLogger.Error(ctx, "Server failed", err, map[string]interface{}{"addr": cfg.Address()})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	structuredLogger.Info(ctx, "Shutting down server...", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error(ctx, "Server forced to shutdown", err, nil)
	}
	structuredLogger.Info(ctx, "Server exited", nil)
}
