package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"

	httpAdapter "github.com/wihngo/wallet/internal/adapter/http"
	"github.com/wihngo/wallet/internal/adapter/http/handler"
	"github.com/wihngo/wallet/internal/adapter/http/middleware"
	"github.com/wihngo/wallet/internal/adapter/repository/memory"
	redisRepo "github.com/wihngo/wallet/internal/adapter/repository/redis"
	"github.com/wihngo/wallet/internal/infrastructure/config"
	"github.com/wihngo/wallet/internal/infrastructure/logger"
	"github.com/wihngo/wallet/internal/infrastructure/metrics"
	"github.com/wihngo/wallet/internal/infrastructure/redis"
	"github.com/wihngo/wallet/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Select connection registry backend
	var registry usecase.ConnectionRegistry
	var redisClient *goredis.Client

	switch cfg.RegistryBackend {
	case "redis":
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()

		registry = redisRepo.NewRegistry(redisClient)
		log.Info().Msg("using redis connection registry")
	default:
		registry = memory.NewRegistry()
		log.Info().Msg("using in-memory connection registry")
	}

	m := metrics.New()

	// Initialize use cases and handlers
	connectUC := usecase.NewConnectUseCase(registry, m, log)

	connectHandler := handler.NewConnectHandler(connectUC)
	platformHandler := handler.NewPlatformHandler()
	healthHandler := handler.NewHealthHandler(redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ConnectHandler:  connectHandler,
		PlatformHandler: platformHandler,
		HealthHandler:   healthHandler,
		Logging:         middleware.NewLoggingMiddleware(log),
		ConnectLimiter:  middleware.NewRateLimiter(cfg.ConnectRateLimit, cfg.ConnectRateBurst),
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
