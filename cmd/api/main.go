// Package main is the entry point for the spendings ledger API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/spendings-bot/ledger/config"
	"github.com/spendings-bot/ledger/internal/infra/db"
	"github.com/spendings-bot/ledger/internal/infra/dependency"
	"github.com/spendings-bot/ledger/internal/integration/adapters"
	"github.com/spendings-bot/ledger/internal/integration/cache"
	"github.com/spendings-bot/ledger/internal/integration/messaging"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	slog.Info("Starting spendings ledger API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"databaseDriver", cfg.Database.Driver,
	)

	// Initialize database connection
	database, err := db.NewConnection(&cfg.Database, strings.EqualFold(cfg.Log.Level, "debug"))
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	// Run database migrations
	if err := database.Migrate(); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	externals := dependency.Externals{
		RateSource: adapters.NewExchangeRateHostSource(adapters.ExchangeRateHostConfig{
			BaseURL:           cfg.Rates.ProviderURL,
			AccessKey:         cfg.Rates.AccessKey,
			RequestsPerSecond: cfg.Rates.RequestsPerSecond,
			Burst:             cfg.Rates.Burst,
		}, &http.Client{Timeout: cfg.Rates.FetchTimeout}),
		Publisher: messaging.NewNoopPublisher(),
	}

	// Redis backs idempotent writes; without it duplicate requests are not detected
	if cfg.Redis.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
		cancel()
		if err != nil {
			slog.Warn("Redis unavailable, running without idempotency keys", "error", err)
		} else {
			defer client.Close()
			externals.Idempotency = cache.NewRedisIdempotencyStore(client)
			externals.RedisHealth = func() bool {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				return client.Ping(ctx).Err() == nil
			}
		}
	}

	// Ledger events go to AMQP when configured
	if cfg.AMQP.URL != "" {
		publisher, err := messaging.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			slog.Warn("AMQP unavailable, ledger events are not published", "error", err)
		} else {
			defer publisher.Close()
			externals.Publisher = publisher
		}
	}

	injector := dependency.NewInjector(cfg, database.DB(), externals)
	engine := injector.Router.Setup(cfg.Server.Environment)

	// Idle per-owner limiters are dropped periodically
	stopCleanup := startLimiterCleanup(injector, time.Minute)
	defer stopCleanup()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return
	}

	slog.Info("Server exited properly")
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func startLimiterCleanup(injector *dependency.Injector, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				injector.RateLimiter.Cleanup()
			case <-done:
				return
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(done)
	}
}
