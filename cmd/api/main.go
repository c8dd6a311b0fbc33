// Package main is the entry point for the Subscription Tracker API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/subscription-tracker/backend/config"
	"github.com/subscription-tracker/backend/internal/application/adapter"
	"github.com/subscription-tracker/backend/internal/application/usecase/reminder"
	"github.com/subscription-tracker/backend/internal/infra/db"
	"github.com/subscription-tracker/backend/internal/infra/dependency"
	"github.com/subscription-tracker/backend/internal/integration/cache"
	"github.com/subscription-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/subscription-tracker/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting Subscription Tracker API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	database, err := db.NewPostgresConnection(&cfg.Database, cfg.Server.Environment)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(model.AllModels()...); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	healthChecks := []controller.HealthCheck{{Name: "database", Probe: database.Ping}}

	// Redis only caches derived dates; the API keeps working without it.
	var billingCache adapter.BillingDateCache
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, billing date cache disabled", "error", err)
		billingCache = cache.NewNoopBillingDateCache()
	} else {
		defer redisClient.Close()
		billingCache = cache.NewRedisBillingDateCache(redisClient)
		healthChecks = append(healthChecks, controller.HealthCheck{
			Name:     "redis",
			Optional: true,
			Probe:    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}

	injector, err := dependency.NewInjector(cfg, database.DB(), dependency.Options{
		Cache:        billingCache,
		HealthChecks: healthChecks,
	})
	if err != nil {
		slog.Error("Failed to wire dependencies", "error", err)
		os.Exit(1)
	}

	engine := injector.Router.Setup(cfg.Server.Environment)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var background sync.WaitGroup
	startBackground := func(name string, run func(context.Context)) {
		background.Add(1)
		go func() {
			defer background.Done()
			run(ctx)
			slog.Info("Background task stopped", "task", name)
		}()
	}

	startBackground("rate_limiter_cleanup", func(ctx context.Context) {
		injector.RateLimiter.StartCleanup(ctx, time.Minute)
	})

	if cfg.Email.WorkerEnabled {
		startBackground("email_worker", injector.EmailWorker.Start)
	} else {
		slog.Info("Email worker disabled")
	}

	if cfg.Reminder.Enabled {
		startBackground("reminders", func(ctx context.Context) {
			runReminders(ctx, injector.Reminders, cfg.Reminder.Interval)
		})
	} else {
		slog.Info("Reminder job disabled")
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	stop()
	background.Wait()

	slog.Info("Server exited properly")
}

// runReminders generates reminders once at start and then on every interval tick.
func runReminders(ctx context.Context, uc *reminder.GenerateRemindersUseCase, interval time.Duration) {
	run := func() {
		if _, err := uc.Execute(ctx); err != nil {
			slog.Error("Reminder run failed", "error", err)
		}
	}

	run()
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
