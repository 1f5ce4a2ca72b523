package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"team-vote/internal/config"
	"team-vote/internal/container"
	"team-vote/internal/handler"
	"team-vote/internal/service"
	"team-vote/pkg/logger"
	"team-vote/pkg/redis"
)

// Resources holds all resources that need cleanup
type Resources struct {
	db          container.Database
	redisClient *redis.Client
	tallyHub    service.TallyBroadcaster
	server      *http.Server
	log         *logger.Logger
	mu          sync.Mutex
	closed      bool
}

// Cleanup gracefully closes all resources
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errors []error

	r.log.Info("Starting graceful shutdown...")

	// Stop the tally hub first so open live-results streams end and the
	// server can drain.
	if r.tallyHub != nil {
		r.log.Info("Stopping tally hub...")
		if err := r.tallyHub.Stop(ctx); err != nil {
			r.log.WithError(err).Error("Failed to stop tally hub")
			errors = append(errors, fmt.Errorf("tally hub shutdown: %w", err))
		} else {
			r.log.Info("Tally hub stopped successfully")
		}
	}

	if r.server != nil {
		r.log.Info("Shutting down HTTP server...")
		if err := r.server.Shutdown(ctx); err != nil {
			r.log.WithError(err).Error("Failed to shutdown HTTP server")
			errors = append(errors, fmt.Errorf("HTTP server shutdown: %w", err))
		} else {
			r.log.Info("HTTP server shutdown complete")
		}
	}

	if r.redisClient != nil {
		r.log.Info("Closing Redis connection...")
		if err := r.redisClient.Close(); err != nil {
			r.log.WithError(err).Error("Failed to close Redis connection")
			errors = append(errors, fmt.Errorf("Redis close: %w", err))
		} else {
			r.log.Info("Redis connection closed successfully")
		}
	}

	if r.db != nil {
		r.log.Info("Closing database...")

		healthCtx, healthCancel := context.WithTimeout(ctx, 2*time.Second)
		if err := r.db.Health(healthCtx); err != nil {
			r.log.WithError(err).Warn("Database health check failed before closing")
		}
		healthCancel()

		r.db.Close()
		r.log.Info("Database closed successfully")
	}

	if len(errors) > 0 {
		r.log.WithField("error_count", len(errors)).Error("Cleanup completed with errors")
		return fmt.Errorf("cleanup completed with %d errors: %v", len(errors), errors)
	}

	r.log.Info("Graceful shutdown completed successfully")
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"port":            cfg.Port,
		"log_level":       cfg.LogLevel,
		"environment":     cfg.Environment,
		"database_driver": cfg.DatabaseDriver,
	}).Info("Starting team-vote server")

	ctx := context.Background()
	c, err := container.New(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}

	if err := c.TallyHub.Start(ctx); err != nil {
		log.WithError(err).Fatal("Failed to start tally hub")
	}

	router := handler.NewRouter(handler.RouterConfig{
		Services:       c.Services,
		Database:       c.Database,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         log,
		RequestTimeout: 60 * time.Second,
	})

	// No WriteTimeout: it would cut live-results streams. JSON routes are
	// bounded by the router's Timeout middleware instead.
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	resources := &Resources{
		db:          c.Database,
		redisClient: c.RedisClient,
		tallyHub:    c.TallyHub,
		server:      server,
		log:         log,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := resources.Cleanup(cleanupCtx); err != nil {
			log.WithError(err).Error("Cleanup completed with errors")
		}
	}()

	serverErrChan := make(chan error, 1)
	go func() {
		log.WithField("redis", c.HasRedis()).Info("Server starting on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server error occurred")
			serverErrChan <- err
		}
	}()

	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}
