package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/onurcolak/termii-gateway/environments"
	"github.com/onurcolak/termii-gateway/handlers"
	"github.com/onurcolak/termii-gateway/internal/middlewares"
	"github.com/onurcolak/termii-gateway/internal/repository"
	"github.com/onurcolak/termii-gateway/internal/scheduler"
	"github.com/onurcolak/termii-gateway/internal/service"
	"github.com/onurcolak/termii-gateway/pkg/alert"
	"github.com/onurcolak/termii-gateway/pkg/database"
	"github.com/onurcolak/termii-gateway/pkg/logger"
	"github.com/onurcolak/termii-gateway/pkg/redis"
	"github.com/onurcolak/termii-gateway/pkg/termii"
	"github.com/onurcolak/termii-gateway/pkg/validator"
	"github.com/onurcolak/termii-gateway/routes"

	_ "github.com/onurcolak/termii-gateway/docs" // swagger docs
)

// @title Termii Gateway API
// @version 1.0
// @description HTTP gateway over the Termii messaging, token and insight APIs

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @schemes http https
func main() {
	// Load config
	cfg := environments.Load()

	logger.Init(cfg.Log.Level)

	// Hard-fail if required secrets are missing
	if cfg.Termii.APIKey == "" {
		logger.Fatalf("TERMII_API_KEY is required but not set")
	}
	if cfg.Auth.GatewayAPIKey == "" {
		logger.Fatalf("GATEWAY_API_KEY is required but not set")
	}

	logger.Infof("Starting Termii Gateway against %s...", cfg.Termii.BaseURL)

	termiiClient := termii.NewClient(cfg.Termii.Client(), termii.WithTimeout(cfg.Termii.Timeout))

	// Init DB. The gateway keeps proxying without a dispatch log.
	db, err := database.NewMySQLDB(cfg.Database)
	if err != nil {
		logger.Warnf("Database not available, dispatch log disabled: %v", err)
		db = nil
	} else if err := database.RunMigrations(db); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Init redis
	redisClient, err := redis.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Warnf("Redis not available, balance snapshots disabled: %v", err)
		redisClient = nil
	}

	alertClient := alert.NewAlertClient(cfg.Alert)
	if alertClient.Enabled() {
		logger.Infof("Low balance alerts enabled")
	}

	gatewayService := newGatewayService(termiiClient, db, redisClient)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(
		gatewayService,
		alertClient,
		cfg.Monitor.Interval,
		cfg.Monitor.LowBalance,
		cfg.Monitor.AlertAfter,
	)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, redisClient, cfg.Termii.APIKey != "")
	termiiHandler := handlers.NewTermiiHandler(gatewayService)
	dispatchHandler := handlers.NewDispatchHandler(gatewayService)
	monitorHandler := handlers.NewMonitorHandler(sched, gatewayService, ctx)

	if cfg.Monitor.AutoStart {
		logger.Infof("Auto-starting balance monitor...")
		if err := sched.Start(ctx); err != nil {
			logger.Warnf("Failed to auto-start balance monitor: %v", err)
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			middlewares.APIKeyHeader,
		},
	}))

	// Setup routes
	routes.RegisterRoutes(e, healthHandler, termiiHandler, dispatchHandler, monitorHandler, cfg)

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Infof("Server starting on http://localhost%s", addr)
		logger.Infof("Swagger docs available at http://localhost%s/swagger/index.html", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down gracefully...")

	// Cancel context to signal all goroutines to stop
	cancel()

	// Stop the monitor first (with timeout)
	if sched.IsRunning() {
		logger.Infof("Stopping balance monitor...")
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()

		done := make(chan error, 1)
		go func() {
			done <- sched.Stop()
		}()

		select {
		case err := <-done:
			if err != nil {
				logger.Errorf("Error stopping balance monitor: %v", err)
			} else {
				logger.Infof("Balance monitor stopped successfully")
			}
		case <-stopCtx.Done():
			logger.Warnf("Balance monitor stop timeout, forcing shutdown")
		}
	}

	// Shutdown HTTP server (with timeout)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	logger.Infof("Shutting down HTTP server...")
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	} else {
		logger.Infof("HTTP server stopped successfully")
	}

	if db != nil {
		logger.Infof("Closing database connection...")
		if err := db.Close(); err != nil {
			logger.Errorf("Error closing database: %v", err)
		}
	}

	if redisClient != nil {
		logger.Infof("Closing Redis connection...")
		if err := redisClient.Close(); err != nil {
			logger.Errorf("Error closing Redis: %v", err)
		}
	}

	logger.Infof("Graceful shutdown completed")
	_ = logger.Sync()
}

// newGatewayService leaves the optional stores as untyped nils when they are
// unavailable so the service sees them as disabled.
func newGatewayService(client *termii.Client, db *sqlx.DB, redisClient *redis.Client) *service.GatewayService {
	switch {
	case db != nil && redisClient != nil:
		return service.NewGatewayService(client, repository.NewDispatchRepository(db), redisClient)
	case db != nil:
		return service.NewGatewayService(client, repository.NewDispatchRepository(db), nil)
	case redisClient != nil:
		return service.NewGatewayService(client, nil, redisClient)
	default:
		return service.NewGatewayService(client, nil, nil)
	}
}
