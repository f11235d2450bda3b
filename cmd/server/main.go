package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bpofinance/bpofinance/internal/api"
	"github.com/bpofinance/bpofinance/internal/config"
	"github.com/bpofinance/bpofinance/internal/db"
	"github.com/bpofinance/bpofinance/internal/repository"
	"github.com/bpofinance/bpofinance/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Apply schema migrations if requested
	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Initialize repositories
	payableRepo, err := repository.NewPayableRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer payableRepo.Close()

	// Receivable repository shares the database connection
	receivableRepo := repository.NewReceivableRepository(payableRepo.GetDB())

	// Initialize services
	payableService := service.NewPayableService(payableRepo, service.SystemClock)
	receivableService := service.NewReceivableService(receivableRepo, service.SystemClock)

	var authService *service.AuthService
	if cfg.AuthEnabled() {
		authService = service.NewAuthService(cfg.APIKeyHash, cfg.JWTSecret)
	}

	var rateLimitService *service.RateLimitService
	if cfg.RedisURL != "" {
		rateLimitService, err = service.NewRateLimitService(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rateLimitService.Close()
	}

	// Set up router
	router := api.NewRouter(
		payableService,
		receivableService,
		authService,
		rateLimitService,
		cfg.RateLimitDaily,
		payableRepo.GetDB(),
	)

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting bpo-finance server on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
