package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spacerent/space-rental-backend/internal/api"
	"github.com/spacerent/space-rental-backend/internal/cache"
	"github.com/spacerent/space-rental-backend/internal/config"
	"github.com/spacerent/space-rental-backend/internal/notification"
	"github.com/spacerent/space-rental-backend/internal/repository/postgres"
	"github.com/spacerent/space-rental-backend/internal/service"
	"github.com/spacerent/space-rental-backend/internal/storage"
	"github.com/spacerent/space-rental-backend/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Token manager
	tokens := token.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.BcryptCost)

	// Object storage
	store, err := storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("failed to connect to object storage: %v", err)
	}

	// Notification dispatcher
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dispatcher := notification.NewDispatcher(notification.NewAMQPPublisher(cfg.AMQPURL), 64)
	go dispatcher.Run(ctx)

	// Card-view cache
	cardCache := cache.NewStore(cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), cfg.CardCacheTTL)

	// Initialize services
	services := service.NewServices(repos, cfg, tokens, dispatcher, store, cardCache)

	// Initialize router
	router := api.NewRouter(services, tokens)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	// Drain queued notifications before exiting.
	cancel()
	dispatcher.Wait()

	log.Println("Server stopped")
}
