package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abosaleg/enrollment-service/internal/auth"
	"github.com/abosaleg/enrollment-service/internal/cache"
	"github.com/abosaleg/enrollment-service/internal/config"
	"github.com/abosaleg/enrollment-service/internal/events"
	"github.com/abosaleg/enrollment-service/internal/handlers"
	"github.com/abosaleg/enrollment-service/internal/repositories/postgres"
	"github.com/abosaleg/enrollment-service/internal/services"
	"github.com/abosaleg/enrollment-service/internal/storage"
	"github.com/abosaleg/enrollment-service/internal/validator"
	"github.com/abosaleg/enrollment-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// Initialize database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis (sessions + stats cache)
	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	// Initialize repositories
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	repo := postgres.NewPostgresRepository(db, hasher)

	// Initialize event publisher
	var publisher events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = events.NewKafkaPublisher(cfg.KafkaBrokers, logger)
		if err != nil {
			log.Fatalf("Failed to initialize Kafka publisher: %v", err)
		}
	} else {
		publisher = events.NewGoChannelPublisher(logger)
	}

	// Initialize avatar storage
	avatars, err := newAvatarStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize avatar storage: %v", err)
	}

	// Initialize validator and services
	v := validator.New()
	stats := cache.NewCacheHelper(redisClient, cache.StatsCacheConfig.Prefix)
	serviceManager := services.NewServiceManager(repo, v, publisher, stats, logger)

	// Initialize identity layer
	sessions := auth.NewRedisSessionStore(redisClient, cfg.SessionTTL)
	manager := auth.NewManager(repo.User(), sessions, hasher, v, publisher, logger)
	guard := auth.NewGuard(sessions)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router)

	handlerManager := handlers.NewHandlerManager(
		serviceManager, manager, guard, avatars, int(cfg.SessionTTL.Seconds()), logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := publisher.Close(); err != nil {
		log.Printf("Failed to close event publisher: %v", err)
	}

	if err := repo.Close(); err != nil {
		log.Printf("Failed to close database: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Failed to close Redis: %v", err)
	}

	logger.Info("server exited")
}

func newAvatarStorage(cfg *config.Config) (storage.AvatarStorage, error) {
	if cfg.Upload.Backend == "minio" {
		return storage.NewMinioStorage(context.Background(), storage.MinioConfig{
			Endpoint:  cfg.Upload.MinioEndpoint,
			AccessKey: cfg.Upload.MinioAccessKey,
			SecretKey: cfg.Upload.MinioSecretKey,
			Bucket:    cfg.Upload.MinioBucket,
			UseSSL:    cfg.Upload.MinioUseSSL,
		})
	}
	return storage.NewLocalStorage(cfg.Upload.Dir)
}
