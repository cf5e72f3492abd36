package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/havenhq/service-lodging-admin/internal/application"
	"github.com/havenhq/service-lodging-admin/internal/auth"
	"github.com/havenhq/service-lodging-admin/internal/cache"
	"github.com/havenhq/service-lodging-admin/internal/config"
	"github.com/havenhq/service-lodging-admin/internal/events"
	"github.com/havenhq/service-lodging-admin/internal/handler"
	"github.com/havenhq/service-lodging-admin/internal/logger"
	"github.com/havenhq/service-lodging-admin/internal/middleware"
	"github.com/havenhq/service-lodging-admin/internal/repository"
	"github.com/havenhq/service-lodging-admin/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-lodging-admin")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-lodging-admin",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&repository.CabinModel{},
		&repository.GuestModel{},
		&repository.BookingModel{},
		&repository.SettingModel{},
	); err != nil {
		log.Fatal("failed to run auto-migration", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, 8*time.Hour)

	// Initialize change notifier and query cache
	var notifier events.Notifier = events.NopNotifier{}
	var kafkaNotifier *events.KafkaNotifier
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaNotifier = events.NewKafkaNotifier(cfg.Kafka.Brokers, log)
		defer func() { _ = kafkaNotifier.Close() }()
		notifier = kafkaNotifier
	}

	var queryCache *cache.QueryCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		queryCache = cache.NewQueryCache(rdb, "cache", cfg.Redis.TTL, log)
	}

	// Initialize asset store
	assetStore := storage.NewHTTPAssetStore(cfg.Storage.BaseURL, nil)

	// Initialize repositories
	bookingRepo := repository.NewGormBookingRepository(db)
	cabinRepo := repository.NewGormCabinRepository(db)
	guestRepo := repository.NewGormGuestRepository(db)
	settingRepo := repository.NewGormSettingRepository(db)

	// Initialize application services
	bookingService := application.NewBookingService(bookingRepo, queryCache, notifier, log)
	cabinService := application.NewCabinService(cabinRepo, assetStore, notifier, log)
	guestService := application.NewGuestService(guestRepo, queryCache, notifier, log)
	settingService := application.NewSettingService(settingRepo, notifier, log)
	dashboardService := application.NewDashboardService(bookingRepo, log)

	// Start the cache-invalidation consumer when both sides are configured
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if len(cfg.Kafka.Brokers) > 0 && queryCache.Enabled() {
		groupID := cfg.Kafka.GroupPrefix + "admin-cache"
		invalidationConsumer := events.NewInvalidationConsumer(cfg.Kafka.Brokers, groupID, queryCache, log)
		defer func() { _ = invalidationConsumer.Close() }()

		go func() {
			log.Info("starting cache invalidation consumer")
			if err := invalidationConsumer.Start(ctx); err != nil && err != context.Canceled {
				log.Error("cache invalidation consumer error", zap.Error(err))
			}
		}()
	}

	// Initialize HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	cabinHandler := handler.NewCabinHandler(cabinService)
	guestHandler := handler.NewGuestHandler(guestService)
	settingHandler := handler.NewSettingHandler(settingService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// Setup Gin router
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	bookingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	cabinHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	guestHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	settingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	dashboardHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-lodging-admin...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-lodging-admin stopped")
}
