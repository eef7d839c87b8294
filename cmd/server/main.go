package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/bookstore/internal/api"
	"github.com/EgehanKilicarslan/bookstore/internal/auth"
	"github.com/EgehanKilicarslan/bookstore/internal/config"
	"github.com/EgehanKilicarslan/bookstore/internal/database"
	"github.com/EgehanKilicarslan/bookstore/internal/database/repository"
	"github.com/EgehanKilicarslan/bookstore/internal/database/service"
	"github.com/EgehanKilicarslan/bookstore/internal/events"
	internalgrpc "github.com/EgehanKilicarslan/bookstore/internal/grpc"
	"github.com/EgehanKilicarslan/bookstore/internal/handler"
	"github.com/EgehanKilicarslan/bookstore/internal/logger"
	"github.com/EgehanKilicarslan/bookstore/internal/metrics"
	"github.com/EgehanKilicarslan/bookstore/internal/middleware"
	"github.com/EgehanKilicarslan/bookstore/internal/worker"
)

func main() {
	// 1. Config
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger.Info("🚀 [Go] Starting bookstore API...",
		"environment", cfg.AppEnv,
		"version", cfg.BuildVersion,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Connect to Database
	db, err := database.ConnectDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("❌ Failed to get database handle", "error", err)
		os.Exit(1)
	}

	// 4. Initialize Redis Client
	var (
		revocationCache database.RevocationCache
		windowCounter   database.WindowCounter
		redisPinger     service.Pinger
	)
	redisClient, err := database.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Warn("⚠️ Failed to connect to Redis", "error", err)
		appLogger.Info("💡 Revocation checks will only use Postgres and rate limiting stays in-process")
	} else {
		revocationCache = redisClient
		windowCounter = redisClient
		redisPinger = redisClient
		defer redisClient.Close()
	}

	// 5. Metrics, worker pool and events
	appMetrics := metrics.New()
	pool := worker.NewPool(appLogger, 16)

	var publisher events.Publisher = events.NewNoopPublisher(appLogger)
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, events.DefaultExchange, appLogger)
		if err != nil {
			appLogger.Warn("⚠️ Failed to connect to RabbitMQ, order events disabled", "error", err)
		} else {
			publisher = events.NewAsyncPublisher(amqpPublisher, pool, 5*time.Second, appMetrics, appLogger)
		}
	}
	defer publisher.Close()

	// 6. Initialize Repositories
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	revokedRepo := repository.NewRevokedTokenRepository(db)
	bookRepo := repository.NewBookRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)

	// 7. Initialize Services
	tokenService, err := auth.NewJWTService(auth.TokenConfig{
		Secret:     []byte(cfg.JWTSecret),
		Issuer:     cfg.JWTIssuer,
		AccessTTL:  cfg.AccessTokenTTL(),
		RefreshTTL: cfg.RefreshTokenTTL(),
	})
	if err != nil {
		appLogger.Error("❌ Invalid token configuration", "error", err)
		os.Exit(1)
	}
	hasher := auth.NewBcryptHasher(0)

	revocationStore := service.NewRevocationStore(revokedRepo, revocationCache, appMetrics, appLogger)
	authService := service.NewAuthService(userRepo, hasher, tokenService, revocationStore, appMetrics, appLogger)
	userService := service.NewUserService(txManager, userRepo, appLogger)
	bookService := service.NewBookService(txManager, bookRepo, appLogger)
	reviewService := service.NewReviewService(txManager, reviewRepo, bookRepo, appLogger)
	cartService := service.NewCartService(txManager, cartRepo, appLogger)
	orderService := service.NewOrderService(txManager, orderRepo, int(cfg.OrderMaxQuantityPerLine), publisher, appMetrics, appLogger)
	wishlistService := service.NewWishlistService(wishlistRepo, bookRepo, appLogger)
	statsService := service.NewStatsService(userRepo, orderRepo, bookRepo)
	healthService := service.NewHealthService(sqlDB, redisPinger, cfg.BuildVersion, appLogger)

	// 8. Initialize Rate Limiter
	var rateLimiter middleware.RateLimiter
	if windowCounter != nil {
		rateLimiter = middleware.NewRateLimiter(windowCounter, cfg.RateLimitPerMinute, appLogger)
	} else {
		rateLimiter = middleware.NewMemoryRateLimiter(cfg.RateLimitPerMinute, appLogger)
	}

	// 9. Start gRPC health server
	healthServer := internalgrpc.NewHealthServer(appLogger)
	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.ApiGrpcPort))
	if err != nil {
		appLogger.Error("❌ Failed to listen for gRPC", "error", err)
		os.Exit(1)
	}
	go func() {
		if err := healthServer.Serve(grpcListener); err != nil {
			appLogger.Error("❌ gRPC Server failed", "error", err)
		}
	}()
	defer healthServer.Stop()

	// 10. Scheduled jobs
	scheduler := worker.NewScheduler(appLogger)
	if err := scheduler.Register("revocation-sweep", cfg.RevocationSweepSchedule, time.Minute,
		worker.RevocationSweepJob(revocationStore, appMetrics, appLogger)); err != nil {
		appLogger.Error("❌ Invalid revocation sweep schedule", "error", err)
		os.Exit(1)
	}
	probe := healthServer.ProbeJob(healthService)
	if err := scheduler.Register("health-probe", cfg.HealthProbeSchedule, 5*time.Second, probe); err != nil {
		appLogger.Error("❌ Invalid health probe schedule", "error", err)
		os.Exit(1)
	}
	_ = probe(ctx)
	scheduler.Start()

	// 11. Initialize Handlers & Middleware and Router
	authMiddleware := middleware.NewAuthMiddleware(authService, appLogger)
	r := api.SetupRouter(api.Handlers{
		Auth:     handler.NewAuthHandler(authService, appLogger),
		User:     handler.NewUserHandler(userService, appLogger),
		Admin:    handler.NewAdminHandler(userService, statsService, appLogger),
		Book:     handler.NewBookHandler(bookService, appLogger),
		Review:   handler.NewReviewHandler(reviewService, appLogger),
		Cart:     handler.NewCartHandler(cartService, appLogger),
		Order:    handler.NewOrderHandler(orderService, appLogger),
		Wishlist: handler.NewWishlistHandler(wishlistService, appLogger),
		Health:   handler.NewHealthHandler(healthService),
	}, api.RouterOptions{
		Production:     cfg.IsProduction(),
		AuthMiddleware: authMiddleware,
		RateLimiter:    rateLimiter,
		Metrics:        appMetrics,
		Logger:         appLogger,
	})

	// 12. Start HTTP Server
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ApiServicePort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info("🌍 [Go] HTTP Server running", "addr", httpServer.Addr)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		appLogger.Info("🛑 [Go] Shutdown signal received")
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("❌ HTTP Server failed", "error", err)
		}
	}

	// 13. Graceful shutdown
	timeout := time.Duration(cfg.ShutdownTimeout) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("❌ HTTP Server shutdown failed", "error", err)
	}
	scheduler.Stop(timeout)
	if !pool.Shutdown(timeout) {
		appLogger.Warn("⚠️ Worker pool did not drain in time", "timeout", timeout)
	}
	appLogger.Info("✅ [Go] Shutdown complete")
}
