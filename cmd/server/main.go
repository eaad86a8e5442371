package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/artisell/artisell-backend/config"
	"github.com/artisell/artisell-backend/internal/app/controller"
	"github.com/artisell/artisell-backend/internal/app/repository"
	"github.com/artisell/artisell-backend/internal/app/service"
	"github.com/artisell/artisell-backend/internal/db"
	"github.com/artisell/artisell-backend/internal/middleware"
	"github.com/artisell/artisell-backend/internal/router"
	"github.com/artisell/artisell-backend/internal/scheduler"
	"github.com/artisell/artisell-backend/internal/storage"
	"github.com/artisell/artisell-backend/pkg/logger"
	"github.com/artisell/artisell-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console",
		EnableColor: true,
	})

	logger.Info("Starting ARTISELL Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional; logout token revocation degrades gracefully
	// when it is unavailable.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer redis.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	favoriteRepo := repository.NewFavoriteRepository(db.GetDB())

	// Services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo, cfg.Checkout)
	checkoutService := service.NewCheckoutService(orderRepo, cartRepo, db.GetDB(), cfg.Checkout)
	orderService := service.NewOrderService(orderRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, productRepo)

	// Storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Controllers
	authController := controller.NewAuthController(authService, cfg.JWT)
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService, checkoutService, cartService)
	favoriteController := controller.NewFavoriteController(favoriteService)
	uploadController := controller.NewUploadController(s3Storage)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	cartCleanup := scheduler.NewCartCleanupScheduler(cartRepo)
	if err := cartCleanup.Start(); err != nil {
		logger.Warn("Failed to start cart cleanup scheduler", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer cartCleanup.Stop()

	r := router.NewRouter(
		authController,
		productController,
		cartController,
		orderController,
		favoriteController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
