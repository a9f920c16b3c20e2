package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kopikasir/app/echo-server/router"
	"kopikasir/business/auth"
	orderService "kopikasir/business/order"
	productService "kopikasir/business/product"
	shiftService "kopikasir/business/shift"
	userService "kopikasir/business/user"
	"kopikasir/internal/middleware"
	psqlRepo "kopikasir/internal/repository/postgres"
	redisRepo "kopikasir/internal/repository/redis"
	"kopikasir/internal/rest"
	"kopikasir/pkg/config"
	"kopikasir/pkg/database"
	redisdb "kopikasir/pkg/database/redis"
	"kopikasir/pkg/logger"
	"kopikasir/pkg/metrics"
	"kopikasir/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Kopi Kasir", "version", cfg.App.Version)

	utils.SetJWTSecret(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer redisdb.CloseRedisClient(redisClient)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	shiftRepo := psqlRepo.NewShiftRepository(db)
	orderRepo := psqlRepo.NewOrderRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)

	// Init service
	authSvc := auth.NewAuthService(userRepo, tokenRepo)
	userSvc := userService.NewUserService(userRepo, validate)
	productSvc := productService.NewProductService(productRepo)
	shiftSvc := shiftService.NewShiftService(shiftRepo, orderRepo)
	orderSvc := orderService.NewOrderService(orderRepo, shiftRepo, cfg.App.CardEncryptionKey)

	// Init handler
	authHandler := rest.NewAuthHandler(authSvc)
	userHandler := rest.NewUserHandler(userSvc)
	productHandler := rest.NewProductHandler(productSvc, cfg.Upload.Dir)
	shiftHandler := rest.NewShiftHandler(shiftSvc)
	orderHandler := rest.NewOrderHandler(orderSvc)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8000"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddleware(authSvc)
	adminOnly := middleware.AdminOnly()
	cashierOnly := middleware.CashierOnly()

	// Setup routes
	api := e.Group("/api")
	router.SetupAuthRoutes(api, authHandler, authRequired)
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly)
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)
	router.SetupOrderRoutes(api, orderHandler, authRequired, adminOnly, cashierOnly)
	router.SetupShiftRoutes(api, shiftHandler, authRequired, cashierOnly)

	// Uploaded product images
	e.Static("/uploads", cfg.Upload.Dir)

	// Prometheus
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
