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

	httpmetrics "ecommerceBackend/app/echo-server/metrics"
	"ecommerceBackend/app/echo-server/router"
	"ecommerceBackend/business/address"
	"ecommerceBackend/business/billing"
	"ecommerceBackend/business/cart"
	"ecommerceBackend/business/category"
	"ecommerceBackend/business/orders"
	"ecommerceBackend/business/payments"
	"ecommerceBackend/business/product"
	"ecommerceBackend/business/reference"
	"ecommerceBackend/business/review"
	userService "ecommerceBackend/business/user"
	"ecommerceBackend/internal/middleware"
	"ecommerceBackend/internal/repository/notification"
	psqlRepo "ecommerceBackend/internal/repository/postgres"
	redisRepo "ecommerceBackend/internal/repository/redis"
	"ecommerceBackend/internal/rest"
	"ecommerceBackend/pkg/config"
	"ecommerceBackend/pkg/database"
	redisdb "ecommerceBackend/pkg/database/redis"
	"ecommerceBackend/pkg/logger"
	"ecommerceBackend/pkg/metrics"
	"ecommerceBackend/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting "+cfg.App.Name, "version", cfg.App.Version, "env", cfg.App.Environment)

	// money is rendered as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to redis", "error", err)
		}
		logger.Info("Redis connected successfully")
	}

	// Init metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.Init(registry)
	httpmetrics.Init(registry)

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(cfg.Mailjet)

	// Init validate
	validate := validator.New()

	// Init repo
	txManager := psqlRepo.NewTransactionManager(db)
	userRepo := psqlRepo.NewUserRepository(db)
	addressRepo := psqlRepo.NewAddressRepository(db)
	billingRepo := psqlRepo.NewBillingRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	mediaRepo := psqlRepo.NewProductMediaRepository(db)
	orderRepo := psqlRepo.NewOrderRepository(db)
	orderItemRepo := psqlRepo.NewOrderItemRepository(db)
	paymentRepo := psqlRepo.NewPaymentRepository(db)
	reviewRepo := psqlRepo.NewReviewRepository(db)
	cartRepo := psqlRepo.NewCartRepository(db)
	cartItemRepo := psqlRepo.NewCartItemRepository(db)

	var (
		sessionStore     userService.SessionStore
		sessionValidator middleware.SessionValidator
	)
	if redisClient != nil {
		sessions := redisRepo.NewSessionRepository(redisClient)
		sessionStore = sessions
		sessionValidator = sessions
	}

	resolver := reference.NewResolver().
		Register(reference.User, userRepo).
		Register(reference.Category, categoryRepo).
		Register(reference.Product, productRepo).
		Register(reference.Order, orderRepo).
		Register(reference.Cart, cartRepo)

	tokens := utils.NewTokenIssuer(cfg.JWT.SecretKey, cfg.JWT.TTL)

	// Init service
	userSvc := userService.NewUserService(userRepo, addressRepo, validate, mailjetEmail, sessionStore, tokens, userService.VerificationConfig{
		Key:           cfg.App.AppEmailVerificationKey,
		DeploymentURL: cfg.App.AppDeploymentUrl,
		APIPrefix:     cfg.Server.APIPrefix,
	})
	categorySvc := category.NewCategoryService(categoryRepo, resolver)
	productSvc := product.NewProductService(productRepo, categoryRepo, mediaRepo, resolver, txManager)
	ordersSvc := orders.NewOrderService(orderRepo, orderItemRepo, productRepo, userRepo, resolver, txManager, cfg.Orders.StrictStatus())
	paymentsSvc := payments.NewPaymentsService(paymentRepo, resolver)
	reviewSvc := review.NewReviewService(reviewRepo, resolver)
	cartSvc := cart.NewCartService(cartRepo, cartItemRepo, resolver, txManager)
	billingSvc := billing.NewBillingService(billingRepo, addressRepo, resolver, txManager)
	addressSvc := address.NewAddressService(addressRepo, userRepo, billingRepo, resolver, txManager)

	// Init handler
	handlers := router.Handlers{
		User:     rest.NewUserHandler(userSvc),
		Category: rest.NewCategoryHandler(categorySvc),
		Product:  rest.NewProductHandler(productSvc),
		Orders:   rest.NewOrdersHandler(ordersSvc),
		Payments: rest.NewPaymentsHandler(paymentsSvc),
		Review:   rest.NewReviewHandler(reviewSvc),
		Cart:     rest.NewCartHandler(cartSvc),
		Address:  rest.NewAddressHandler(addressSvc, billingSvc),
	}

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(httpmetrics.Middleware())
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			logger.Info("request",
				"id", v.RequestID,
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
			)
			return nil
		},
	}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))

	// Setup routes
	guard := middleware.NewGuard(tokens, sessionValidator, cfg.Auth.Enforced)
	if !cfg.Auth.Enforced {
		logger.Warn("Route access policy is disabled, every route is public")
	}

	api := e.Group(cfg.Server.APIPrefix)
	router.Register(api, guard, router.Routes(handlers))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr, "prefix", cfg.Server.APIPrefix)
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

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := redisdb.CloseRedisClient(redisClient); err != nil {
		logger.Error("Redis close error", "error", err)
	}

	if err := database.ClosePostgres(db); err != nil {
		logger.Error("Database close error", "error", err)
	}

	logger.Info("Server stopped")
}
