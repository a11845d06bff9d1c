package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rackit-dev/birdie/cache"
	"github.com/rackit-dev/birdie/controllers"
	"github.com/rackit-dev/birdie/database"
	"github.com/rackit-dev/birdie/kafka"
	"github.com/rackit-dev/birdie/models"
	"github.com/rackit-dev/birdie/repository"
	"github.com/rackit-dev/birdie/routes"
	"github.com/rackit-dev/birdie/services"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal("Config load failed", zap.Error(err))
	}

	// --- Database ---
	dbCfg := database.Config{
		User:     cfg.PostgresUser,
		Password: cfg.PostgresPassword,
		Name:     cfg.PostgresDB,
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		SSLMode:  cfg.PostgresSSLMode,
	}
	if err := database.Connect(dbCfg, logger,
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Coupon{},
		&models.CouponWallet{},
		&models.Payment{},
		&models.Refund{},
		&models.PointTransaction{},
	); err != nil {
		logger.Fatal("DB connection failed", zap.Error(err))
	}

	// --- Redis product cache (optional) ---
	var productCache *cache.ProductCache
	if cfg.RedisURL != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisURL)
		if err != nil {
			logger.Warn("Redis unavailable, product caching disabled", zap.Error(err))
		} else {
			productCache = cache.NewProductCache(redisClient, 10*time.Minute, logger)
		}
	}

	// --- Kafka producer (optional) ---
	var producer kafka.ProducerAPI
	if len(cfg.KafkaBrokers) > 0 {
		p := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer p.Close()
		producer = p
	}

	// --- Payment gateway ---
	gateway := services.NewStripeGateway(cfg.StripeAPIKey, cfg.StripeWebhookSecret, cfg.StripeWebhookSecretTest)

	// --- HTTP router ---
	r := gin.New()
	r.Use(gin.Recovery())

	// Structured HTTP request logging
	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}
		switch {
		case status >= 500:
			logger.Error("http_request", fields...)
		case status >= 400:
			logger.Warn("http_request", fields...)
		default:
			logger.Info("http_request", fields...)
		}
	})

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// --- Dependency injection ---
	userRepo := repository.NewGormUserRepository(database.DB)
	productRepo := repository.NewGormProductRepository(database.DB)
	cartRepo := repository.NewGormCartRepository(database.DB)
	orderRepo := repository.NewGormOrderRepository(database.DB)
	couponRepo := repository.NewGormCouponRepository(database.DB)
	paymentRepo := repository.NewGormPaymentRepository(database.DB)

	userService := services.NewUserService(userRepo, logger)
	productService := services.NewProductService(productRepo, productCache, logger)
	cartService := services.NewCartService(cartRepo, logger)
	orderService := services.NewOrderService(orderRepo, producer, logger)
	couponService := services.NewCouponService(couponRepo, logger)
	paymentService := services.NewPaymentService(orderRepo, paymentRepo, gateway, producer, logger)

	userController := controllers.NewUserController(userService, logger)
	productController := controllers.NewProductController(productService, logger)
	cartController := controllers.NewCartController(cartService, logger)
	orderController := controllers.NewOrderController(orderService, logger)
	couponController := controllers.NewCouponController(couponService, logger)
	paymentController := controllers.NewPaymentController(paymentService, logger)

	routes.RegisterUserRoutes(r, userController)
	routes.RegisterProductRoutes(r, productController)
	routes.RegisterCartRoutes(r, cartController)
	routes.RegisterOrderRoutes(r, orderController, paymentController)
	routes.RegisterCouponRoutes(r, couponController)
	routes.RegisterHealthRoute(r)

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Info("Storefront backend started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Initiating graceful shutdown...")
	httpShutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(httpShutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	if err := database.Close(); err != nil {
		logger.Error("Database close error", zap.Error(err))
	}

	log.Println("Storefront backend stopped gracefully")
}
