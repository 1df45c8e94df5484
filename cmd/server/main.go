package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	orderapp "github.com/storefront/backend/internal/application/order"
	promotionapp "github.com/storefront/backend/internal/application/promotion"
	shoppingapp "github.com/storefront/backend/internal/application/shopping"
	"github.com/storefront/backend/internal/domain/promotion"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/messaging"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLevel := gormlogger.Silent
	if cfg.Log.Level == "debug" {
		gormLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	wishlistRepo := persistence.NewGormWishlistRepository(db.DB)
	couponRepo := persistence.NewGormCouponRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	ledger := persistence.NewGormInventoryLedger(db.DB)

	// Login merge guard: Redis with in-memory fallback outside production
	guardFactory := cache.NewLoginGuardFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	)
	loginGuard, err := guardFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create login merge guard", zap.Error(err))
	}
	defer func() {
		if err := loginGuard.Close(); err != nil {
			log.Error("Error closing login merge guard", zap.Error(err))
		}
	}()

	// Event bus and order notifications
	eventBus := event.NewInMemoryEventBus(log)
	if cfg.RabbitMQ.Enabled {
		notifier, err := messaging.NewRabbitNotifier(cfg.RabbitMQ.URL, log)
		if err != nil {
			// Notifications are fire and forget; a dead broker must not
			// block order taking
			log.Warn("Order notifications disabled: broker unreachable", zap.Error(err))
		} else {
			defer func() {
				if err := notifier.Close(); err != nil {
					log.Error("Error closing notifier", zap.Error(err))
				}
			}()
			eventBus.Subscribe(notifier)
			log.Info("Order notifications enabled", zap.String("queue", cfg.RabbitMQ.Queue))
		}
	}
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	couponValidator := promotion.NewValidator(couponRepo)
	productService := catalogapp.NewProductService(productRepo)
	cartService := shoppingapp.NewCartService(cartRepo, productRepo)
	wishlistService := shoppingapp.NewWishlistService(wishlistRepo, productRepo)
	mergeService := shoppingapp.NewMergeService(cartRepo, wishlistRepo, loginGuard, log).
		WithGuardTTL(cfg.Checkout.MergeGuardTTL)
	couponService := promotionapp.NewCouponService(couponRepo, couponValidator)
	checkoutService := checkoutapp.NewService(cartRepo, productRepo, couponValidator, ledger, orderRepo, eventBus, log, checkoutapp.ShippingCharges{
		Inside:  decimal.NewFromFloat(cfg.Checkout.ShippingInside),
		Outside: decimal.NewFromFloat(cfg.Checkout.ShippingOutside),
	})
	orderService := orderapp.NewService(orderRepo, eventBus, log)

	// Handlers
	systemHandler := handler.NewSystemHandler(db)
	productHandler := handler.NewProductHandler(productService)
	cartHandler := handler.NewCartHandler(cartService, mergeService)
	wishlistHandler := handler.NewWishlistHandler(wishlistService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	orderHandler := handler.NewOrderHandler(orderService)
	couponHandler := handler.NewCouponHandler(couponService)

	// Gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	middleware.SetupValidator()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Probes live outside API versioning
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Public storefront surface: catalog browsing, coupon validation,
	// system info. Checkout is optional-auth so guests can commit orders.
	publicRoutes := router.NewGroup("")
	publicRoutes.GET("/products", productHandler.List)
	publicRoutes.GET("/products/:id", productHandler.GetByID)
	publicRoutes.POST("/coupons/validate", couponHandler.Validate)
	publicRoutes.GET("/system/info", systemHandler.GetSystemInfo)

	checkoutRoutes := router.NewGroup("/checkout")
	checkoutRoutes.Use(middleware.OptionalJWTAuth(jwtService, log))
	checkoutRoutes.POST("", checkoutHandler.Commit)

	// Account surface: cart, wishlist, login merge, own orders
	accountAuth := middleware.JWTAuth(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		Logger:     log,
	})

	cartRoutes := router.NewGroup("/cart")
	cartRoutes.Use(accountAuth)
	cartRoutes.GET("", cartHandler.Get)
	cartRoutes.POST("/items", cartHandler.AddItem)
	cartRoutes.PUT("/items/:product_id", cartHandler.UpdateItem)
	cartRoutes.DELETE("/items/:product_id", cartHandler.RemoveItem)
	cartRoutes.DELETE("", cartHandler.Clear)
	cartRoutes.POST("/merge", cartHandler.Merge)

	wishlistRoutes := router.NewGroup("/wishlist")
	wishlistRoutes.Use(accountAuth)
	wishlistRoutes.GET("", wishlistHandler.Get)
	wishlistRoutes.POST("/toggle", wishlistHandler.Toggle)
	wishlistRoutes.DELETE("/:product_id", wishlistHandler.Remove)

	orderRoutes := router.NewGroup("/orders")
	orderRoutes.Use(accountAuth)
	orderRoutes.GET("", orderHandler.ListMine)
	orderRoutes.GET("/:id", orderHandler.GetMine)

	// Operator surface: catalog management, coupons, fulfilment
	adminRoutes := router.NewGroup("/admin")
	adminRoutes.Use(accountAuth, middleware.RequireOperator())
	adminRoutes.POST("/products", productHandler.Create)
	adminRoutes.PUT("/products/:id/pricing", productHandler.UpdatePricing)
	adminRoutes.PUT("/products/:id/stock", productHandler.SetStock)
	adminRoutes.DELETE("/products/:id", productHandler.Delete)
	adminRoutes.GET("/coupons", couponHandler.List)
	adminRoutes.POST("/coupons", couponHandler.Create)
	adminRoutes.GET("/coupons/:id", couponHandler.GetByID)
	adminRoutes.PUT("/coupons/:id", couponHandler.Update)
	adminRoutes.DELETE("/coupons/:id", couponHandler.Delete)
	adminRoutes.GET("/orders", orderHandler.ListAll)
	adminRoutes.GET("/orders/:id", orderHandler.GetByID)
	adminRoutes.GET("/orders/number/:order_number", orderHandler.GetByNumber)
	adminRoutes.PUT("/orders/:id/status", orderHandler.UpdateStatus)

	r.Register(publicRoutes).
		Register(checkoutRoutes).
		Register(cartRoutes).
		Register(wishlistRoutes).
		Register(orderRoutes).
		Register(adminRoutes)

	r.Setup()

	// HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := eventBus.Stop(ctx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
