package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	accountingapp "github.com/wms/backend/internal/application/accounting"
	catalogapp "github.com/wms/backend/internal/application/catalog"
	orderapp "github.com/wms/backend/internal/application/order"
	"github.com/wms/backend/internal/domain/accounting"
	"github.com/wms/backend/internal/infrastructure/auth"
	"github.com/wms/backend/internal/infrastructure/cache"
	"github.com/wms/backend/internal/infrastructure/config"
	"github.com/wms/backend/internal/infrastructure/logger"
	"github.com/wms/backend/internal/infrastructure/persistence"
	"github.com/wms/backend/internal/infrastructure/quickbooks"
	"github.com/wms/backend/internal/interfaces/http/handler"
	"github.com/wms/backend/internal/interfaces/http/middleware"
	"github.com/wms/backend/internal/interfaces/http/router"
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

	log.Info("Starting WMS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// OAuth state store: Redis when reachable, in-memory otherwise.
	// The memory fallback is single-process only.
	var states accounting.StateStore
	redisStates, err := cache.NewRedisStateStore(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory OAuth state store", zap.Error(err))
		states = cache.NewMemoryStateStore()
	} else {
		states = redisStates
		defer func() {
			if err := redisStates.Close(); err != nil {
				log.Error("Error closing Redis", zap.Error(err))
			}
		}()
	}

	// QuickBooks client
	qbClient, err := quickbooks.NewClient(&quickbooks.Config{
		ClientID:     cfg.QuickBooks.ClientID,
		ClientSecret: cfg.QuickBooks.ClientSecret,
		RedirectURI:  cfg.QuickBooks.RedirectURI,
		Environment:  cfg.QuickBooks.Environment,
		Timeout:      cfg.QuickBooks.RequestTimeout,
	})
	if err != nil {
		log.Fatal("Failed to create QuickBooks client", zap.Error(err))
	}

	// Initialize repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	connectionRepo := persistence.NewGormConnectionRepository(db.DB)

	// Initialize application services
	orderService := orderapp.NewService(orderRepo, log)
	catalogService := catalogapp.NewService(productRepo, log)
	oauthService := accountingapp.NewOAuthService(qbClient, states, connectionRepo, log)
	tokenRefreshService := accountingapp.NewTokenRefreshService(qbClient, connectionRepo, log)
	itemSyncService := accountingapp.NewItemSyncService(qbClient, connectionRepo, productRepo, tokenRefreshService, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize HTTP handlers
	systemHandler := handler.NewSystemHandler(db, cfg.App.Name)
	orderHandler := handler.NewOrderHandler(orderService)
	productHandler := handler.NewProductHandler(catalogService)
	quickbooksHandler := handler.NewQuickBooksHandler(oauthService, cfg.QuickBooks.AdminPageURL, cfg.App.Env == "production")
	syncHandler := handler.NewSyncHandler(tokenRefreshService, itemSyncService, cfg.Sync.CronSecret)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig()))

	// Public routes: health probes, the OAuth browser flow, and the
	// cron-secret-guarded token refresh trigger
	api := router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(systemHandler).
		Register(quickbooksHandler).
		Register(syncHandler).
		Setup()

	// Order lifecycle, catalog and manual item sync require an
	// authenticated user
	protected := api.Group("", middleware.JWTAuth(jwtService))
	orderHandler.RegisterRoutes(protected)
	productHandler.RegisterRoutes(protected)

	admin := protected.Group("", middleware.RequireAdmin())
	syncHandler.RegisterAdminRoutes(admin)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
