package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/khmer25/shop-api/config"
	"github.com/khmer25/shop-api/internal/events"
	"github.com/khmer25/shop-api/internal/handler"
	"github.com/khmer25/shop-api/internal/middleware"
	"github.com/khmer25/shop-api/internal/repository"
	"github.com/khmer25/shop-api/internal/router"
	"github.com/khmer25/shop-api/internal/service"
	"github.com/khmer25/shop-api/pkg/database"
	"github.com/khmer25/shop-api/pkg/health"
	"github.com/khmer25/shop-api/pkg/logger"
	"github.com/khmer25/shop-api/pkg/redis"
	"github.com/khmer25/shop-api/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(cfg); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	log := logger.GetLogger()

	if err := validation.RegisterCustomValidators(); err != nil {
		log.Fatal("failed to register validators", zap.Error(err))
	}

	db, err := database.NewPostgresDB(database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.CloseDB(db); err != nil {
			log.Error("failed to close database", zap.Error(err))
		}
	}()

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	if err := database.Seed(db); err != nil {
		log.Fatal("failed to seed database", zap.Error(err))
	}

	cache := redis.NewClient(redis.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.Database,
		Enabled:      cfg.Redis.Enabled,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, log)
	defer cache.Close()

	producer := events.NewProducer(cfg.Kafka)
	defer producer.Close()

	monitor := health.NewMonitor(30*time.Second, log)
	monitor.Register("database", func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	if cache.IsEnabled() {
		monitor.Register("redis", cache.Ping)
	}
	monitor.Start()
	defer monitor.Stop()

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	productRepo := repository.NewProductRepository(db)
	bannerRepo := repository.NewBannerRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)

	tokenService := service.NewTokenService(tokenRepo, cfg.Auth.TokenTTL)
	userService := service.NewUserService(userRepo, tokenService, producer)
	catalogService := service.NewCatalogService(categoryRepo, supplierRepo, productRepo, bannerRepo, cache, cfg.Redis.CacheTTL)
	commerceService := service.NewCommerceService(cartRepo, orderRepo, orderItemRepo, productRepo, producer)

	authMw := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		handler.NewAuthHandler(userService),
		handler.NewUserHandler(userService),
		handler.NewCategoryHandler(catalogService),
		handler.NewSupplierHandler(catalogService),
		handler.NewProductHandler(catalogService),
		handler.NewBannerHandler(catalogService),
		handler.NewCartHandler(commerceService),
		handler.NewOrderHandler(commerceService),
		handler.NewHealthHandler(monitor),
		authMw,
		cfg,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: r.SetupRoutes(),
	}

	go func() {
		log.Info("starting server",
			zap.String("port", cfg.App.Port),
			zap.String("environment", cfg.App.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
