package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/saturday/backend/internal/application/catalog"
	inventoryapp "github.com/saturday/backend/internal/application/inventory"
	partnerapp "github.com/saturday/backend/internal/application/partner"
	tradeapp "github.com/saturday/backend/internal/application/trade"
	"github.com/saturday/backend/internal/domain/shared"
	"github.com/saturday/backend/internal/domain/trade"
	"github.com/saturday/backend/internal/infrastructure/auth"
	"github.com/saturday/backend/internal/infrastructure/cache"
	"github.com/saturday/backend/internal/infrastructure/config"
	"github.com/saturday/backend/internal/infrastructure/logger"
	"github.com/saturday/backend/internal/infrastructure/persistence"
	"github.com/saturday/backend/internal/infrastructure/telemetry"
	"github.com/saturday/backend/internal/interfaces/http/handler"
	"github.com/saturday/backend/internal/interfaces/http/middleware"
	"github.com/saturday/backend/internal/interfaces/http/router"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Saturday Stock API
//	@version		1.0
//	@description	Warehouse and merchant stock transfers with merchant sales

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

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
		_ = logger.Sync(log)
	}()

	ctx := context.Background()

	// OpenTelemetry providers. Disabled providers fall back to the global no-ops.
	telemetryCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = loggerProvider.Bridge(log, zapcore.InfoLevel)
	defer shutdownTelemetry(log, tracerProvider, meterProvider, loggerProvider)

	log.Info("Starting Saturday backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Initialize database connection with zap-backed GORM logging
	db, err := persistence.NewDatabaseWithOptions(&cfg.Database, persistence.DatabaseOptions{
		Logger:        log,
		LogLevel:      logger.MapGormLogLevel(cfg.Log.Level),
		SlowThreshold: cfg.Telemetry.DBSlowQueryThresh,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
	}, log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	meter := meterProvider.Meter("saturday-backend")
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to get underlying sql.DB", zap.Error(err))
	}
	dbMetrics, err := telemetry.NewDBMetrics(meter, sqlDB, cfg.Telemetry.DBSlowQueryThresh, log)
	if err != nil {
		log.Fatal("Failed to create database metrics", zap.Error(err))
	}
	if err := dbMetrics.Register(db.DB); err != nil {
		log.Fatal("Failed to register database metrics", zap.Error(err))
	}
	defer closeQuietly(log, "database metrics", dbMetrics)

	stockMetrics, err := telemetry.NewStockMetrics(telemetry.StockMetricsConfig{
		Meter:  meter,
		Logger: log,
		Totals: telemetry.NewGormStockTotalsProvider(db.DB),
	})
	if err != nil {
		log.Fatal("Failed to create stock metrics", zap.Error(err))
	}
	defer closeQuietly(log, "stock metrics", stockMetrics)

	// Idempotency store: Redis when configured, in-memory otherwise
	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	).CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer closeQuietly(log, "idempotency store", idempotencyStore)

	// Initialize repositories
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	merchantRepo := persistence.NewGormMerchantRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	warehouseStockRepo := persistence.NewGormWarehouseStockRepository(db.DB)
	merchantStockRepo := persistence.NewGormMerchantStockRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Initialize application services
	warehouseService := partnerapp.NewWarehouseService(warehouseRepo, log)
	merchantService := partnerapp.NewMerchantService(merchantRepo, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, log)

	warehouseProductService := inventoryapp.NewWarehouseProductService(warehouseRepo, productRepo, warehouseStockRepo, txScope, log)
	warehouseProductService.SetMetrics(stockMetrics)

	transferEngine := inventoryapp.NewTransferEngine(txScope, log)
	transferEngine.SetMetrics(stockMetrics)
	merchantProductService := inventoryapp.NewMerchantProductService(merchantRepo, merchantStockRepo, txScope, transferEngine, log)
	merchantProductService.SetMetrics(stockMetrics)

	tax, err := taxPolicy(cfg.Sales)
	if err != nil {
		log.Fatal("Invalid tax rate", zap.Error(err))
	}
	transactionService := tradeapp.NewTransactionService(merchantRepo, transactionRepo, txScope, tax, log)
	transactionService.SetMetrics(stockMetrics)

	// Health checks
	checks := map[string]handler.Pinger{"database": db}
	if pinger, ok := idempotencyStore.(handler.Pinger); ok {
		checks["redis"] = pinger
	}

	// Setup Gin
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	middleware.SetupValidator()

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.HTTPMetrics(meterProvider.Meter("saturday-backend/http"), log))

	systemHandler := handler.NewSystemHandler(version, checks)
	engine.GET("/health", systemHandler.Health)

	router.RegisterAPI(engine, router.Handlers{
		Warehouse:   handler.NewWarehouseHandler(warehouseService, warehouseProductService),
		Merchant:    handler.NewMerchantHandler(merchantService, merchantProductService, transactionService),
		Product:     handler.NewProductHandler(productService),
		Category:    handler.NewCategoryHandler(categoryService),
		Transaction: handler.NewTransactionHandler(transactionService, merchantService),
		System:      systemHandler,
	}, router.APIConfig{
		JWTService:       auth.NewJWTService(cfg.JWT),
		IdempotencyStore: idempotencyStore,
		Idempotency: shared.IdempotencyConfig{
			Enabled: cfg.Idempotency.Enabled,
			TTL:     cfg.Idempotency.TTL,
		},
		Logger: log,
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// taxPolicy turns the configured rate into the policy applied to sales
func taxPolicy(cfg config.SalesConfig) (trade.TaxPolicy, error) {
	if cfg.TaxRate == 0 {
		return trade.NoTax{}, nil
	}
	return trade.NewPercentageTaxPolicy(decimal.NewFromFloat(cfg.TaxRate))
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

func shutdownTelemetry(log *zap.Logger, providers ...shutdowner) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, p := range providers {
		if err := p.Shutdown(ctx); err != nil {
			log.Warn("Telemetry shutdown failed", zap.Error(err))
		}
	}
}

func closeQuietly(log *zap.Logger, name string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Warn("Close failed", zap.String("component", name), zap.Error(err))
	}
}
