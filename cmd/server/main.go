package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appcheckout "github.com/erp/seeder/internal/application/checkout"
	appsales "github.com/erp/seeder/internal/application/sales"
	"github.com/erp/seeder/internal/infrastructure/config"
	"github.com/erp/seeder/internal/infrastructure/logger"
	"github.com/erp/seeder/internal/infrastructure/persistence"
	"github.com/erp/seeder/internal/infrastructure/scheduler"
	"github.com/erp/seeder/internal/interfaces/http/handler"
	"github.com/erp/seeder/internal/interfaces/http/router"
	"github.com/erp/seeder/internal/seeder"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
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
		_ = logger.Sync(log)
	}()

	log.Info("Starting entity seeder server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := persistence.SeedSandbox(context.Background(), db.DB, log); err != nil {
		log.Fatal("Failed to seed sandbox data", zap.Error(err))
	}
	log.Info("Database ready")

	customerGen, orderGen := buildGenerators(cfg, db, log)

	// Start the unattended generation schedule if enabled
	if cfg.Scheduler.Enabled {
		hour, minute, err := scheduler.ParseCronSchedule(cfg.Scheduler.CronSchedule)
		if err != nil {
			log.Fatal("Invalid scheduler.cron_schedule", zap.Error(err))
		}
		schedCfg := scheduler.DefaultSeedSchedulerConfig()
		schedCfg.Enabled = true
		schedCfg.CronHour = hour
		schedCfg.CronMinute = minute
		schedCfg.CronSchedule = cfg.Scheduler.CronSchedule
		schedCfg.CustomerCount = cfg.Scheduler.CustomerCount
		schedCfg.OrderCount = cfg.Scheduler.OrderCount

		seedScheduler := scheduler.NewSeedScheduler(schedCfg, customerGen, orderGen, log)
		if err := seedScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start seed scheduler", zap.Error(err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := seedScheduler.Stop(stopCtx); err != nil {
				log.Error("Error stopping seed scheduler", zap.Error(err))
			}
		}()
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSeederHandler(customerGen, orderGen, log)).
		Register(handler.NewSystemHandler())
	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSeconds) * time.Second,
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

	log.Info("Server exited gracefully")
}

// buildGenerators wires the repositories, application services, and the
// two generators against the database
func buildGenerators(cfg *config.Config, db *persistence.Database, log *zap.Logger) (*seeder.CustomerGenerator, *seeder.OrderGenerator) {
	storeManager := persistence.NewGormStoreManager(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	groupRepo := persistence.NewGormGroupRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	quoteRepo := persistence.NewGormQuoteRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	sequence := persistence.NewGormSequenceGenerator(db.DB)
	registry := persistence.NewGormMethodRegistry(db.DB)
	rateCollector := persistence.NewTableRateCollector(db.DB)
	accounts := persistence.NewBcryptAccountService(customerRepo)

	cartService := appcheckout.NewCartService(quoteRepo, orderRepo, sequence)
	invoiceService := appsales.NewInvoiceService(orderRepo, invoiceRepo, sequence)
	shipmentService := appsales.NewShipmentService(orderRepo, shipmentRepo, sequence)
	creditmemoService := appsales.NewCreditmemoService(log)

	settings := cfg.SeederSettings()
	chance := seeder.NewChanceSource(0)

	customerGen := seeder.NewCustomerGenerator(
		storeManager, customerRepo, addressRepo, groupRepo, accounts,
		settings, chance, log,
	)
	orderGen := seeder.NewOrderGenerator(
		storeManager, customerRepo, addressRepo, productRepo,
		quoteRepo, rateCollector, registry,
		cartService, invoiceService, shipmentService, creditmemoService,
		customerGen, settings, chance, log,
	)
	return customerGen, orderGen
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
