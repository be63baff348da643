// Command server runs the MedStock inventory API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appaudit "github.com/medstock/backend/internal/application/audit"
	catalogapp "github.com/medstock/backend/internal/application/catalog"
	identityapp "github.com/medstock/backend/internal/application/identity"
	inventoryapp "github.com/medstock/backend/internal/application/inventory"
	partnerapp "github.com/medstock/backend/internal/application/partner"
	reportapp "github.com/medstock/backend/internal/application/report"
	retentionapp "github.com/medstock/backend/internal/application/retention"
	tradeapp "github.com/medstock/backend/internal/application/trade"
	"github.com/medstock/backend/internal/domain/retention"
	"github.com/medstock/backend/internal/infrastructure/auth"
	"github.com/medstock/backend/internal/infrastructure/cache"
	"github.com/medstock/backend/internal/infrastructure/config"
	"github.com/medstock/backend/internal/infrastructure/logger"
	"github.com/medstock/backend/internal/infrastructure/persistence"
	"github.com/medstock/backend/internal/infrastructure/scheduler"
	"github.com/medstock/backend/internal/infrastructure/storage"
	"github.com/medstock/backend/internal/infrastructure/telemetry"
	"github.com/medstock/backend/internal/interfaces/http/handler"
	"github.com/medstock/backend/internal/interfaces/http/middleware"
	"github.com/medstock/backend/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	serviceName := cfg.Telemetry.ServiceName
	if serviceName == "" {
		serviceName = cfg.App.Name
	}
	telemetryCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       serviceName,
		Insecure:          cfg.Telemetry.Insecure,
	}

	// The OTLP log bridge needs a logger to report its own startup, so the
	// final logger is rebuilt with the bridge core once it exists.
	logsCfg := telemetryCfg
	logsCfg.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, logsCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize OTLP logs", zap.Error(err))
	}
	if loggerProvider.IsEnabled() {
		log, err = logger.New(logCfg, loggerProvider.ZapCore(logger.ParseLevel(cfg.Log.Level)))
		if err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting MedStock API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	metricsCfg := telemetry.MetricsConfig{Config: telemetryCfg, ExportInterval: cfg.Telemetry.MetricsInterval}
	metricsCfg.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled
	meterProvider, err := telemetry.NewMeterProvider(ctx, metricsCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database, persistence.Options{
		Logger:        log,
		LogLevel:      cfg.Log.Level,
		SlowThreshold: cfg.Telemetry.DBSlowQueryThresh,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        db.Driver,
	}, log); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	// Redis backs the token blacklist and the cleanup lock. Without it both
	// fall back to process-local implementations.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err), zap.String("addr", cfg.Redis.Addr()))
		}
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	var tokenBlacklist auth.TokenBlacklist
	var runLock retention.RunLock
	if redisClient != nil {
		tokenBlacklist = auth.NewRedisTokenBlacklist(redisClient)
		runLock = cache.NewRunLock(redisClient, cfg.Retention.LockKey, cfg.Retention.LockTTL)
	} else {
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
		runLock = cache.NewInMemoryRunLock(cfg.Retention.LockTTL)
		log.Warn("Redis disabled, token blacklist and cleanup lock are process-local")
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Repositories
	gormDB := db.DB
	userRepo := persistence.NewGormUserRepository(gormDB)
	notificationRepo := persistence.NewGormNotificationRepository(gormDB)
	vendorRepo := persistence.NewGormVendorRepository(gormDB)
	vendorItemRepo := persistence.NewGormVendorItemRepository(gormDB)
	itemRepo := persistence.NewGormItemRepository(gormDB)
	locationRepo := persistence.NewGormLocationRepository(gormDB)
	stockRepo := persistence.NewGormStockRecordRepository(gormDB)
	stockRuleRepo := persistence.NewGormStockRuleRepository(gormDB)
	mrnRepo := persistence.NewGormMRNRepository(gormDB)
	binningLogRepo := persistence.NewGormBinningLogRepository(gormDB)
	orderRepo := persistence.NewGormPurchaseOrderRepository(gormDB)
	asnRepo := persistence.NewGormASNRepository(gormDB)
	activityRepo := persistence.NewGormActivityLogRepository(gormDB)
	reportRepo := persistence.NewGormReportRepository(gormDB)
	retentionStore := persistence.NewGormRetentionStore(gormDB, cfg.Retention.StatementTimeout)
	txScope := persistence.NewGormTransactionScope(gormDB)

	// Application services
	recorder := appaudit.NewActivityRecorder(activityRepo, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, tokenBlacklist, recorder, log)
	userService := identityapp.NewUserService(userRepo, tokenBlacklist, cfg.JWT.RefreshTokenExpiration, recorder, log)
	if cfg.App.Admin.Password != "" {
		if _, err := userService.EnsureAdmin(ctx, cfg.App.Admin.Username, cfg.App.Admin.Email, cfg.App.Admin.Password); err != nil {
			log.Fatal("Failed to seed administrator", zap.Error(err))
		}
	} else {
		log.Warn("MEDSTOCK_APP_ADMIN_PASSWORD not set, no administrator is seeded")
	}
	notificationService := identityapp.NewNotificationService(notificationRepo, userRepo, recorder)
	activityService := appaudit.NewActivityLogService(activityRepo)
	deletionLogService := appaudit.NewDeletionLogService(persistence.NewGormDeletionLogRepository(gormDB))
	vendorService := partnerapp.NewVendorService(vendorRepo, recorder)
	vendorItemService := partnerapp.NewVendorItemService(vendorItemRepo, vendorRepo, itemRepo, recorder)
	itemService := catalogapp.NewItemService(itemRepo, recorder)
	orderService := tradeapp.NewPurchaseOrderService(orderRepo, vendorRepo, itemRepo, recorder, log)
	asnService := tradeapp.NewASNService(asnRepo, orderRepo, recorder)
	locationService := inventoryapp.NewLocationService(locationRepo, recorder)
	stockService := inventoryapp.NewStockService(stockRepo, itemRepo, locationRepo, recorder)
	stockRuleService := inventoryapp.NewStockRuleService(stockRuleRepo, itemRepo, recorder)
	mrnService := inventoryapp.NewMRNService(mrnRepo, vendorRepo, orderRepo, recorder, log)
	binningService := inventoryapp.NewBinningService(txScope, binningLogRepo, locationRepo, recorder, log)

	var archive reportapp.Archive
	if cfg.Storage.Enabled {
		s3Archive, err := storage.NewS3Archive(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize report archive", zap.Error(err))
		}
		if err := s3Archive.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare report bucket", zap.Error(err), zap.String("bucket", cfg.Storage.Bucket))
		}
		archive = s3Archive
		log.Info("Report archive enabled", zap.String("bucket", cfg.Storage.Bucket))
	}
	reportService := reportapp.NewReportService(reportRepo, archive)

	retentionMetrics, err := telemetry.NewRetentionMetrics(telemetry.RetentionMeter(meterProvider))
	if err != nil {
		log.Fatal("Failed to create retention metrics", zap.Error(err))
	}
	cleanupOpts := []retentionapp.Option{
		retentionapp.WithRunLock(runLock),
		retentionapp.WithMetrics(retentionMetrics),
		retentionapp.WithRunTimeout(cfg.Retention.RunTimeout),
		retentionapp.WithLogger(log),
	}

	// The cron trigger is built before the service so the service can report
	// the next activation. The task only runs once the trigger is started.
	var (
		cleanupService *retentionapp.CleanupService
		jobScheduler   *scheduler.Scheduler
		cleanupTrigger *scheduler.CronTrigger
	)
	if cfg.Scheduler.Enabled {
		jobScheduler, err = scheduler.NewScheduler(scheduler.Config{
			MaxConcurrentJobs: cfg.Scheduler.MaxConcurrentJobs,
			QueueSize:         scheduler.DefaultConfig().QueueSize,
			JobTimeout:        cfg.Scheduler.JobTimeout,
			RetryAttempts:     cfg.Scheduler.RetryAttempts,
			RetryDelay:        cfg.Scheduler.RetryDelay,
		}, log)
		if err != nil {
			log.Fatal("Failed to create scheduler", zap.Error(err))
		}
		cleanupTrigger, err = scheduler.NewCronTrigger("retention-cleanup", cfg.Scheduler.CleanupCron,
			func(ctx context.Context) error { return runScheduledCleanup(ctx, cleanupService, log) },
			jobScheduler, cfg.Scheduler.CheckInterval, log)
		if err != nil {
			log.Fatal("Failed to create cleanup trigger", zap.Error(err))
		}
		cleanupOpts = append(cleanupOpts, retentionapp.WithSchedule(cleanupTrigger.Schedule()))
	}

	cleanupService, err = retentionapp.NewCleanupService(retentionStore, cfg.Retention.Policies, recorder, cleanupOpts...)
	if err != nil {
		log.Fatal("Failed to create cleanup service", zap.Error(err))
	}

	if jobScheduler != nil {
		if err := jobScheduler.Start(ctx); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
		if err := cleanupTrigger.Start(ctx); err != nil {
			log.Fatal("Failed to start cleanup trigger", zap.Error(err))
		}
		log.Info("Retention cleanup scheduled",
			zap.String("cron", cfg.Scheduler.CleanupCron),
			zap.Time("next_run", cleanupTrigger.Next()),
		)
	}

	// HTTP layer
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	var rateLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine := router.NewEngine(router.EngineConfig{
		ServiceName:    serviceName,
		HTTP:           cfg.HTTP,
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		RateLimiter:    rateLimiter,
		TracingEnabled: tracerProvider.IsEnabled(),
		Logger:         log,
	}, router.Handlers{
		Health:        handler.NewHealthHandler(db),
		Auth:          handler.NewAuthHandler(authService),
		User:          handler.NewUserHandler(userService),
		Notification:  handler.NewNotificationHandler(notificationService),
		ActivityLog:   handler.NewActivityLogHandler(activityService),
		Vendor:        handler.NewVendorHandler(vendorService),
		Item:          handler.NewItemHandler(itemService),
		VendorItem:    handler.NewVendorItemHandler(vendorItemService),
		PurchaseOrder: handler.NewPurchaseOrderHandler(orderService),
		ASN:           handler.NewASNHandler(asnService),
		Location:      handler.NewLocationHandler(locationService),
		Inventory:     handler.NewInventoryHandler(stockService),
		StockRule:     handler.NewStockRuleHandler(stockRuleService),
		MRN:           handler.NewMRNHandler(mrnService),
		Binning:       handler.NewBinningHandler(binningService),
		Report:        handler.NewReportHandler(reportService),
		Cleanup:       handler.NewCleanupHandler(cleanupService, deletionLogService),
	})

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	// Stop the trigger first so no new run is queued, then let an in-flight
	// run finish or time out with the scheduler.
	if cleanupTrigger != nil {
		if err := cleanupTrigger.Stop(shutdownCtx); err != nil {
			log.Warn("Failed to stop cleanup trigger", zap.Error(err))
		}
	}
	if jobScheduler != nil {
		if err := jobScheduler.Stop(shutdownCtx); err != nil {
			log.Warn("Failed to stop scheduler", zap.Error(err))
		}
	}
	if rateLimiter != nil {
		rateLimiter.Stop()
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Warn("Failed to close Redis client", zap.Error(err))
		}
	}
	if err := db.Close(); err != nil {
		log.Warn("Failed to close database", zap.Error(err))
	}
	for name, shutdown := range map[string]func(context.Context) error{
		"tracer": tracerProvider.Shutdown,
		"meter":  meterProvider.Shutdown,
		"logger": loggerProvider.Shutdown,
	} {
		if err := shutdown(shutdownCtx); err != nil {
			log.Warn("Failed to shut down telemetry provider", zap.String("provider", name), zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}

// runScheduledCleanup runs one scheduled retention sweep. A run already held
// by another instance is not an error, so the scheduler does not retry it.
func runScheduledCleanup(ctx context.Context, svc *retentionapp.CleanupService, log *zap.Logger) error {
	manifest, err := svc.Run(ctx, retentionapp.RunOptions{Trigger: retention.TriggerScheduled})
	if errors.Is(err, retentionapp.ErrRunInProgress) {
		log.Info("Scheduled cleanup skipped, another run holds the lock")
		return nil
	}
	if err != nil {
		if manifest != nil {
			log.Error("Scheduled cleanup interrupted",
				zap.String("run_id", manifest.RunID.String()),
				zap.Int("tables_done", len(manifest.Tables)),
				zap.Error(err))
		}
		return err
	}
	log.Info("Scheduled cleanup finished",
		zap.String("run_id", manifest.RunID.String()),
		zap.Int("purged", manifest.Totals.Purged),
	)
	return nil
}
