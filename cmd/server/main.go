package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"naklos/internal/app"
	"naklos/internal/config"
	"naklos/internal/handler"
	internalRedis "naklos/internal/redis"
	"naklos/internal/repository"
	"naklos/internal/repository/memory"
	"naklos/internal/repository/postgres"
	"naklos/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	var store repository.Store
	var redisClient *redis.Client

	switch cfg.Store.Backend {
	case config.BackendMemory:
		// Single-process mode: no PostgreSQL, no Redis.
		store = memory.NewStore()
		log.Println("Using in-memory store")

	default:
		db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()
		log.Println("Connected to PostgreSQL")

		redisClient, err = app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		log.Println("Connected to Redis")

		store = postgres.NewStore(db)
	}

	// Wire dependencies.
	server := wireServer(store, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
// redisClient may be nil in memory-backend mode; the Redis-backed lock and
// cache stores are then left out and the services fall back to the store
// transaction alone.
func wireServer(store repository.Store, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Initialize Redis stores.
	var lockStore service.LockStore
	var invoiceLockStore service.InvoiceLockStore
	var warningCache service.WarningCache
	var warningInvalidator service.WarningInvalidator
	if redisClient != nil {
		locks := internalRedis.NewLockStore(redisClient)
		lockStore = locks
		invoiceLockStore = locks
		cache := internalRedis.NewCacheStore(redisClient)
		warningCache = cache
		warningInvalidator = cache
	}

	// Initialize services.
	notificationService := service.NewNotificationService()
	fleetService := service.NewFleetService(store)
	documentService := service.NewDocumentService(store, notificationService, warningInvalidator)
	assignmentService := service.NewAssignmentService(store, lockStore, notificationService)
	tripService := service.NewTripService(store, notificationService)
	invoiceService := service.NewInvoiceService(store, invoiceLockStore)
	warningService := service.NewWarningService(store, warningCache)

	// Initialize handlers.
	fleetHandler := handler.NewFleetHandler(fleetService)
	documentHandler := handler.NewDocumentHandler(documentService)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService)
	tripHandler := handler.NewTripHandler(tripService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	warningHandler := handler.NewWarningHandler(warningService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		FleetHandler:      fleetHandler,
		DocumentHandler:   documentHandler,
		AssignmentHandler: assignmentHandler,
		TripHandler:       tripHandler,
		InvoiceHandler:    invoiceHandler,
		WarningHandler:    warningHandler,
		RedisClient:       redisClient,
		NewRelicApp:       nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
