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

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tenant-portal-svc/docs"
	"tenant-portal-svc/internal/billing"
	"tenant-portal-svc/internal/config"
	"tenant-portal-svc/internal/database"
	"tenant-portal-svc/internal/handler"
	"tenant-portal-svc/internal/middleware"
	"tenant-portal-svc/internal/repository"
	"tenant-portal-svc/internal/scheduler"
	"tenant-portal-svc/internal/service"
	"tenant-portal-svc/internal/store"
	"tenant-portal-svc/internal/upstream"
	"tenant-portal-svc/pkg/logger"
)

// @title Tenant Portal Service API
// @version 1.0
// @description Tenant portal backend for boarding houses: invoices, payments, contracts and messages to the landlord

// @contact.name API Support

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Swagger documentation
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%s", cfg.Server.Port)
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Initialize logger
	appLogger := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	appLogger.Info("Starting Tenant Portal Service...")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// The database only backs the postgres store driver
	var db *database.Database
	var gormDB *gorm.DB
	if cfg.Store.Driver == "postgres" {
		db, err = database.NewDatabase(&cfg.Database)
		if err != nil {
			appLogger.WithField("error", err).Fatal("Failed to connect to database")
		}
		if err := db.AutoMigrate(); err != nil {
			appLogger.WithField("error", err).Fatal("Failed to run database migrations")
		}
		gormDB = db.DB
		appLogger.Info("Database connected and migrated")
	}

	st, err := store.Open(context.Background(), cfg, gormDB)
	if err != nil {
		appLogger.WithField("error", err).Fatal("Failed to open store")
	}
	appLogger.WithField("driver", cfg.Store.Driver).Info("Store opened")

	// Upstream client and repositories
	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, appLogger)
	customerRepo := repository.NewCustomerRepository(client)
	contractRepo := repository.NewContractRepository(client)
	invoiceRepo := repository.NewInvoiceRepository(client)
	historyRepo := repository.NewPaymentHistoryRepository(client)
	utilityRepo := repository.NewUtilityRepository(client)
	contactRepo := repository.NewContactRepository(client)
	gatewayRepo := repository.NewPaymentGatewayRepository(client)
	schedulerLogRepo := repository.NewSchedulerLogRepository(gormDB)

	// Initialize services
	resolver := billing.StatusResolver{ZeroMeansPaid: cfg.Payment.ZeroMeansPaid}
	authService := service.NewAuthService(customerRepo, st, service.AuthOptions{
		Secret:          cfg.JWT.Secret,
		SessionTTL:      cfg.Store.SessionTTL,
		ChallengeTTL:    cfg.Auth.ChallengeTTL,
		CaptchaRequired: cfg.Auth.CaptchaRequired,
		LoginPolicy: upstream.RetryPolicy{
			Attempts: cfg.Upstream.LoginAttempts,
			Timeout:  cfg.Upstream.LoginTimeout,
			Backoff:  cfg.Upstream.LoginBackoff,
		},
	}, appLogger)
	profileService := service.NewProfileService(customerRepo, appLogger)
	contractService := service.NewContractService(contractRepo, profileService, appLogger)
	invoiceService := service.NewInvoiceService(invoiceRepo, historyRepo, gatewayRepo, resolver, appLogger)
	historyService := service.NewPaymentHistoryService(historyRepo, resolver, appLogger)
	utilityService := service.NewUtilityService(utilityRepo, appLogger)
	contactService := service.NewContactService(contactRepo, profileService, st, cfg.Store.SessionTTL, appLogger)
	preferenceService := service.NewPreferenceService(st)
	dashboardService := service.NewDashboardService(invoiceService, historyService, appLogger)

	// Stores without native expiry get a cleanup job
	var cleanup *scheduler.StoreCleanupScheduler
	if sweeper, ok := st.(store.Sweeper); ok {
		cleanup = scheduler.NewStoreCleanupScheduler(sweeper, schedulerLogRepo, appLogger, cfg.Store.CleanupCron)
		if err := cleanup.Start(); err != nil {
			appLogger.WithField("error", err).Fatal("Failed to start store cleanup scheduler")
		}
	}

	// Initialize Gin router
	router := gin.New()

	// Add middleware
	router.Use(middleware.CORS(cfg.CORS.AllowedOriginList()))
	router.Use(middleware.LoggerMiddleware(appLogger))
	router.Use(middleware.ErrorHandler(appLogger))
	router.NoRoute(middleware.NoRouteHandler())
	router.NoMethod(middleware.NoMethodHandler())
	router.HandleMethodNotAllowed = true

	// Setup routes
	handler.SetupRoutes(router,
		authService,
		profileService,
		contractService,
		invoiceService,
		historyService,
		utilityService,
		contactService,
		preferenceService,
		dashboardService,
		appLogger,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		appLogger.WithField("port", cfg.Server.Port).Info("Server starting...")
		appLogger.WithField("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)).Info("Swagger documentation available")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithField("error", err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithField("error", err).Error("Server forced to shutdown")
	}

	if cleanup != nil {
		cleanup.Stop()
	}

	if err := st.Close(); err != nil {
		appLogger.WithField("error", err).Error("Failed to close store")
	}

	if db != nil {
		if err := db.Close(); err != nil {
			appLogger.WithField("error", err).Error("Failed to close database connection")
		}
	}

	appLogger.Info("Server exited successfully")
}
