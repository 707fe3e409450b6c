package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sellerdesk/recon-api/internal/application/service"
	"github.com/sellerdesk/recon-api/internal/config"
	"github.com/sellerdesk/recon-api/internal/infrastructure/database"
	"github.com/sellerdesk/recon-api/internal/infrastructure/repository"
	"github.com/sellerdesk/recon-api/internal/presentation/http/handler"
	"github.com/sellerdesk/recon-api/internal/presentation/http/routes"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if cfg.App.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db, log); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	tolerance, err := decimal.NewFromString(cfg.Engine.AmountTolerance)
	if err != nil {
		log.Fatalf("Invalid ENGINE_AMOUNT_TOLERANCE %q: %v", cfg.Engine.AmountTolerance, err)
	}

	// Initialize repositories
	masterRepo := repository.NewMasterRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)
	runRepo := repository.NewRunRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	reconService := service.NewReconciliationService(masterRepo, snapshotRepo, runRepo, tolerance, log)
	masterService := service.NewMasterService(masterRepo)
	summaryService := service.NewSummaryService(summaryRepo)
	reportService := service.NewReportService(masterRepo, summaryRepo, runRepo, service.ReportThresholds{
		MinSettlementRate:   cfg.Engine.MinSettlementRate,
		MaxReturnRate:       cfg.Engine.MaxReturnRate,
		SettlementDelayDays: cfg.Engine.SettlementDelayDays,
	})

	// Initialize handlers
	handlers := &routes.Handlers{
		Run:     handler.NewRunHandler(reconService),
		Master:  handler.NewMasterHandler(masterService),
		Summary: handler.NewSummaryHandler(summaryService),
		Report:  handler.NewReportHandler(reportService),
		Anomaly: handler.NewAnomalyHandler(reconService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Log:             log,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.WithFields(logrus.Fields{
		"port": port,
		"env":  cfg.App.Env,
	}).Infof("Starting %s server", cfg.App.Name)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
