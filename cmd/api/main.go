package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/markvilla/selfcheckout-api/internal/application/service"
	"github.com/markvilla/selfcheckout-api/internal/config"
	"github.com/markvilla/selfcheckout-api/internal/infrastructure/database"
	"github.com/markvilla/selfcheckout-api/internal/infrastructure/gateway"
	"github.com/markvilla/selfcheckout-api/internal/infrastructure/repository"
	"github.com/markvilla/selfcheckout-api/internal/presentation/http/handler"
	"github.com/markvilla/selfcheckout-api/internal/presentation/http/routes"
	"github.com/markvilla/selfcheckout-api/pkg/printer"
	"github.com/markvilla/selfcheckout-api/pkg/txnumber"
	"github.com/markvilla/selfcheckout-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	cartStashRepo := repository.NewCartStashRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Remote transaction service client
	txnGateway := gateway.NewTransactionClient(cfg.Transaction.ServiceURL, cfg.Transaction.Timeout)

	// Initialize services
	checkoutService := service.NewCheckoutService(
		cartStashRepo,
		txnGateway,
		txnumber.New(),
		cfg.QR.StoreOrigin,
		cfg.QR.ImageEndpoint,
	)
	statusService := service.NewStatusService(txnGateway, cfg.Transaction.PollInterval)
	paymentService := service.NewPaymentService()
	receiptService := service.NewReceiptService(txnGateway)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, receiptService, cfg.Printer.Type, cfg.Printer.Width)

	// Initialize handlers
	handlers := &routes.Handlers{
		Checkout:    handler.NewCheckoutHandler(checkoutService),
		Transaction: handler.NewTransactionHandler(statusService),
		Payment:     handler.NewPaymentHandler(paymentService),
		Receipt:     handler.NewReceiptHandler(receiptService),
		Printer:     handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
