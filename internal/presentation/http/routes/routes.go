package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/markvilla/selfcheckout-api/internal/config"
	domainRepo "github.com/markvilla/selfcheckout-api/internal/domain/repository"
	"github.com/markvilla/selfcheckout-api/internal/presentation/http/handler"
	"github.com/markvilla/selfcheckout-api/internal/presentation/http/middleware"
	"github.com/markvilla/selfcheckout-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Checkout    *handler.CheckoutHandler
	Transaction *handler.TransactionHandler
	Payment     *handler.PaymentHandler
	Receipt     *handler.ReceiptHandler
	Printer     *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerPublicRoutes(v1, h)

		// Protected routes (terminal authentication required)
		protected := v1.Group("")
		protected.Use(middleware.TerminalAuthMiddleware(deps.JWTManager))

		// Per-terminal rate limiter
		rateLimiter := middleware.NewTerminalRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerPublicRoutes(v1 *gin.RouterGroup, h *Handlers) {
	qr := v1.Group("/qr")
	{
		// Scanners on shopper phones hit these without terminal credentials.
		qr.POST("/scan", h.Checkout.Scan)
		qr.GET("/store/:businessId", h.Checkout.StoreEntry)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Cart lifecycle
	registerCartRoutes(protected, h)

	// Transaction submission and status
	registerTransactionRoutes(protected, h, deps)

	// Cash reconciliation
	registerPaymentRoutes(protected, h)

	// Receipts
	registerReceiptRoutes(protected, h)

	// Printer
	registerPrinterRoutes(protected, h)
}

func registerCartRoutes(protected *gin.RouterGroup, h *Handlers) {
	cart := protected.Group("/cart")
	{
		cart.POST("", h.Checkout.StartCart)
		cart.GET("", h.Checkout.CurrentCart)
		cart.DELETE("", h.Checkout.Abandon)
		cart.POST("/items", h.Checkout.AddItem)
		cart.DELETE("/items/:productId", h.Checkout.RemoveItem)
		cart.POST("/handoff", h.Checkout.Handoff)
	}
}

func registerTransactionRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	transactions := protected.Group("/transactions")
	{
		// Submission uses idempotency middleware so a retried request cannot
		// create a second sale.
		transactions.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Checkout.Submit)
		transactions.GET("/:id/status", h.Transaction.GetStatus)
		transactions.GET("/:id/wait", h.Transaction.Wait)
	}
}

func registerPaymentRoutes(protected *gin.RouterGroup, h *Handlers) {
	payments := protected.Group("/payments")
	{
		payments.PUT("/:tn/tender", h.Payment.Tender)
		payments.POST("/:tn/exact", h.Payment.Exact)
		payments.POST("/:tn/confirm", h.Payment.Confirm)
	}
}

func registerReceiptRoutes(protected *gin.RouterGroup, h *Handlers) {
	receipts := protected.Group("/receipts")
	{
		receipts.GET("/:tn", h.Receipt.GetReceipt)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
		printerGroup.POST("/receipt/:tn", h.Printer.PrintReceipt)
	}
}
