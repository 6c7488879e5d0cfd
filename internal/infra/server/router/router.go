// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/spendings-bot/ledger/internal/integration/entrypoint/controller"
	"github.com/spendings-bot/ledger/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine             *gin.Engine
	healthController   *controller.HealthController
	ownerController    *controller.OwnerController
	currencyController *controller.CurrencyController
	categoryController *controller.CategoryController
	spendingController *controller.SpendingController
	reportController   *controller.ReportController
	exchangeController *controller.ExchangeController
	transferController *controller.TransferController
	authMiddleware     *middleware.AuthMiddleware
	rateLimiter        *middleware.RateLimiter
	idempotency        gin.HandlerFunc
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	ownerController *controller.OwnerController,
	currencyController *controller.CurrencyController,
	categoryController *controller.CategoryController,
	spendingController *controller.SpendingController,
	reportController *controller.ReportController,
	exchangeController *controller.ExchangeController,
	transferController *controller.TransferController,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	idempotency gin.HandlerFunc,
) *Router {
	return &Router{
		healthController:   healthController,
		ownerController:    ownerController,
		currencyController: currencyController,
		categoryController: categoryController,
		spendingController: spendingController,
		reportController:   reportController,
		exchangeController: exchangeController,
		transferController: transferController,
		authMiddleware:     authMiddleware,
		rateLimiter:        rateLimiter,
		idempotency:        idempotency,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes. Every route acts for the
// owner named by the service token.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())
	if r.rateLimiter != nil {
		v1.Use(r.rateLimiter.Middleware())
	}
	if r.idempotency != nil {
		v1.Use(r.idempotency)
	}

	owner := v1.Group("/owner")
	{
		owner.POST("/onboard", r.ownerController.Onboard)
		owner.DELETE("", r.ownerController.Delete)
	}

	currencies := v1.Group("/currencies")
	{
		currencies.GET("", r.currencyController.List)
		currencies.POST("", r.currencyController.Add)
		currencies.GET("/main", r.currencyController.GetMain)
		currencies.PUT("/main", r.currencyController.SetMain)
		currencies.POST("/:code/archive", r.currencyController.Archive)
		currencies.POST("/:code/restore", r.currencyController.Restore)
		currencies.DELETE("/:code", r.currencyController.Remove)
	}

	categories := v1.Group("/categories")
	{
		categories.GET("", r.categoryController.List)
		categories.POST("", r.categoryController.Create)
		categories.POST("/:name/archive", r.categoryController.Archive)
		categories.POST("/:name/restore", r.categoryController.Restore)
		categories.DELETE("/:name", r.categoryController.Delete)
	}

	spendings := v1.Group("/spendings")
	{
		spendings.GET("", r.spendingController.List)
		spendings.POST("", r.spendingController.Create)
		spendings.GET("/periods", r.spendingController.Periods)
		spendings.GET("/:id", r.spendingController.Get)
		spendings.DELETE("/:id", r.spendingController.Delete)
	}

	reports := v1.Group("/reports")
	{
		reports.GET("", r.reportController.Generate)
		reports.GET("/monthly/:year/:month", r.reportController.Monthly)
	}

	rates := v1.Group("/rates")
	{
		rates.GET("/convert", r.exchangeController.Convert)
		rates.POST("", r.exchangeController.Record)
	}

	v1.GET("/export", r.transferController.Export)
	v1.POST("/import", r.transferController.Import)
}
