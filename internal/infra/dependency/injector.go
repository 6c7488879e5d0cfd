// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/spendings-bot/ledger/config"
	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/application/usecase/category"
	"github.com/spendings-bot/ledger/internal/application/usecase/currency"
	"github.com/spendings-bot/ledger/internal/application/usecase/exchange"
	"github.com/spendings-bot/ledger/internal/application/usecase/owner"
	"github.com/spendings-bot/ledger/internal/application/usecase/report"
	"github.com/spendings-bot/ledger/internal/application/usecase/spending"
	"github.com/spendings-bot/ledger/internal/application/usecase/transfer"
	"github.com/spendings-bot/ledger/internal/infra/server/router"
	"github.com/spendings-bot/ledger/internal/integration/adapters"
	"github.com/spendings-bot/ledger/internal/integration/cache"
	"github.com/spendings-bot/ledger/internal/integration/entrypoint/controller"
	"github.com/spendings-bot/ledger/internal/integration/entrypoint/middleware"
	"github.com/spendings-bot/ledger/internal/integration/persistence"
)

// Externals holds the out-of-process collaborators. Nil fields fall back to
// a disabled implementation.
type Externals struct {
	RateSource  adapter.RateSource
	Publisher   adapter.EventPublisher
	Idempotency adapter.IdempotencyStore
	RedisHealth func() bool
}

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	DB           *gorm.DB
	Router       *router.Router
	TokenService adapter.TokenService
	RateLimiter  *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, externals Externals) *Injector {
	// Create repositories
	ownerRepo := persistence.NewOwnerRepository(db)
	currencyRepo := persistence.NewCurrencyRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	spendingRepo := persistence.NewSpendingRepository(db)
	rateRepo := persistence.NewExchangeRateRepository(db)

	// Create adapters/services
	tokenService := adapters.NewServiceTokenService(cfg.Auth.TokenSecret, cfg.Auth.TokenIssuer)
	publisher := externals.Publisher
	resolver := exchange.NewResolver(cache.NewRateCache(), rateRepo, externals.RateSource, cfg.Rates.FetchTimeout)

	// Create owner use cases
	onboardOwnerUseCase := owner.NewOnboardOwnerUseCase(ownerRepo)
	deleteOwnerDataUseCase := owner.NewDeleteOwnerDataUseCase(ownerRepo, publisher)

	// Create currency use cases
	addCurrencyUseCase := currency.NewAddCurrencyUseCase(currencyRepo)
	archiveCurrencyUseCase := currency.NewArchiveCurrencyUseCase(currencyRepo, publisher)
	restoreCurrencyUseCase := currency.NewRestoreCurrencyUseCase(currencyRepo)
	removeCurrencyUseCase := currency.NewRemoveCurrencyUseCase(currencyRepo)
	listCurrenciesUseCase := currency.NewListCurrenciesUseCase(currencyRepo, ownerRepo)
	setMainCurrencyUseCase := currency.NewSetMainCurrencyUseCase(currencyRepo, publisher)
	getMainCurrencyUseCase := currency.NewGetMainCurrencyUseCase(ownerRepo)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	archiveCategoryUseCase := category.NewArchiveCategoryUseCase(categoryRepo)
	restoreCategoryUseCase := category.NewRestoreCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, publisher)

	// Create spending use cases
	createSpendingUseCase := spending.NewCreateSpendingUseCase(spendingRepo, publisher)
	getSpendingUseCase := spending.NewGetSpendingUseCase(spendingRepo)
	deleteSpendingUseCase := spending.NewDeleteSpendingUseCase(spendingRepo, publisher)
	listSpendingsUseCase := spending.NewListSpendingsUseCase(spendingRepo)
	listPeriodsUseCase := spending.NewListPeriodsUseCase(spendingRepo)

	// Create report and exchange use cases
	generateReportUseCase := report.NewGenerateReportUseCase(spendingRepo, ownerRepo, resolver, cfg.Rates.ReportConcurrency)
	monthlyReportUseCase := report.NewMonthlyReportUseCase(generateReportUseCase)
	convertAmountUseCase := exchange.NewConvertAmountUseCase(resolver)
	recordRateUseCase := exchange.NewRecordRateUseCase(rateRepo)

	// Create transfer use cases
	exportLedgerUseCase := transfer.NewExportLedgerUseCase(spendingRepo)
	importLedgerUseCase := transfer.NewImportLedgerUseCase(spendingRepo, publisher)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, externals.RedisHealth)

	ownerController := controller.NewOwnerController(
		onboardOwnerUseCase,
		deleteOwnerDataUseCase,
	)

	currencyController := controller.NewCurrencyController(
		addCurrencyUseCase,
		archiveCurrencyUseCase,
		restoreCurrencyUseCase,
		removeCurrencyUseCase,
		listCurrenciesUseCase,
		setMainCurrencyUseCase,
		getMainCurrencyUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		archiveCategoryUseCase,
		restoreCategoryUseCase,
		deleteCategoryUseCase,
	)

	spendingController := controller.NewSpendingController(
		createSpendingUseCase,
		getSpendingUseCase,
		deleteSpendingUseCase,
		listSpendingsUseCase,
		listPeriodsUseCase,
	)

	reportController := controller.NewReportController(generateReportUseCase, monthlyReportUseCase)
	exchangeController := controller.NewExchangeController(convertAmountUseCase, recordRateUseCase)
	transferController := controller.NewTransferController(exportLedgerUseCase, importLedgerUseCase)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var rateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		rateLimiter = middleware.NewRateLimiterWithConfig(1000, 1000)
	} else {
		rateLimiter = middleware.NewRateLimiterWithConfig(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	var idempotency gin.HandlerFunc
	if externals.Idempotency != nil {
		idempotency = middleware.Idempotency(externals.Idempotency, idempotencyTTL(cfg))
	}

	// Create router
	r := router.NewRouter(
		healthController,
		ownerController,
		currencyController,
		categoryController,
		spendingController,
		reportController,
		exchangeController,
		transferController,
		authMiddleware,
		rateLimiter,
		idempotency,
	)

	return &Injector{
		Config:       cfg,
		DB:           db,
		Router:       r,
		TokenService: tokenService,
		RateLimiter:  rateLimiter,
	}
}

func idempotencyTTL(cfg *config.Config) time.Duration {
	if cfg.Redis.IdempotencyTTL <= 0 {
		return 10 * time.Minute
	}
	return cfg.Redis.IdempotencyTTL
}
