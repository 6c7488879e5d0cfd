// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/spendings-bot/ledger/config"
	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/infra/dependency"
	"github.com/spendings-bot/ledger/internal/integration/adapters"
	"github.com/spendings-bot/ledger/internal/integration/cache"
	"github.com/spendings-bot/ledger/test/integration/mock"
)

const (
	testTokenSecret = "test-service-token-secret"
	testTokenIssuer = "spendings-bot"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server   *httptest.Server
	client   *http.Client
	response *response

	// Request building
	headers map[string]string
	token   string

	// Values captured from earlier responses, substituted as {{name}}
	remembered map[string]string

	// Collaborators
	db           *mock.Db
	redis        *mock.Redis
	rateProvider *mock.ApiMock
	tokenService adapter.TokenService
}

type response struct {
	status  int
	headers http.Header
	raw     []byte
	body    any
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

var rateProvider *mock.ApiMock

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		rateProvider = mock.NewApiServer()
		rateProvider.Start()
	})

	ctx.AfterSuite(func() {
		rateProvider.Close()
	})
}

// InitializeScenario registers all step definitions. Every scenario gets a
// fresh server over emptied shared stores.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		if rateProvider == nil {
			rateProvider = mock.NewApiServer()
			rateProvider.Start()
		}

		tc := &TestContext{
			client:       &http.Client{Timeout: 10 * time.Second},
			headers:      make(map[string]string),
			remembered:   make(map[string]string),
			db:           mock.NewDb(),
			redis:        mock.NewRedis(),
			rateProvider: rateProvider,
		}
		if err := tc.db.ClearDB(); err != nil {
			return ctx, err
		}
		if err := tc.redis.Clear(); err != nil {
			return ctx, err
		}
		tc.rateProvider.Reset()

		cfg := &config.Config{
			Server: config.ServerConfig{Environment: "test"},
			Auth:   config.AuthConfig{TokenSecret: testTokenSecret, TokenIssuer: testTokenIssuer},
			Redis:  config.RedisConfig{IdempotencyTTL: time.Minute},
			Rates:  config.RatesConfig{FetchTimeout: 2 * time.Second, ReportConcurrency: 4},
		}

		injector := dependency.NewInjector(cfg, tc.db.DbConn, dependency.Externals{
			RateSource: adapters.NewExchangeRateHostSource(adapters.ExchangeRateHostConfig{
				BaseURL:   tc.rateProvider.GetUrl(),
				AccessKey: "test-key",
			}, tc.client),
			Idempotency: cache.NewRedisIdempotencyStore(tc.redis.Client),
			RedisHealth: tc.redis.Healthy,
		})
		tc.tokenService = injector.TokenService
		tc.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc := GetTestContext(ctx); tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerSetupSteps(ctx)
	registerRequestSteps(ctx)
	registerResponseSteps(ctx)
	registerStoreSteps(ctx)
}
