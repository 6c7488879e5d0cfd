package dependency

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendings-bot/ledger/config"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/integration/entrypoint/dto"
	"github.com/spendings-bot/ledger/internal/testutil"
)

type apiClient struct {
	t      *testing.T
	engine *gin.Engine
	token  string
}

func newAPIClient(t *testing.T, ownerID string) (*apiClient, *testutil.StubRateSource) {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		Auth:   config.AuthConfig{TokenSecret: "test-secret", TokenIssuer: "spendings-bot"},
		Rates:  config.RatesConfig{FetchTimeout: time.Second, ReportConcurrency: 2},
	}
	source := testutil.NewStubRateSource()
	database := testutil.NewDatabase(t)

	injector := NewInjector(cfg, database.DB(), Externals{RateSource: source})
	token, err := injector.TokenService.GenerateToken(context.Background(), ownerID, time.Hour)
	require.NoError(t, err)

	return &apiClient{t: t, engine: injector.Router.Setup(cfg.Server.Environment), token: token}, source
}

func (c *apiClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	c.engine.ServeHTTP(recorder, req)
	return recorder
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var value T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &value), recorder.Body.String())
	return value
}

func TestAPI_HealthAndAuth(t *testing.T) {
	client, _ := newAPIClient(t, "alice")

	recorder := httptest.NewRecorder()
	client.engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = httptest.NewRecorder()
	client.engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/currencies", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAPI_SpendingToReport(t *testing.T) {
	client, _ := newAPIClient(t, "alice")

	onboarded := decode[dto.OnboardResponse](t, client.do(http.MethodPost, "/api/v1/owner/onboard", nil))
	assert.Equal(t, "USD", onboarded.MainCurrency)
	assert.ElementsMatch(t, []string{"USD", "EUR", "CNY"}, onboarded.CreatedCurrencies)

	created := client.do(http.MethodPost, "/api/v1/spendings", dto.CreateSpendingRequest{
		Amount:     "12,50",
		Currency:   "eur",
		Category:   "Food",
		OccurredAt: "2024-03-05",
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	spending := decode[dto.CreateSpendingResponse](t, created).Spending
	assert.Equal(t, "12.50", spending.Amount)
	assert.Equal(t, "EUR", spending.Currency)

	fetched := client.do(http.MethodGet, "/api/v1/spendings/"+spending.ID, nil)
	assert.Equal(t, http.StatusOK, fetched.Code)

	missing := client.do(http.MethodGet, "/api/v1/spendings/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)

	seeded := client.do(http.MethodPost, "/api/v1/rates", dto.RecordRateRequest{
		Base: "EUR", Quote: "USD", Date: "2024-03-05", Rate: "1.10",
	})
	require.Equal(t, http.StatusCreated, seeded.Code, seeded.Body.String())

	reported := client.do(http.MethodGet, "/api/v1/reports?from=2024-03-01&to=2024-04-01", nil)
	require.Equal(t, http.StatusOK, reported.Code, reported.Body.String())
	report := decode[dto.ReportResponse](t, reported)
	assert.Equal(t, "USD", report.TargetCurrency)
	assert.Equal(t, "13.75", report.Total)
	assert.Equal(t, []dto.ReportLineResponse{{Key: "Food", Amount: "13.75"}}, report.ByCategory)
	assert.Equal(t, []dto.ReportLineResponse{{Key: "EUR", Amount: "12.50"}}, report.ByCurrency)

	monthly := decode[dto.ReportResponse](t, client.do(http.MethodGet, "/api/v1/reports/monthly/2024/3", nil))
	assert.Equal(t, "13.75", monthly.Total)

	page := decode[dto.SpendingPageResponse](t, client.do(http.MethodGet, "/api/v1/spendings?currency=EUR", nil))
	require.Len(t, page.Spendings, 1)
	assert.False(t, page.HasMore)

	periods := decode[dto.PeriodListResponse](t, client.do(http.MethodGet, "/api/v1/spendings/periods", nil))
	assert.Equal(t, []dto.PeriodResponse{{Year: 2024, Month: 3, Count: 1}}, periods.Periods)

	deleted := client.do(http.MethodDelete, "/api/v1/spendings/"+spending.ID, nil)
	assert.Equal(t, http.StatusNoContent, deleted.Code)
	assert.Equal(t, http.StatusNotFound, client.do(http.MethodGet, "/api/v1/spendings/"+spending.ID, nil).Code)
}

func TestAPI_ReportWithoutRateIsUnavailable(t *testing.T) {
	client, _ := newAPIClient(t, "alice")
	client.do(http.MethodPost, "/api/v1/owner/onboard", nil)

	client.do(http.MethodPost, "/api/v1/spendings", dto.CreateSpendingRequest{
		Amount: "5", Currency: "CNY", Category: "Food", OccurredAt: "2024-03-05",
	})

	recorder := client.do(http.MethodGet, "/api/v1/reports", nil)
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, string(domainerror.ErrCodeReportIncomplete), decode[dto.ErrorResponse](t, recorder).Code)
}

func TestAPI_CurrencyErrorsMapToStatus(t *testing.T) {
	client, _ := newAPIClient(t, "alice")
	client.do(http.MethodPost, "/api/v1/owner/onboard", nil)

	invalid := client.do(http.MethodPost, "/api/v1/currencies", dto.CurrencyCodeRequest{Code: "US"})
	assert.Equal(t, http.StatusBadRequest, invalid.Code)
	assert.Equal(t, string(domainerror.ErrCodeInvalidCurrencyCode), decode[dto.ErrorResponse](t, invalid).Code)

	duplicate := client.do(http.MethodPost, "/api/v1/currencies", dto.CurrencyCodeRequest{Code: "EUR"})
	assert.Equal(t, http.StatusConflict, duplicate.Code)

	unknown := client.do(http.MethodPost, "/api/v1/currencies/GBP/archive", nil)
	assert.Equal(t, http.StatusNotFound, unknown.Code)

	archived := client.do(http.MethodPost, "/api/v1/currencies/USD/archive", nil)
	require.Equal(t, http.StatusOK, archived.Code, archived.Body.String())
	assert.NotEmpty(t, decode[dto.ArchiveCurrencyResponse](t, archived).NewMain)

	setMain := client.do(http.MethodPut, "/api/v1/currencies/main", dto.CurrencyCodeRequest{Code: "USD"})
	assert.Equal(t, http.StatusBadRequest, setMain.Code)
}

func TestAPI_CategoryReassignOnDelete(t *testing.T) {
	client, _ := newAPIClient(t, "alice")
	client.do(http.MethodPost, "/api/v1/owner/onboard", nil)
	client.do(http.MethodPost, "/api/v1/spendings", dto.CreateSpendingRequest{Amount: "3", Currency: "USD", Category: "Food"})

	inUse := client.do(http.MethodDelete, "/api/v1/categories/Food", nil)
	assert.Equal(t, http.StatusConflict, inUse.Code)

	moved := client.do(http.MethodDelete, "/api/v1/categories/Food?reassign_to=Groceries", nil)
	require.Equal(t, http.StatusOK, moved.Code, moved.Body.String())
	assert.Equal(t, dto.DeleteCategoryResponse{Removed: "Food", ReassignTo: "Groceries", Moved: 1},
		decode[dto.DeleteCategoryResponse](t, moved))
}

func TestAPI_ImportAndExportCSV(t *testing.T) {
	client, _ := newAPIClient(t, "alice")
	client.do(http.MethodPost, "/api/v1/owner/onboard", nil)

	file := "date,amount,currency,category,description\n" +
		"2024-01-02,4.20,USD,Coffee,flat white\n" +
		"2024-01-03,abc,USD,Coffee,\n"
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", strings.NewReader(file))
	req.Header.Set("Authorization", "Bearer "+client.token)
	req.Header.Set("Content-Type", "text/csv")
	recorder := httptest.NewRecorder()
	client.engine.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	result := decode[dto.ImportResponse](t, recorder)
	assert.Equal(t, 1, result.Accepted)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, 3, result.Rejected[0].Line)
	assert.Equal(t, []string{"Coffee"}, result.NewCategories)

	exported := client.do(http.MethodGet, "/api/v1/export", nil)
	require.Equal(t, http.StatusOK, exported.Code)
	assert.Contains(t, exported.Header().Get("Content-Type"), "text/csv")
	assert.Equal(t,
		"date,amount,currency,category,description\n2024-01-02,4.20,USD,Coffee,flat white\n",
		exported.Body.String())

	asJSON := decode[dto.ExportResponse](t, client.do(http.MethodGet, "/api/v1/export?format=json", nil))
	require.Len(t, asJSON.Rows, 1)
	assert.Equal(t, "4.20", asJSON.Rows[0].Amount)
}
