package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/application/usecase/exchange"
	"github.com/spendings-bot/ledger/internal/application/usecase/spending"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/integration/cache"
	"github.com/spendings-bot/ledger/internal/integration/persistence"
	"github.com/spendings-bot/ledger/internal/testutil"
)

const owner = "owner-1"

var march1 = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	generate     *GenerateReportUseCase
	monthly      *MonthlyReportUseCase
	create       *spending.CreateSpendingUseCase
	currencyRepo adapter.CurrencyRepository
	source       *testutil.StubRateSource
}

func newFixture(t *testing.T) *fixture {
	database := testutil.NewDatabase(t)
	ownerRepo := persistence.NewOwnerRepository(database.DB())
	spendingRepo := persistence.NewSpendingRepository(database.DB())
	source := testutil.NewStubRateSource()
	resolver := exchange.NewResolver(cache.NewRateCache(), persistence.NewExchangeRateRepository(database.DB()), source, time.Second)

	_, err := ownerRepo.Onboard(context.Background(), owner, entity.DefaultCurrencies, entity.DefaultCategories)
	require.NoError(t, err)

	generate := NewGenerateReportUseCase(spendingRepo, ownerRepo, resolver, 2)
	return &fixture{
		generate:     generate,
		monthly:      NewMonthlyReportUseCase(generate),
		create:       spending.NewCreateSpendingUseCase(spendingRepo, nil),
		currencyRepo: persistence.NewCurrencyRepository(database.DB()),
		source:       source,
	}
}

func (f *fixture) add(t *testing.T, amount, currency, category string, at time.Time) {
	t.Helper()
	_, err := f.create.Execute(context.Background(), spending.Draft{
		OwnerID: owner, Amount: amount, CurrencyCode: currency, CategoryName: category, OccurredAt: at,
	})
	require.NoError(t, err)
}

func TestReport_SingleCurrencyMonth(t *testing.T) {
	f := newFixture(t)
	f.add(t, "12.50", "USD", "Food", march1)

	report, err := f.monthly.Execute(context.Background(), MonthlyReportInput{
		OwnerID: owner, Year: 2024, Month: time.March, TargetCurrency: "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, "12.50", report.Total.StringFixed(2))
	require.Len(t, report.ByCategory, 1)
	assert.Equal(t, "Food", report.ByCategory[0].Key)
	assert.Equal(t, "12.50", report.ByCategory[0].Amount.StringFixed(2))
	assert.Equal(t, 1, report.SpendingCount)
	assert.Zero(t, f.source.Calls())
}

func TestReport_ConvertsWithDatedRate(t *testing.T) {
	f := newFixture(t)
	f.source.Set("EUR", "USD", march1, "1.10")
	f.add(t, "10.00", "USD", "Food", march1)
	f.add(t, "5.05", "EUR", "Food", march1.Add(3*time.Hour))
	f.add(t, "20.00", "EUR", "Travel", march1.Add(5*time.Hour))

	report, err := f.generate.Execute(context.Background(), GenerateReportInput{
		OwnerID: owner, From: march1, To: march1.AddDate(0, 1, 0), TargetCurrency: "USD",
	})
	require.NoError(t, err)

	// 5.05 * 1.10 = 5.555 rounds half-even to 5.56; 20 * 1.10 = 22.00.
	assert.Equal(t, "37.56", report.Total.StringFixed(2))
	assert.Equal(t, "22.00", entity.Lookup(report.ByCategory, "Travel").StringFixed(2))
	assert.Equal(t, "15.56", entity.Lookup(report.ByCategory, "Food").StringFixed(2))
	assert.Equal(t, "25.05", entity.Lookup(report.ByCurrency, "EUR").StringFixed(2), "native totals")
	assert.Equal(t, "10.00", entity.Lookup(report.ByCurrency, "USD").StringFixed(2))
	assert.EqualValues(t, 1, f.source.Calls(), "one fetch per currency and day")

	sum := report.ByCategory[0].Amount.Add(report.ByCategory[1].Amount)
	assert.True(t, sum.Equal(report.Total))
}

func TestReport_DefaultsToMainCurrency(t *testing.T) {
	f := newFixture(t)
	f.add(t, "3", "USD", "Food", march1)

	report, err := f.generate.Execute(context.Background(), GenerateReportInput{OwnerID: owner})
	require.NoError(t, err)
	assert.Equal(t, "USD", report.TargetCurrency)
}

func TestReport_NoMainCurrency(t *testing.T) {
	f := newFixture(t)

	_, err := f.generate.Execute(context.Background(), GenerateReportInput{OwnerID: "fresh-owner"})
	assert.Equal(t, domainerror.ErrCodeMainCurrencyNotSet, domainerror.CodeOf(err))
	assert.Equal(t, domainerror.ClassInvalid, domainerror.Classify(err))
}

func TestReport_EmptyRangeIsZeroed(t *testing.T) {
	f := newFixture(t)
	f.add(t, "3", "USD", "Food", march1)

	report, err := f.monthly.Execute(context.Background(), MonthlyReportInput{OwnerID: owner, Year: 2023, Month: time.July})
	require.NoError(t, err)
	assert.True(t, report.Total.IsZero())
	assert.NotNil(t, report.ByCategory)
	assert.Empty(t, report.ByCategory)
	assert.Empty(t, report.ByCurrency)
	assert.Zero(t, report.SpendingCount)
}

func TestReport_RateUnavailableFailsWholeReport(t *testing.T) {
	f := newFixture(t)
	f.source.Err = errors.New("dial tcp: connection refused")
	f.add(t, "10", "USD", "Food", march1)
	f.add(t, "10", "CNY", "Food", march1)

	report, err := f.generate.Execute(context.Background(), GenerateReportInput{OwnerID: owner, TargetCurrency: "USD"})
	assert.Nil(t, report)
	assert.Equal(t, domainerror.ErrCodeReportIncomplete, domainerror.CodeOf(err))
	assert.True(t, errors.Is(err, domainerror.ErrReportIncomplete))
	assert.True(t, errors.Is(err, domainerror.ErrRateUnavailable), "cause is kept")
	assert.Equal(t, domainerror.ClassUnavailable, domainerror.Classify(err))
}

func TestReport_IsDeterministic(t *testing.T) {
	f := newFixture(t)
	f.source.Set("EUR", "USD", march1, "1.10")
	f.add(t, "5", "USD", "Travel", march1)
	f.add(t, "5", "USD", "Food", march1)
	f.add(t, "5", "USD", "Health", march1)
	f.add(t, "1", "EUR", "Food", march1)

	first, err := f.generate.Execute(context.Background(), GenerateReportInput{OwnerID: owner, TargetCurrency: "USD"})
	require.NoError(t, err)
	second, err := f.generate.Execute(context.Background(), GenerateReportInput{OwnerID: owner, TargetCurrency: "USD"})
	require.NoError(t, err)

	assert.Equal(t, render(first), render(second))
	assert.Equal(t, "USD 16.10 | Food=6.10 Health=5.00 Travel=5.00 | USD=15.00 EUR=1.00", render(first), "ties break alphabetically")
}

func render(report *entity.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s |", report.TargetCurrency, report.Total.StringFixed(2))
	for _, line := range report.ByCategory {
		fmt.Fprintf(&b, " %s=%s", line.Key, line.Amount.StringFixed(2))
	}
	b.WriteString(" |")
	for _, line := range report.ByCurrency {
		fmt.Fprintf(&b, " %s=%s", line.Key, line.Amount.StringFixed(2))
	}
	return b.String()
}

func TestReport_ArchivedCurrencyStillReports(t *testing.T) {
	f := newFixture(t)
	f.source.Set("CNY", "USD", march1, "0.14")
	f.add(t, "100", "CNY", "Food", march1)

	before, err := f.generate.Execute(context.Background(), GenerateReportInput{OwnerID: owner, TargetCurrency: "USD"})
	require.NoError(t, err)

	_, err = f.currencyRepo.Archive(context.Background(), owner, "CNY")
	require.NoError(t, err)
	archived, err := f.generate.Execute(context.Background(), GenerateReportInput{OwnerID: owner, TargetCurrency: "USD"})
	require.NoError(t, err)

	_, err = f.currencyRepo.Restore(context.Background(), owner, "CNY")
	require.NoError(t, err)
	restored, err := f.generate.Execute(context.Background(), GenerateReportInput{OwnerID: owner, TargetCurrency: "USD"})
	require.NoError(t, err)

	assert.Equal(t, "14.00", before.Total.StringFixed(2))
	assert.True(t, before.Total.Equal(archived.Total))
	assert.True(t, before.Total.Equal(restored.Total))
}

func TestMonthlyReport_InvalidMonth(t *testing.T) {
	f := newFixture(t)

	_, err := f.monthly.Execute(context.Background(), MonthlyReportInput{OwnerID: owner, Year: 2024, Month: 13})
	assert.Equal(t, domainerror.ErrCodeInvalidDate, domainerror.CodeOf(err))
}
