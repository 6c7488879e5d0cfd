package exchange

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/integration/cache"
	"github.com/spendings-bot/ledger/internal/integration/persistence"
	"github.com/spendings-bot/ledger/internal/testutil"
)

var march5 = time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

func newResolver(t *testing.T, source *testutil.StubRateSource, timeout time.Duration) (*Resolver, *RecordRateUseCase) {
	database := testutil.NewDatabase(t)
	rateRepo := persistence.NewExchangeRateRepository(database.DB())
	return NewResolver(cache.NewRateCache(), rateRepo, source, timeout), NewRecordRateUseCase(rateRepo)
}

func TestConvert_SameCurrencyIsExact(t *testing.T) {
	source := testutil.NewStubRateSource()
	resolver, _ := newResolver(t, source, time.Second)

	amount := decimal.RequireFromString("10.005")
	converted, err := resolver.Convert(context.Background(), amount, "USD", "USD", march5)
	require.NoError(t, err)
	assert.True(t, converted.Equal(amount))
	assert.Zero(t, source.Calls())
}

func TestConvert_RoundsHalfEven(t *testing.T) {
	source := testutil.NewStubRateSource()
	source.Set("USD", "EUR", march5, "0.5")
	resolver, _ := newResolver(t, source, time.Second)

	tests := []struct {
		amount   string
		expected string
	}{
		{"0.05", "0.02"}, // 0.025 rounds to even
		{"0.07", "0.04"}, // 0.035 rounds to even
		{"100.00", "50.00"},
	}
	for _, tt := range tests {
		converted, err := resolver.Convert(context.Background(), decimal.RequireFromString(tt.amount), "USD", "EUR", march5)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, converted.StringFixed(2), "converting %s", tt.amount)
	}
	assert.EqualValues(t, 1, source.Calls(), "fetched rate must be memoized")
}

func TestResolve_StoredInverseIsDivided(t *testing.T) {
	source := testutil.NewStubRateSource()
	resolver, record := newResolver(t, source, time.Second)

	_, err := record.Execute(context.Background(), RecordRateInput{
		Base:  "EUR",
		Quote: "USD",
		Date:  march5,
		Rate:  decimal.RequireFromString("1.25"),
	})
	require.NoError(t, err)

	converted, err := resolver.Convert(context.Background(), decimal.RequireFromString("10.00"), "USD", "EUR", march5)
	require.NoError(t, err)
	assert.Equal(t, "8.00", converted.StringFixed(2))
	assert.Zero(t, source.Calls())
}

func TestResolve_FetchFailureIsRateUnavailable(t *testing.T) {
	source := testutil.NewStubRateSource()
	source.Err = errors.New("connection refused")
	resolver, _ := newResolver(t, source, time.Second)

	_, err := resolver.Convert(context.Background(), decimal.NewFromInt(1), "USD", "JPY", march5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerror.ErrRateUnavailable)
	assert.Equal(t, domainerror.ErrCodeRateUnavailable, domainerror.CodeOf(err))
}

func TestResolve_TimeoutIsRateUnavailable(t *testing.T) {
	source := testutil.NewStubRateSource()
	source.Set("USD", "JPY", march5, "150")
	source.Delay = time.Second
	resolver, _ := newResolver(t, source, 20*time.Millisecond)

	started := time.Now()
	_, err := resolver.Convert(context.Background(), decimal.NewFromInt(1), "USD", "JPY", march5)
	assert.ErrorIs(t, err, domainerror.ErrRateUnavailable)
	assert.Less(t, time.Since(started), 500*time.Millisecond)
}

func TestResolve_ConcurrentCallersShareOneFetch(t *testing.T) {
	source := testutil.NewStubRateSource()
	source.Set("USD", "EUR", march5, "0.9")
	source.Delay = 50 * time.Millisecond
	resolver, _ := newResolver(t, source, time.Second)

	var wg sync.WaitGroup
	results := make([]decimal.Decimal, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			converted, err := resolver.Convert(context.Background(), decimal.NewFromInt(10), "USD", "EUR", march5)
			assert.NoError(t, err)
			results[i] = converted
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, source.Calls())
	for _, result := range results {
		assert.Equal(t, "9.00", result.StringFixed(2))
	}
}

func TestRecordRate_IsAppendOnly(t *testing.T) {
	_, record := newResolver(t, testutil.NewStubRateSource(), time.Second)
	ctx := context.Background()

	_, err := record.Execute(ctx, RecordRateInput{Base: "usd", Quote: "eur", Date: march5, Rate: decimal.RequireFromString("0.91")})
	require.NoError(t, err)

	output, err := record.Execute(ctx, RecordRateInput{Base: "USD", Quote: "EUR", Date: march5, Rate: decimal.RequireFromString("0.99")})
	require.NoError(t, err)
	assert.True(t, output.Rate.Rate.Equal(decimal.RequireFromString("0.91")))

	_, err = record.Execute(ctx, RecordRateInput{Base: "USD", Quote: "EUR", Date: march5, Rate: decimal.Zero})
	assert.ErrorIs(t, err, domainerror.ErrValidation)

	_, err = record.Execute(ctx, RecordRateInput{Base: "USD", Quote: "USD", Date: march5, Rate: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domainerror.ErrValidation)
}

func TestConvertAmount_ValidatesInput(t *testing.T) {
	source := testutil.NewStubRateSource()
	source.Set("EUR", "USD", march5, "1.1")
	resolver, _ := newResolver(t, source, time.Second)
	uc := NewConvertAmountUseCase(resolver)

	output, err := uc.Execute(context.Background(), ConvertAmountInput{Amount: "20,00", From: "eur", To: "usd", At: march5})
	require.NoError(t, err)
	assert.Equal(t, "22.00", output.Converted.StringFixed(2))

	_, err = uc.Execute(context.Background(), ConvertAmountInput{Amount: "-1", From: "EUR", To: "USD"})
	assert.ErrorIs(t, err, domainerror.ErrValidation)

	_, err = uc.Execute(context.Background(), ConvertAmountInput{Amount: "1", From: "EURO", To: "USD"})
	assert.ErrorIs(t, err, domainerror.ErrValidation)
}
