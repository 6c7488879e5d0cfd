package exchange

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
)

// RecordRateInput represents the input for seeding a known rate.
type RecordRateInput struct {
	Base  string
	Quote string
	Date  time.Time
	Rate  decimal.Decimal
}

// RecordRateOutput represents the output of seeding a rate.
type RecordRateOutput struct {
	Rate *entity.ExchangeRate
}

// RecordRateUseCase seeds the durable rate store with a known rate.
type RecordRateUseCase struct {
	rateRepo adapter.ExchangeRateRepository
}

// NewRecordRateUseCase creates a new RecordRateUseCase instance.
func NewRecordRateUseCase(rateRepo adapter.ExchangeRateRepository) *RecordRateUseCase {
	return &RecordRateUseCase{
		rateRepo: rateRepo,
	}
}

// Execute stores the rate. A rate already stored for the pair and day is kept and returned.
func (uc *RecordRateUseCase) Execute(ctx context.Context, input RecordRateInput) (*RecordRateOutput, error) {
	base, baseOK := entity.NormalizeCurrencyCode(input.Base)
	quote, quoteOK := entity.NormalizeCurrencyCode(input.Quote)
	if !baseOK || !quoteOK || base == quote {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidCurrencyCode,
			"base and quote must be two different three-letter codes",
			domainerror.ErrInvalidCurrencyCode,
		)
	}
	if !input.Rate.IsPositive() {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeRateNotPositive,
			"rate must be greater than zero",
			domainerror.ErrRateNotPositive,
		)
	}

	rate := entity.NewExchangeRate(base, quote, input.Date, input.Rate)
	if err := uc.rateRepo.Save(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to save exchange rate: %w", err)
	}

	stored, err := uc.rateRepo.Find(ctx, base, quote, rate.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to read exchange rate: %w", err)
	}
	if stored == nil {
		stored = rate
	}

	slog.Info("Exchange rate recorded", "base", base, "quote", quote, "rate", stored.Rate.String())
	return &RecordRateOutput{Rate: stored}, nil
}
