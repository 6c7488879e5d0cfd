// Package report contains currency-normalized spending report use cases.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/application/usecase/exchange"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/domain/valueobject"
)

// DefaultConcurrency bounds concurrent rate lookups when none is configured.
const DefaultConcurrency = 4

// RateResolver resolves a dated exchange rate.
type RateResolver interface {
	Resolve(ctx context.Context, base, quote string, at time.Time) (exchange.Quote, error)
}

// GenerateReportInput represents the input for a report.
type GenerateReportInput struct {
	OwnerID        string
	From           time.Time // Inclusive; zero is unbounded
	To             time.Time // Exclusive; zero is unbounded
	TargetCurrency string    // Defaults to the owner's main currency
}

// GenerateReportUseCase aggregates spendings in a range into one currency.
type GenerateReportUseCase struct {
	spendingRepo adapter.SpendingRepository
	ownerRepo    adapter.OwnerRepository
	resolver     RateResolver
	concurrency  int
}

// NewGenerateReportUseCase creates a new GenerateReportUseCase instance.
func NewGenerateReportUseCase(
	spendingRepo adapter.SpendingRepository,
	ownerRepo adapter.OwnerRepository,
	resolver RateResolver,
	concurrency int,
) *GenerateReportUseCase {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &GenerateReportUseCase{
		spendingRepo: spendingRepo,
		ownerRepo:    ownerRepo,
		resolver:     resolver,
		concurrency:  concurrency,
	}
}

// rateKey is a currency and the day its rate is needed for.
type rateKey struct {
	currency string
	day      time.Time
}

// Execute builds the report. When any rate cannot be resolved the report fails
// as a whole; partial totals are never returned.
func (uc *GenerateReportUseCase) Execute(ctx context.Context, input GenerateReportInput) (*entity.Report, error) {
	if input.OwnerID == "" {
		return nil, domainerror.NewLedgerError(domainerror.ErrCodeMissingOwner, "owner is required", domainerror.ErrMissingOwner)
	}

	dateRange, err := valueobject.NewDateRange(input.From, input.To)
	if err != nil {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidDateRange,
			"range end must be after its start",
			domainerror.ErrInvalidDateRange,
		)
	}

	target, err := uc.targetCurrency(ctx, input)
	if err != nil {
		return nil, err
	}

	spendings, err := uc.spendingRepo.FindInRange(ctx, input.OwnerID, dateRange)
	if err != nil {
		return nil, fmt.Errorf("failed to load spendings: %w", err)
	}

	quotes, err := uc.resolveRates(ctx, spendings, target)
	if err != nil {
		if domainerror.Classify(err) == domainerror.ClassUnavailable {
			return nil, domainerror.NewLedgerError(
				domainerror.ErrCodeReportIncomplete,
				"report is incomplete: "+err.Error(),
				fmt.Errorf("%w: %w", domainerror.ErrReportIncomplete, err),
			)
		}
		return nil, fmt.Errorf("failed to resolve exchange rates: %w", err)
	}

	byCategory := map[string]decimal.Decimal{}
	byCurrency := map[string]decimal.Decimal{}
	total := decimal.Zero

	for _, s := range spendings {
		converted := s.Amount
		if s.CurrencyCode != target {
			converted = quotes[rateKey{currency: s.CurrencyCode, day: entity.RateDate(s.OccurredAt)}].Apply(s.Amount)
		}
		total = total.Add(converted)
		byCategory[s.CategoryName] = byCategory[s.CategoryName].Add(converted)
		byCurrency[s.CurrencyCode] = byCurrency[s.CurrencyCode].Add(s.Amount)
	}

	slog.Debug("Report generated",
		"ownerID", input.OwnerID,
		"target", target,
		"spendings", len(spendings),
		"rates", len(quotes),
	)

	return &entity.Report{
		OwnerID:        input.OwnerID,
		From:           dateRange.From,
		To:             dateRange.To,
		TargetCurrency: target,
		Total:          total,
		ByCategory:     entity.SortedLines(byCategory),
		ByCurrency:     entity.SortedLines(byCurrency),
		SpendingCount:  len(spendings),
	}, nil
}

func (uc *GenerateReportUseCase) targetCurrency(ctx context.Context, input GenerateReportInput) (string, error) {
	if input.TargetCurrency != "" {
		code, ok := entity.NormalizeCurrencyCode(input.TargetCurrency)
		if !ok {
			return "", domainerror.NewLedgerError(
				domainerror.ErrCodeInvalidCurrencyCode,
				"target currency must be a three letter code",
				domainerror.ErrInvalidCurrencyCode,
			)
		}
		return code, nil
	}

	owner, err := uc.ownerRepo.FindByID(ctx, input.OwnerID)
	if err != nil {
		return "", fmt.Errorf("failed to load owner: %w", err)
	}
	if owner == nil || !owner.HasMainCurrency() {
		return "", domainerror.NewLedgerError(
			domainerror.ErrCodeMainCurrencyNotSet,
			"no target currency given and no main currency is set",
			domainerror.ErrMainCurrencyNotSet,
		)
	}
	return owner.MainCurrency, nil
}

// resolveRates looks up every distinct currency and day concurrently.
func (uc *GenerateReportUseCase) resolveRates(ctx context.Context, spendings []*entity.Spending, target string) (map[rateKey]exchange.Quote, error) {
	var keys []rateKey
	seen := map[rateKey]bool{}
	for _, s := range spendings {
		if s.CurrencyCode == target {
			continue
		}
		key := rateKey{currency: s.CurrencyCode, day: entity.RateDate(s.OccurredAt)}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}

	results := make([]exchange.Quote, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)
	for i, key := range keys {
		g.Go(func() error {
			quote, err := uc.resolver.Resolve(gctx, key.currency, target, key.day)
			if err != nil {
				return err
			}
			results[i] = quote
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	quotes := make(map[rateKey]exchange.Quote, len(keys))
	for i, key := range keys {
		quotes[key] = results[i]
	}
	return quotes, nil
}
