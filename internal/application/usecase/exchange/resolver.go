// Package exchange contains exchange rate resolution and conversion use cases.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/domain/valueobject"
)

// DefaultFetchTimeout bounds a single rate source fetch.
const DefaultFetchTimeout = 10 * time.Second

var errNoRateSource = errors.New("no rate source configured")

// Quote is a resolved rate together with the direction it was stored in.
// When Inverted is true the rate converts quote to base and must be divided by.
type Quote struct {
	Rate     decimal.Decimal
	Inverted bool
}

// Apply converts amount with the quote and rounds half-even to two places.
func (q Quote) Apply(amount decimal.Decimal) decimal.Decimal {
	if q.Inverted {
		return amount.Div(q.Rate).RoundBank(valueobject.AmountScale)
	}
	return amount.Mul(q.Rate).RoundBank(valueobject.AmountScale)
}

// Resolver resolves dated exchange rates: in-process memo first, then the
// durable rate store, then the rate source. Fetches for the same pair and day
// are shared between concurrent callers and no lock is held while fetching.
type Resolver struct {
	cache        adapter.RateCache
	rateRepo     adapter.ExchangeRateRepository
	source       adapter.RateSource
	fetchTimeout time.Duration
	flights      singleflight.Group
}

// NewResolver creates a new Resolver instance.
func NewResolver(
	cache adapter.RateCache,
	rateRepo adapter.ExchangeRateRepository,
	source adapter.RateSource,
	fetchTimeout time.Duration,
) *Resolver {
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	return &Resolver{
		cache:        cache,
		rateRepo:     rateRepo,
		source:       source,
		fetchTimeout: fetchTimeout,
	}
}

// Convert converts amount from one currency to another at the rate of the day of at.
// Same-currency conversions return amount unchanged.
func (r *Resolver) Convert(ctx context.Context, amount decimal.Decimal, from, to string, at time.Time) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	quote, err := r.Resolve(ctx, from, to, at)
	if err != nil {
		return decimal.Zero, err
	}
	return quote.Apply(amount), nil
}

// Resolve returns the rate converting base into quote on the day of at.
func (r *Resolver) Resolve(ctx context.Context, base, quote string, at time.Time) (Quote, error) {
	if base == quote {
		return Quote{Rate: decimal.NewFromInt(1)}, nil
	}
	date := entity.RateDate(at)

	if q, ok := r.fromCache(base, quote, date); ok {
		slog.Debug("Exchange rate cache hit", "base", base, "quote", quote, "date", date.Format(valueobject.DateLayout))
		return q, nil
	}

	q, found, err := r.fromStore(ctx, base, quote, date)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to read exchange rate: %w", err)
	}
	if found {
		return q, nil
	}

	rate, err := r.fetch(ctx, base, quote, date)
	if err != nil {
		return Quote{}, err
	}
	return Quote{Rate: rate}, nil
}

func (r *Resolver) fromCache(base, quote string, date time.Time) (Quote, bool) {
	if rate, ok := r.cache.Get(base, quote, date); ok {
		return Quote{Rate: rate}, true
	}
	if rate, ok := r.cache.Get(quote, base, date); ok {
		return Quote{Rate: rate, Inverted: true}, true
	}
	return Quote{}, false
}

func (r *Resolver) fromStore(ctx context.Context, base, quote string, date time.Time) (Quote, bool, error) {
	stored, err := r.rateRepo.Find(ctx, base, quote, date)
	if err != nil {
		return Quote{}, false, err
	}
	if stored != nil {
		r.cache.Set(base, quote, date, stored.Rate)
		return Quote{Rate: stored.Rate}, true, nil
	}

	inverse, err := r.rateRepo.Find(ctx, quote, base, date)
	if err != nil {
		return Quote{}, false, err
	}
	if inverse != nil {
		r.cache.Set(quote, base, date, inverse.Rate)
		return Quote{Rate: inverse.Rate, Inverted: true}, true, nil
	}
	return Quote{}, false, nil
}

// fetch asks the rate source once per pair and day, however many callers wait.
func (r *Resolver) fetch(ctx context.Context, base, quote string, date time.Time) (decimal.Decimal, error) {
	key := base + "/" + quote + "@" + date.Format(valueobject.DateLayout)

	result, err, _ := r.flights.Do(key, func() (interface{}, error) {
		// A flight that finished since our lookup already memoized the rate.
		if rate, ok := r.cache.Get(base, quote, date); ok {
			return rate, nil
		}

		// The shared fetch outlives any single caller's cancellation but not the timeout.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.fetchTimeout)
		defer cancel()

		if r.source == nil {
			return nil, errNoRateSource
		}
		rate, err := r.source.FetchRate(fetchCtx, base, quote, date)
		if err != nil {
			return nil, err
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("rate source returned non-positive rate %s", rate)
		}

		slog.Info("Exchange rate fetched",
			"base", base,
			"quote", quote,
			"date", date.Format(valueobject.DateLayout),
			"rate", rate.String(),
		)
		return r.store(fetchCtx, entity.NewExchangeRate(base, quote, date, rate)), nil
	})
	if err != nil {
		slog.Warn("Exchange rate unavailable", "base", base, "quote", quote, "error", err)
		return decimal.Zero, domainerror.NewLedgerError(
			domainerror.ErrCodeRateUnavailable,
			fmt.Sprintf("no exchange rate for %s/%s on %s", base, quote, date.Format(valueobject.DateLayout)),
			fmt.Errorf("%w: %w", domainerror.ErrRateUnavailable, err),
		)
	}
	return result.(decimal.Decimal), nil
}

// store persists a rate and memoizes the rate that ends up stored, which is
// the earlier one when another writer got there first.
func (r *Resolver) store(ctx context.Context, rate *entity.ExchangeRate) decimal.Decimal {
	if err := r.rateRepo.Save(ctx, rate); err != nil {
		slog.Warn("Failed to store exchange rate", "base", rate.Base, "quote", rate.Quote, "error", err)
		return rate.Rate
	}

	canonical := rate.Rate
	if stored, err := r.rateRepo.Find(ctx, rate.Base, rate.Quote, rate.Date); err == nil && stored != nil {
		canonical = stored.Rate
	}
	r.cache.Set(rate.Base, rate.Quote, rate.Date, canonical)
	return canonical
}
