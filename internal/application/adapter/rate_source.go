package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateSource fetches exchange rates from an external provider.
type RateSource interface {
	// FetchRate returns how many units of quote one unit of base was worth on date.
	FetchRate(ctx context.Context, base, quote string, date time.Time) (decimal.Decimal, error)
}

// RateCache is an in-process memo of resolved rates.
type RateCache interface {
	Get(base, quote string, date time.Time) (decimal.Decimal, bool)
	Set(base, quote string, date time.Time, rate decimal.Decimal)
}
