package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a dated, immutable fact: one unit of Base is worth Rate units of Quote on Date.
type ExchangeRate struct {
	Base       string
	Quote      string
	Date       time.Time // Midnight UTC
	Rate       decimal.Decimal
	ObservedAt time.Time
}

// NewExchangeRate creates a new ExchangeRate for the calendar day of at.
func NewExchangeRate(base, quote string, at time.Time, rate decimal.Decimal) *ExchangeRate {
	return &ExchangeRate{
		Base:       base,
		Quote:      quote,
		Date:       RateDate(at),
		Rate:       rate,
		ObservedAt: time.Now().UTC(),
	}
}

// RateDate returns the UTC calendar day a rate for t is keyed by.
func RateDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
