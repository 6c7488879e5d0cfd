package adapter

import (
	"context"
	"time"

	"github.com/spendings-bot/ledger/internal/domain/entity"
)

// ExchangeRateRepository defines the interface for the durable, append-only rate store.
type ExchangeRateRepository interface {
	// Find retrieves the rate for a pair on a calendar day. It returns nil, nil when absent.
	Find(ctx context.Context, base, quote string, date time.Time) (*entity.ExchangeRate, error)

	// Save stores a rate. An existing rate for the same pair and day is never overwritten.
	Save(ctx context.Context, rate *entity.ExchangeRate) error
}
