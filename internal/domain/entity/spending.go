package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxDescriptionLength is the maximum description length in characters.
const MaxDescriptionLength = 255

// Spending is a single recorded expense. Currency and category are references;
// the code and name are denormalized on read for callers.
type Spending struct {
	ID           uuid.UUID
	OwnerID      string
	Amount       decimal.Decimal // Always positive, scale 2
	CurrencyID   uuid.UUID
	CurrencyCode string
	CategoryID   uuid.UUID
	CategoryName string
	Description  string
	OccurredAt   time.Time
	CreatedAt    time.Time
}

// NewSpending creates a new Spending entity. References are resolved by the repository.
func NewSpending(ownerID string, amount decimal.Decimal, description string, occurredAt time.Time) *Spending {
	return &Spending{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Amount:      amount,
		Description: description,
		OccurredAt:  NormalizeTimestamp(occurredAt),
		CreatedAt:   NormalizeTimestamp(time.Now()),
	}
}

// NormalizeTimestamp converts t to UTC with microsecond precision, the finest
// precision every supported database stores.
func NormalizeTimestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// Period is a calendar month that contains spendings.
type Period struct {
	Year  int
	Month time.Month
	Count int
}
