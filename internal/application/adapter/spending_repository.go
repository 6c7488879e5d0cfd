package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendings-bot/ledger/internal/domain/entity"
	"github.com/spendings-bot/ledger/internal/domain/valueobject"
)

// SpendingFilter defines filter options for listing spendings.
type SpendingFilter struct {
	OwnerID      string
	Range        valueobject.DateRange
	CategoryName string
	CurrencyCode string
	Search       string           // Case-insensitive description match
	Amount       *decimal.Decimal // Exact amount match
}

// SpendingPage defines keyset pagination options.
type SpendingPage struct {
	Limit int
	After *valueobject.SpendingCursor
}

// SpendingPageResult is one page of spendings ordered by occurred_at DESC, id DESC.
type SpendingPageResult struct {
	Spendings  []*entity.Spending
	NextCursor *valueobject.SpendingCursor
	HasMore    bool
}

// SpendingRefs names the currency and category a new spending references.
type SpendingRefs struct {
	CurrencyCode   string
	CategoryName   string
	CreateCurrency bool // Create the currency when absent instead of failing
}

// SpendingCreateResult is the outcome of creating a spending.
type SpendingCreateResult struct {
	Spending        *entity.Spending
	CategoryCreated bool
	CurrencyCreated bool
}

// SpendingRepository defines the interface for spending persistence operations.
type SpendingRepository interface {
	// Create resolves the currency, upserts the category and inserts the spending in one
	// transaction. It returns ErrCurrencyNotFound when the currency is absent and
	// refs.CreateCurrency is false.
	Create(ctx context.Context, spending *entity.Spending, refs SpendingRefs) (*SpendingCreateResult, error)

	// FindByID retrieves a spending owned by ownerID.
	FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*entity.Spending, error)

	// Delete removes a spending owned by ownerID.
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error

	// List retrieves one page of spendings matching the filter.
	List(ctx context.Context, filter SpendingFilter, page SpendingPage) (*SpendingPageResult, error)

	// FindInRange retrieves every spending in the range ordered by occurred_at ASC, id ASC.
	FindInRange(ctx context.Context, ownerID string, dateRange valueobject.DateRange) ([]*entity.Spending, error)

	// ListPeriods returns the calendar months that contain spendings, newest first.
	ListPeriods(ctx context.Context, ownerID string) ([]entity.Period, error)
}
