package spending

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/domain/valueobject"
)

const (
	// DefaultPageSize is the page size used when none is requested.
	DefaultPageSize = 5
	// MaxPageSize caps the requested page size.
	MaxPageSize = 100
)

// ListSpendingsInput represents the input for listing spendings.
type ListSpendingsInput struct {
	OwnerID  string
	From     time.Time // Inclusive; zero is unbounded
	To       time.Time // Exclusive; zero is unbounded
	Category string
	Currency string
	Search   string
	Amount   string // Exact match when set
	Cursor   string // Opaque token from a previous page
	Limit    int
}

// ListSpendingsOutput represents one page of spendings, newest first.
type ListSpendingsOutput struct {
	Spendings  []*entity.Spending
	NextCursor string // Empty on the last page
	HasMore    bool
	Limit      int
}

// ListSpendingsUseCase handles filtered, keyset-paginated listing.
type ListSpendingsUseCase struct {
	spendingRepo adapter.SpendingRepository
}

// NewListSpendingsUseCase creates a new ListSpendingsUseCase instance.
func NewListSpendingsUseCase(spendingRepo adapter.SpendingRepository) *ListSpendingsUseCase {
	return &ListSpendingsUseCase{
		spendingRepo: spendingRepo,
	}
}

// Execute performs the spending listing.
func (uc *ListSpendingsUseCase) Execute(ctx context.Context, input ListSpendingsInput) (*ListSpendingsOutput, error) {
	if err := requireOwner(input.OwnerID); err != nil {
		return nil, err
	}

	filter, matchable, err := buildFilter(input)
	if err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if !matchable {
		return &ListSpendingsOutput{Spendings: []*entity.Spending{}, Limit: limit}, nil
	}
	page := adapter.SpendingPage{Limit: limit}

	if input.Cursor != "" {
		cursor, err := valueobject.DecodeSpendingCursor(input.Cursor)
		if err != nil {
			return nil, domainerror.NewLedgerError(
				domainerror.ErrCodeInvalidCursor,
				"cursor is not valid",
				fmt.Errorf("%w: %w", domainerror.ErrInvalidCursor, err),
			)
		}
		page.After = &cursor
	}

	result, err := uc.spendingRepo.List(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list spendings: %w", err)
	}

	output := &ListSpendingsOutput{
		Spendings: result.Spendings,
		HasMore:   result.HasMore,
		Limit:     limit,
	}
	if result.HasMore && result.NextCursor != nil {
		output.NextCursor = result.NextCursor.Encode()
	}
	return output, nil
}

// buildFilter reports false when the filter can match no spending at all.
func buildFilter(input ListSpendingsInput) (adapter.SpendingFilter, bool, error) {
	dateRange, err := valueobject.NewDateRange(input.From, input.To)
	if err != nil {
		return adapter.SpendingFilter{}, false, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidDateRange,
			"range end must be after its start",
			domainerror.ErrInvalidDateRange,
		)
	}

	filter := adapter.SpendingFilter{
		OwnerID: input.OwnerID,
		Range:   dateRange,
		Search:  strings.TrimSpace(input.Search),
	}

	if input.Category != "" {
		name, ok := entity.NormalizeCategoryName(input.Category)
		if !ok {
			// No stored category has an empty or over-long name.
			return adapter.SpendingFilter{}, false, nil
		}
		filter.CategoryName = name
	}

	if input.Currency != "" {
		code, ok := entity.NormalizeCurrencyCode(input.Currency)
		if !ok {
			return adapter.SpendingFilter{}, false, domainerror.NewLedgerError(
				domainerror.ErrCodeInvalidCurrencyCode,
				"currency must be a three letter code",
				domainerror.ErrInvalidCurrencyCode,
			)
		}
		filter.CurrencyCode = code
	}

	if input.Amount != "" {
		amount, err := valueobject.ParseAmount(input.Amount)
		if err != nil {
			return adapter.SpendingFilter{}, false, domainerror.NewLedgerError(
				domainerror.ErrCodeInvalidAmount,
				"amount must be a positive number",
				domainerror.ErrInvalidAmount,
			)
		}
		filter.Amount = &amount
	}

	return filter, true, nil
}

// ListPeriodsUseCase lists the calendar months that contain spendings.
type ListPeriodsUseCase struct {
	spendingRepo adapter.SpendingRepository
}

// NewListPeriodsUseCase creates a new ListPeriodsUseCase instance.
func NewListPeriodsUseCase(spendingRepo adapter.SpendingRepository) *ListPeriodsUseCase {
	return &ListPeriodsUseCase{
		spendingRepo: spendingRepo,
	}
}

// Execute returns the periods, newest first.
func (uc *ListPeriodsUseCase) Execute(ctx context.Context, ownerID string) ([]entity.Period, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}

	periods, err := uc.spendingRepo.ListPeriods(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}
