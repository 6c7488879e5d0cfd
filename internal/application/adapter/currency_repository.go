package adapter

import (
	"context"

	"github.com/spendings-bot/ledger/internal/domain/entity"
)

// CurrencyState selects currencies by lifecycle state.
type CurrencyState string

const (
	CurrencyStateAll      CurrencyState = "all"
	CurrencyStateActive   CurrencyState = "active"
	CurrencyStateArchived CurrencyState = "archived"
)

// CurrencyAddResult is the outcome of adding a currency.
type CurrencyAddResult struct {
	Currency   *entity.Currency
	Restored   bool // The currency existed archived and was reactivated
	BecameMain bool // The owner had no main currency
}

// CurrencyArchiveResult is the outcome of archiving a currency.
type CurrencyArchiveResult struct {
	Currency *entity.Currency
	NewMain  string // Set when the archived currency was the main currency
}

// CurrencyRepository defines the interface for currency persistence operations.
// Every mutating method runs in a single database transaction.
type CurrencyRepository interface {
	// FindByCode retrieves a currency by owner and code. It returns nil, nil when absent.
	FindByCode(ctx context.Context, ownerID, code string) (*entity.Currency, error)

	// FindByOwner retrieves the owner's currencies in the given state ordered by code.
	FindByOwner(ctx context.Context, ownerID string, state CurrencyState) ([]*entity.Currency, error)

	// Add inserts a currency or restores it when archived. It returns ErrDuplicateCurrency
	// when the currency is already active.
	Add(ctx context.Context, ownerID, code string) (*CurrencyAddResult, error)

	// Ensure inserts the currency when absent and never changes an existing row.
	Ensure(ctx context.Context, ownerID, code string) (*entity.Currency, bool, error)

	// Archive hides a currency. When it is the main currency, main moves to the first
	// other active code; with no other active currency it returns ErrMainCurrencyInUse.
	Archive(ctx context.Context, ownerID, code string) (*CurrencyArchiveResult, error)

	// Restore reactivates an archived currency.
	Restore(ctx context.Context, ownerID, code string) (*entity.Currency, error)

	// Remove hard-deletes a currency that no spending references and that is not main.
	Remove(ctx context.Context, ownerID, code string) error

	// SetMain makes an active currency the owner's main currency.
	SetMain(ctx context.Context, ownerID, code string) (*entity.Currency, error)
}
