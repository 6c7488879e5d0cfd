package currency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
)

// ArchiveCurrencyInput represents the input for archiving a currency.
type ArchiveCurrencyInput struct {
	OwnerID string
	Code    string
}

// ArchiveCurrencyOutput represents the output of archiving a currency.
type ArchiveCurrencyOutput struct {
	Currency *entity.Currency
	NewMain  string // Set when the main currency moved
}

// ArchiveCurrencyUseCase hides a currency from pickers without touching its spendings.
type ArchiveCurrencyUseCase struct {
	currencyRepo adapter.CurrencyRepository
	publisher    adapter.EventPublisher
}

// NewArchiveCurrencyUseCase creates a new ArchiveCurrencyUseCase instance.
func NewArchiveCurrencyUseCase(currencyRepo adapter.CurrencyRepository, publisher adapter.EventPublisher) *ArchiveCurrencyUseCase {
	return &ArchiveCurrencyUseCase{
		currencyRepo: currencyRepo,
		publisher:    publisher,
	}
}

// Execute archives the currency.
func (uc *ArchiveCurrencyUseCase) Execute(ctx context.Context, input ArchiveCurrencyInput) (*ArchiveCurrencyOutput, error) {
	if err := requireOwner(input.OwnerID); err != nil {
		return nil, err
	}
	code, err := parseCode(input.Code)
	if err != nil {
		return nil, err
	}

	result, err := uc.currencyRepo.Archive(ctx, input.OwnerID, code)
	if err != nil {
		if domainerror.Classify(err) != domainerror.ClassInternal {
			return nil, translateError(err, code)
		}
		return nil, fmt.Errorf("failed to archive currency: %w", err)
	}

	slog.Info("Currency archived", "ownerID", input.OwnerID, "code", code, "newMain", result.NewMain)

	attributes := map[string]string{"code": code}
	if result.NewMain != "" {
		attributes["new_main"] = result.NewMain
	}
	adapter.PublishBestEffort(ctx, uc.publisher, entity.NewLedgerEvent(entity.EventCurrencyArchived, input.OwnerID, attributes))

	return &ArchiveCurrencyOutput{
		Currency: result.Currency,
		NewMain:  result.NewMain,
	}, nil
}
