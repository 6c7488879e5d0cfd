package currency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
)

// RestoreCurrencyInput represents the input for restoring a currency.
type RestoreCurrencyInput struct {
	OwnerID string
	Code    string
}

// RestoreCurrencyOutput represents the output of restoring a currency.
type RestoreCurrencyOutput struct {
	Currency *entity.Currency
}

// RestoreCurrencyUseCase reactivates an archived currency.
type RestoreCurrencyUseCase struct {
	currencyRepo adapter.CurrencyRepository
}

// NewRestoreCurrencyUseCase creates a new RestoreCurrencyUseCase instance.
func NewRestoreCurrencyUseCase(currencyRepo adapter.CurrencyRepository) *RestoreCurrencyUseCase {
	return &RestoreCurrencyUseCase{
		currencyRepo: currencyRepo,
	}
}

// Execute restores the currency.
func (uc *RestoreCurrencyUseCase) Execute(ctx context.Context, input RestoreCurrencyInput) (*RestoreCurrencyOutput, error) {
	if err := requireOwner(input.OwnerID); err != nil {
		return nil, err
	}
	code, err := parseCode(input.Code)
	if err != nil {
		return nil, err
	}

	currency, err := uc.currencyRepo.Restore(ctx, input.OwnerID, code)
	if err != nil {
		if domainerror.Classify(err) != domainerror.ClassInternal {
			return nil, translateError(err, code)
		}
		return nil, fmt.Errorf("failed to restore currency: %w", err)
	}

	slog.Info("Currency restored", "ownerID", input.OwnerID, "code", code)
	return &RestoreCurrencyOutput{Currency: currency}, nil
}
