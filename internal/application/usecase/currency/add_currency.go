package currency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
)

// AddCurrencyInput represents the input for adding a currency.
type AddCurrencyInput struct {
	OwnerID string
	Code    string
}

// AddCurrencyOutput represents the output of adding a currency.
type AddCurrencyOutput struct {
	Currency   *entity.Currency
	Restored   bool
	BecameMain bool
}

// AddCurrencyUseCase handles adding a currency to an owner's registry.
type AddCurrencyUseCase struct {
	currencyRepo adapter.CurrencyRepository
}

// NewAddCurrencyUseCase creates a new AddCurrencyUseCase instance.
func NewAddCurrencyUseCase(currencyRepo adapter.CurrencyRepository) *AddCurrencyUseCase {
	return &AddCurrencyUseCase{
		currencyRepo: currencyRepo,
	}
}

// Execute adds the currency. An archived currency is restored instead.
func (uc *AddCurrencyUseCase) Execute(ctx context.Context, input AddCurrencyInput) (*AddCurrencyOutput, error) {
	if err := requireOwner(input.OwnerID); err != nil {
		return nil, err
	}
	code, err := parseCode(input.Code)
	if err != nil {
		return nil, err
	}

	result, err := uc.currencyRepo.Add(ctx, input.OwnerID, code)
	if err != nil {
		if domainerror.Classify(err) != domainerror.ClassInternal {
			return nil, translateError(err, code)
		}
		return nil, fmt.Errorf("failed to add currency: %w", err)
	}

	slog.Info("Currency added",
		"ownerID", input.OwnerID,
		"code", code,
		"restored", result.Restored,
		"becameMain", result.BecameMain,
	)

	return &AddCurrencyOutput{
		Currency:   result.Currency,
		Restored:   result.Restored,
		BecameMain: result.BecameMain,
	}, nil
}
