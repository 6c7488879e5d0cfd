package currency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
)

// RemoveCurrencyInput represents the input for hard-removing a currency.
type RemoveCurrencyInput struct {
	OwnerID string
	Code    string
}

// RemoveCurrencyUseCase hard-removes a currency that no spending references.
type RemoveCurrencyUseCase struct {
	currencyRepo adapter.CurrencyRepository
}

// NewRemoveCurrencyUseCase creates a new RemoveCurrencyUseCase instance.
func NewRemoveCurrencyUseCase(currencyRepo adapter.CurrencyRepository) *RemoveCurrencyUseCase {
	return &RemoveCurrencyUseCase{
		currencyRepo: currencyRepo,
	}
}

// Execute removes the currency.
func (uc *RemoveCurrencyUseCase) Execute(ctx context.Context, input RemoveCurrencyInput) error {
	if err := requireOwner(input.OwnerID); err != nil {
		return err
	}
	code, err := parseCode(input.Code)
	if err != nil {
		return err
	}

	if err := uc.currencyRepo.Remove(ctx, input.OwnerID, code); err != nil {
		if domainerror.Classify(err) != domainerror.ClassInternal {
			return translateError(err, code)
		}
		return fmt.Errorf("failed to remove currency: %w", err)
	}

	slog.Info("Currency removed", "ownerID", input.OwnerID, "code", code)
	return nil
}
