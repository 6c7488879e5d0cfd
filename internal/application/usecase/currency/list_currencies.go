package currency

import (
	"context"
	"fmt"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
)

// ListCurrenciesInput represents the input for listing currencies.
type ListCurrenciesInput struct {
	OwnerID string
	State   adapter.CurrencyState // Defaults to active
}

// ListCurrenciesOutput represents the output of listing currencies.
type ListCurrenciesOutput struct {
	Currencies   []*entity.Currency
	MainCurrency string
}

// ListCurrenciesUseCase lists an owner's currencies ordered by code.
type ListCurrenciesUseCase struct {
	currencyRepo adapter.CurrencyRepository
	ownerRepo    adapter.OwnerRepository
}

// NewListCurrenciesUseCase creates a new ListCurrenciesUseCase instance.
func NewListCurrenciesUseCase(currencyRepo adapter.CurrencyRepository, ownerRepo adapter.OwnerRepository) *ListCurrenciesUseCase {
	return &ListCurrenciesUseCase{
		currencyRepo: currencyRepo,
		ownerRepo:    ownerRepo,
	}
}

// Execute lists the currencies.
func (uc *ListCurrenciesUseCase) Execute(ctx context.Context, input ListCurrenciesInput) (*ListCurrenciesOutput, error) {
	if err := requireOwner(input.OwnerID); err != nil {
		return nil, err
	}

	state := input.State
	switch state {
	case "":
		state = adapter.CurrencyStateActive
	case adapter.CurrencyStateActive, adapter.CurrencyStateArchived, adapter.CurrencyStateAll:
	default:
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidCurrencyCode,
			"state must be one of active, archived or all",
			fmt.Errorf("%w: unknown currency state %q", domainerror.ErrValidation, state),
		)
	}

	currencies, err := uc.currencyRepo.FindByOwner(ctx, input.OwnerID, state)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}

	owner, err := uc.ownerRepo.FindByID(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner: %w", err)
	}

	output := &ListCurrenciesOutput{Currencies: currencies}
	if owner != nil {
		output.MainCurrency = owner.MainCurrency
	}
	return output, nil
}
