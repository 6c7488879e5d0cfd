package currency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
)

// SetMainCurrencyInput represents the input for choosing the main currency.
type SetMainCurrencyInput struct {
	OwnerID string
	Code    string
}

// SetMainCurrencyOutput represents the output of choosing the main currency.
type SetMainCurrencyOutput struct {
	Currency *entity.Currency
}

// SetMainCurrencyUseCase makes an active currency the owner's report currency.
type SetMainCurrencyUseCase struct {
	currencyRepo adapter.CurrencyRepository
	publisher    adapter.EventPublisher
}

// NewSetMainCurrencyUseCase creates a new SetMainCurrencyUseCase instance.
func NewSetMainCurrencyUseCase(currencyRepo adapter.CurrencyRepository, publisher adapter.EventPublisher) *SetMainCurrencyUseCase {
	return &SetMainCurrencyUseCase{
		currencyRepo: currencyRepo,
		publisher:    publisher,
	}
}

// Execute sets the main currency.
func (uc *SetMainCurrencyUseCase) Execute(ctx context.Context, input SetMainCurrencyInput) (*SetMainCurrencyOutput, error) {
	if err := requireOwner(input.OwnerID); err != nil {
		return nil, err
	}
	code, err := parseCode(input.Code)
	if err != nil {
		return nil, err
	}

	currency, err := uc.currencyRepo.SetMain(ctx, input.OwnerID, code)
	if err != nil {
		if domainerror.Classify(err) != domainerror.ClassInternal {
			return nil, translateError(err, code)
		}
		return nil, fmt.Errorf("failed to set main currency: %w", err)
	}

	slog.Info("Main currency set", "ownerID", input.OwnerID, "code", code)
	adapter.PublishBestEffort(ctx, uc.publisher, entity.NewLedgerEvent(entity.EventMainCurrencySet, input.OwnerID, map[string]string{"code": code}))

	return &SetMainCurrencyOutput{Currency: currency}, nil
}

// GetMainCurrencyUseCase returns the owner's main currency.
type GetMainCurrencyUseCase struct {
	ownerRepo adapter.OwnerRepository
}

// NewGetMainCurrencyUseCase creates a new GetMainCurrencyUseCase instance.
func NewGetMainCurrencyUseCase(ownerRepo adapter.OwnerRepository) *GetMainCurrencyUseCase {
	return &GetMainCurrencyUseCase{
		ownerRepo: ownerRepo,
	}
}

// Execute returns the main currency code. It fails with a validation error when none is set.
func (uc *GetMainCurrencyUseCase) Execute(ctx context.Context, ownerID string) (string, error) {
	if err := requireOwner(ownerID); err != nil {
		return "", err
	}

	owner, err := uc.ownerRepo.FindByID(ctx, ownerID)
	if err != nil {
		return "", fmt.Errorf("failed to load owner: %w", err)
	}
	if owner == nil || !owner.HasMainCurrency() {
		return "", domainerror.NewLedgerError(
			domainerror.ErrCodeMainCurrencyNotSet,
			"no main currency is set",
			domainerror.ErrMainCurrencyNotSet,
		)
	}
	return owner.MainCurrency, nil
}
