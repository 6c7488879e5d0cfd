package spending

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/domain/valueobject"
)

// CreateSpendingOutput represents the output of spending creation.
type CreateSpendingOutput struct {
	Spending        *entity.Spending
	CategoryCreated bool
}

// CreateSpendingUseCase records a spending in a currency the owner already has.
type CreateSpendingUseCase struct {
	spendingRepo adapter.SpendingRepository
	publisher    adapter.EventPublisher
}

// NewCreateSpendingUseCase creates a new CreateSpendingUseCase instance.
func NewCreateSpendingUseCase(spendingRepo adapter.SpendingRepository, publisher adapter.EventPublisher) *CreateSpendingUseCase {
	return &CreateSpendingUseCase{
		spendingRepo: spendingRepo,
		publisher:    publisher,
	}
}

// Execute performs the spending creation. An unknown category is created; an
// unknown currency is not. Archived currencies are accepted.
func (uc *CreateSpendingUseCase) Execute(ctx context.Context, input Draft) (*CreateSpendingOutput, error) {
	spending, refs, err := Prepare(input)
	if err != nil {
		return nil, err
	}

	result, err := uc.spendingRepo.Create(ctx, spending, refs)
	if err != nil {
		if errors.Is(err, domainerror.ErrCurrencyNotFound) {
			return nil, domainerror.NewLedgerError(
				domainerror.ErrCodeCurrencyNotFound,
				"currency "+refs.CurrencyCode+" not found",
				err,
			)
		}
		return nil, fmt.Errorf("failed to create spending: %w", err)
	}

	created := result.Spending
	slog.Info("Spending added",
		"ownerID", created.OwnerID,
		"spendingID", created.ID,
		"currency", created.CurrencyCode,
		"category", created.CategoryName,
		"categoryCreated", result.CategoryCreated,
	)
	adapter.PublishBestEffort(ctx, uc.publisher, entity.NewLedgerEvent(entity.EventSpendingAdded, created.OwnerID, map[string]string{
		"id":       created.ID.String(),
		"amount":   valueobject.FormatAmount(created.Amount),
		"currency": created.CurrencyCode,
		"category": created.CategoryName,
	}))

	return &CreateSpendingOutput{
		Spending:        created,
		CategoryCreated: result.CategoryCreated,
	}, nil
}
