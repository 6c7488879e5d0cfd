package spending

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
)

// SpendingRef identifies one spending of an owner.
type SpendingRef struct {
	OwnerID    string
	SpendingID uuid.UUID
}

func notFound(err error) error {
	return domainerror.NewLedgerError(domainerror.ErrCodeSpendingNotFound, "spending not found", err)
}

// GetSpendingUseCase retrieves a single spending.
type GetSpendingUseCase struct {
	spendingRepo adapter.SpendingRepository
}

// NewGetSpendingUseCase creates a new GetSpendingUseCase instance.
func NewGetSpendingUseCase(spendingRepo adapter.SpendingRepository) *GetSpendingUseCase {
	return &GetSpendingUseCase{
		spendingRepo: spendingRepo,
	}
}

// Execute returns the spending. Spendings of other owners are not found.
func (uc *GetSpendingUseCase) Execute(ctx context.Context, input SpendingRef) (*entity.Spending, error) {
	if err := requireOwner(input.OwnerID); err != nil {
		return nil, err
	}

	spending, err := uc.spendingRepo.FindByID(ctx, input.OwnerID, input.SpendingID)
	if err != nil {
		if errors.Is(err, domainerror.ErrSpendingNotFound) {
			return nil, notFound(err)
		}
		return nil, fmt.Errorf("failed to find spending: %w", err)
	}
	return spending, nil
}

// DeleteSpendingUseCase removes a single spending.
type DeleteSpendingUseCase struct {
	spendingRepo adapter.SpendingRepository
	publisher    adapter.EventPublisher
}

// NewDeleteSpendingUseCase creates a new DeleteSpendingUseCase instance.
func NewDeleteSpendingUseCase(spendingRepo adapter.SpendingRepository, publisher adapter.EventPublisher) *DeleteSpendingUseCase {
	return &DeleteSpendingUseCase{
		spendingRepo: spendingRepo,
		publisher:    publisher,
	}
}

// Execute removes the spending.
func (uc *DeleteSpendingUseCase) Execute(ctx context.Context, input SpendingRef) error {
	if err := requireOwner(input.OwnerID); err != nil {
		return err
	}

	if err := uc.spendingRepo.Delete(ctx, input.OwnerID, input.SpendingID); err != nil {
		if errors.Is(err, domainerror.ErrSpendingNotFound) {
			return notFound(err)
		}
		return fmt.Errorf("failed to delete spending: %w", err)
	}

	slog.Info("Spending removed", "ownerID", input.OwnerID, "spendingID", input.SpendingID)
	adapter.PublishBestEffort(ctx, uc.publisher, entity.NewLedgerEvent(entity.EventSpendingRemoved, input.OwnerID, map[string]string{
		"id": input.SpendingID.String(),
	}))
	return nil
}
