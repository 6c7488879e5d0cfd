package owner

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
)

// DeleteOwnerDataUseCase erases everything an owner recorded. Exchange rates
// are shared facts and stay.
type DeleteOwnerDataUseCase struct {
	ownerRepo adapter.OwnerRepository
	publisher adapter.EventPublisher
}

// NewDeleteOwnerDataUseCase creates a new DeleteOwnerDataUseCase instance.
func NewDeleteOwnerDataUseCase(ownerRepo adapter.OwnerRepository, publisher adapter.EventPublisher) *DeleteOwnerDataUseCase {
	return &DeleteOwnerDataUseCase{
		ownerRepo: ownerRepo,
		publisher: publisher,
	}
}

// Execute performs the deletion.
func (uc *DeleteOwnerDataUseCase) Execute(ctx context.Context, ownerID string) (*adapter.OwnerDataCounts, error) {
	if ownerID == "" {
		return nil, domainerror.NewLedgerError(domainerror.ErrCodeMissingOwner, "owner is required", domainerror.ErrMissingOwner)
	}

	counts, err := uc.ownerRepo.DeleteAllData(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete owner data: %w", err)
	}

	slog.Info("Owner data deleted",
		"ownerID", ownerID,
		"spendings", counts.Spendings,
		"categories", counts.Categories,
		"currencies", counts.Currencies,
	)
	adapter.PublishBestEffort(ctx, uc.publisher, entity.NewLedgerEvent(entity.EventOwnerDataDeleted, ownerID, map[string]string{
		"spendings": strconv.FormatInt(counts.Spendings, 10),
	}))
	return counts, nil
}
