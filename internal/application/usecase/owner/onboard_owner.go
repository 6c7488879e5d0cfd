// Package owner contains owner lifecycle use cases.
package owner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
)

// OnboardOwnerOutput represents the output of onboarding.
type OnboardOwnerOutput struct {
	Owner             *entity.Owner
	CreatedCurrencies []string
	CreatedCategories []string
}

// OnboardOwnerUseCase seeds a new owner with default currencies and categories.
// Running it again for an existing owner changes nothing.
type OnboardOwnerUseCase struct {
	ownerRepo adapter.OwnerRepository
}

// NewOnboardOwnerUseCase creates a new OnboardOwnerUseCase instance.
func NewOnboardOwnerUseCase(ownerRepo adapter.OwnerRepository) *OnboardOwnerUseCase {
	return &OnboardOwnerUseCase{
		ownerRepo: ownerRepo,
	}
}

// Execute performs the onboarding.
func (uc *OnboardOwnerUseCase) Execute(ctx context.Context, ownerID string) (*OnboardOwnerOutput, error) {
	if ownerID == "" {
		return nil, domainerror.NewLedgerError(domainerror.ErrCodeMissingOwner, "owner is required", domainerror.ErrMissingOwner)
	}

	result, err := uc.ownerRepo.Onboard(ctx, ownerID, entity.DefaultCurrencies, entity.DefaultCategories)
	if err != nil {
		return nil, fmt.Errorf("failed to onboard owner: %w", err)
	}

	if len(result.CreatedCurrencies) > 0 || len(result.CreatedCategories) > 0 {
		slog.Info("Owner onboarded",
			"ownerID", ownerID,
			"currencies", len(result.CreatedCurrencies),
			"categories", len(result.CreatedCategories),
		)
	}

	return &OnboardOwnerOutput{
		Owner:             result.Owner,
		CreatedCurrencies: result.CreatedCurrencies,
		CreatedCategories: result.CreatedCategories,
	}, nil
}
