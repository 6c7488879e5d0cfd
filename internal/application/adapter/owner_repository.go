// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/spendings-bot/ledger/internal/domain/entity"
)

// OnboardResult reports what onboarding created for an owner.
type OnboardResult struct {
	Owner             *entity.Owner
	CreatedCurrencies []string
	CreatedCategories []string
}

// OwnerDataCounts reports how many rows were removed for an owner.
type OwnerDataCounts struct {
	Spendings  int64
	Categories int64
	Currencies int64
}

// OwnerRepository defines the interface for owner persistence operations.
type OwnerRepository interface {
	// FindByID retrieves an owner. It returns nil, nil when the owner does not exist.
	FindByID(ctx context.Context, ownerID string) (*entity.Owner, error)

	// Onboard creates the owner with the given currencies and categories in one transaction.
	// Existing rows are left untouched; the first currency becomes main when none is set.
	Onboard(ctx context.Context, ownerID string, currencies, categories []string) (*OnboardResult, error)

	// DeleteAllData removes every spending, category, currency and the owner row in one transaction.
	DeleteAllData(ctx context.Context, ownerID string) (*OwnerDataCounts, error)
}
