package category

import (
	"context"
	"log/slog"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
)

// ArchiveCategoryInput represents the input for archiving or restoring a category.
type ArchiveCategoryInput struct {
	OwnerID string
	Name    string
}

// ArchiveCategoryUseCase hides a category from pickers. Its spendings keep it.
type ArchiveCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewArchiveCategoryUseCase creates a new ArchiveCategoryUseCase instance.
func NewArchiveCategoryUseCase(categoryRepo adapter.CategoryRepository) *ArchiveCategoryUseCase {
	return &ArchiveCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute archives the category.
func (uc *ArchiveCategoryUseCase) Execute(ctx context.Context, input ArchiveCategoryInput) (*entity.Category, error) {
	if err := requireOwner(input.OwnerID); err != nil {
		return nil, err
	}
	name, err := parseName(input.Name)
	if err != nil {
		return nil, err
	}

	category, err := uc.categoryRepo.Archive(ctx, input.OwnerID, name)
	if err != nil {
		return nil, translateError(err, name, "archive")
	}
	slog.Info("Category archived", "ownerID", input.OwnerID, "name", name)
	return category, nil
}

// RestoreCategoryUseCase reactivates an archived category.
type RestoreCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewRestoreCategoryUseCase creates a new RestoreCategoryUseCase instance.
func NewRestoreCategoryUseCase(categoryRepo adapter.CategoryRepository) *RestoreCategoryUseCase {
	return &RestoreCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute restores the category.
func (uc *RestoreCategoryUseCase) Execute(ctx context.Context, input ArchiveCategoryInput) (*entity.Category, error) {
	if err := requireOwner(input.OwnerID); err != nil {
		return nil, err
	}
	name, err := parseName(input.Name)
	if err != nil {
		return nil, err
	}

	category, err := uc.categoryRepo.Restore(ctx, input.OwnerID, name)
	if err != nil {
		return nil, translateError(err, name, "restore")
	}
	slog.Info("Category restored", "ownerID", input.OwnerID, "name", name)
	return category, nil
}
