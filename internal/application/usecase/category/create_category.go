// Package category contains category-related use cases.
package category

import (
	"context"
	"log/slog"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	OwnerID string
	Name    string
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
	Restored bool
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category creation. Adding an archived category restores it.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	if err := requireOwner(input.OwnerID); err != nil {
		return nil, err
	}
	name, err := parseName(input.Name)
	if err != nil {
		return nil, err
	}

	category, restored, err := uc.categoryRepo.Add(ctx, input.OwnerID, name)
	if err != nil {
		return nil, translateError(err, name, "create")
	}

	slog.Info("Category added", "ownerID", input.OwnerID, "name", name, "restored", restored)
	return &CreateCategoryOutput{
		Category: category,
		Restored: restored,
	}, nil
}
