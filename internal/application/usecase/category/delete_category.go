package category

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	OwnerID    string
	Name       string
	ReassignTo string // Optional; referencing spendings move here
}

// DeleteCategoryOutput represents the output of category deletion.
type DeleteCategoryOutput struct {
	Removed    *entity.Category
	ReassignTo *entity.Category
	Moved      int64
}

// DeleteCategoryUseCase handles category deletion logic.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	publisher    adapter.EventPublisher
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository, publisher adapter.EventPublisher) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		publisher:    publisher,
	}
}

// Execute performs the category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	if err := requireOwner(input.OwnerID); err != nil {
		return nil, err
	}
	name, err := parseName(input.Name)
	if err != nil {
		return nil, err
	}

	reassignTo := ""
	if input.ReassignTo != "" {
		if reassignTo, err = parseName(input.ReassignTo); err != nil {
			return nil, err
		}
	}

	result, err := uc.categoryRepo.Remove(ctx, input.OwnerID, name, reassignTo)
	if err != nil {
		return nil, translateError(err, name, "delete")
	}

	attributes := map[string]string{"name": name}
	if result.ReassignTo != nil {
		attributes["reassigned_to"] = result.ReassignTo.Name
		attributes["moved"] = strconv.FormatInt(result.Moved, 10)
	}
	slog.Info("Category removed", "ownerID", input.OwnerID, "name", name, "reassignTo", reassignTo, "moved", result.Moved)
	adapter.PublishBestEffort(ctx, uc.publisher, entity.NewLedgerEvent(entity.EventCategoryRemoved, input.OwnerID, attributes))

	return &DeleteCategoryOutput{
		Removed:    result.Removed,
		ReassignTo: result.ReassignTo,
		Moved:      result.Moved,
	}, nil
}
