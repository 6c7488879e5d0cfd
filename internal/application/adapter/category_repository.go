package adapter

import (
	"context"

	"github.com/spendings-bot/ledger/internal/domain/entity"
)

// CategoryRemoveResult is the outcome of removing a category.
type CategoryRemoveResult struct {
	Removed    *entity.Category
	ReassignTo *entity.Category // Nil when no reassignment was requested
	Moved      int64
}

// CategoryRepository defines the interface for category persistence operations.
// Every mutating method runs in a single database transaction.
type CategoryRepository interface {
	// FindByName retrieves a category by owner and name. It returns nil, nil when absent.
	FindByName(ctx context.Context, ownerID, name string) (*entity.Category, error)

	// FindByOwner retrieves the owner's categories ordered by name.
	FindByOwner(ctx context.Context, ownerID string, includeArchived bool) ([]*entity.Category, error)

	// Add inserts a category or restores it when archived. It returns ErrDuplicateCategory
	// when the category is already active.
	Add(ctx context.Context, ownerID, name string) (*entity.Category, bool, error)

	// Archive hides a category from pickers.
	Archive(ctx context.Context, ownerID, name string) (*entity.Category, error)

	// Restore reactivates an archived category.
	Restore(ctx context.Context, ownerID, name string) (*entity.Category, error)

	// Remove deletes a category. When reassignTo is empty and spendings reference the
	// category it returns ErrCategoryInUse; otherwise referencing spendings are moved
	// to reassignTo, which is created when absent.
	Remove(ctx context.Context, ownerID, name, reassignTo string) (*CategoryRemoveResult, error)
}
