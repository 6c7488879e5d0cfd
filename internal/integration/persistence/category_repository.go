package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// FindByName retrieves a category by owner and name.
func (r *categoryRepository) FindByName(ctx context.Context, ownerID, name string) (*entity.Category, error) {
	categoryModel, err := findCategory(r.db.WithContext(ctx), ownerID, name)
	if err != nil || categoryModel == nil {
		return nil, err
	}
	return categoryModel.ToEntity(), nil
}

// FindByOwner retrieves the owner's categories.
func (r *categoryRepository) FindByOwner(ctx context.Context, ownerID string, includeArchived bool) ([]*entity.Category, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if !includeArchived {
		query = query.Where("archived = ?", false)
	}

	var categoryModels []model.CategoryModel
	if err := query.Order("name ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i, cm := range categoryModels {
		categories[i] = cm.ToEntity()
	}
	return categories, nil
}

// Add inserts a category or restores an archived one.
func (r *categoryRepository) Add(ctx context.Context, ownerID, name string) (*entity.Category, bool, error) {
	var (
		category *entity.Category
		restored bool
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ensureOwner(tx, ownerID); err != nil {
			return err
		}

		existing, err := findCategory(tx, ownerID, name)
		if err != nil {
			return err
		}

		if existing != nil {
			if !existing.Archived {
				return domainerror.ErrDuplicateCategory
			}
			existing.Archived = false
			existing.UpdatedAt = time.Now().UTC()
			if err := tx.Save(existing).Error; err != nil {
				return err
			}
			category = existing.ToEntity()
			restored = true
			return nil
		}

		categoryModel := model.CategoryFromEntity(entity.NewCategory(ownerID, name))
		created := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(categoryModel)
		if created.Error != nil {
			return created.Error
		}
		if created.RowsAffected == 0 {
			return domainerror.ErrDuplicateCategory
		}
		category = categoryModel.ToEntity()
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return category, restored, nil
}

// Archive hides a category from pickers.
func (r *categoryRepository) Archive(ctx context.Context, ownerID, name string) (*entity.Category, error) {
	return r.setArchived(ctx, ownerID, name, true)
}

// Restore reactivates an archived category.
func (r *categoryRepository) Restore(ctx context.Context, ownerID, name string) (*entity.Category, error) {
	return r.setArchived(ctx, ownerID, name, false)
}

func (r *categoryRepository) setArchived(ctx context.Context, ownerID, name string, archived bool) (*entity.Category, error) {
	var category *entity.Category

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findCategory(tx, ownerID, name)
		if err != nil {
			return err
		}
		if existing == nil {
			return domainerror.ErrCategoryNotFound
		}
		if existing.Archived == archived {
			if archived {
				return domainerror.ErrCategoryAlreadyArchived
			}
			return domainerror.ErrCategoryNotArchived
		}

		existing.Archived = archived
		existing.UpdatedAt = time.Now().UTC()
		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		category = existing.ToEntity()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// Remove deletes a category, optionally moving its spendings to another one.
func (r *categoryRepository) Remove(ctx context.Context, ownerID, name, reassignTo string) (*adapter.CategoryRemoveResult, error) {
	result := &adapter.CategoryRemoveResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findCategory(tx, ownerID, name)
		if err != nil {
			return err
		}
		if existing == nil {
			return domainerror.ErrCategoryNotFound
		}
		result.Removed = existing.ToEntity()

		if reassignTo != "" {
			if reassignTo == name {
				return domainerror.ErrReassignToSameCategory
			}
			target, _, err := ensureCategory(tx, ownerID, reassignTo)
			if err != nil {
				return err
			}
			moved := tx.Model(&model.SpendingModel{}).
				Where("owner_id = ? AND category_id = ?", ownerID, existing.ID).
				Update("category_id", target.ID)
			if moved.Error != nil {
				return moved.Error
			}
			result.ReassignTo = target.ToEntity()
			result.Moved = moved.RowsAffected
		} else {
			var references int64
			err := tx.Model(&model.SpendingModel{}).Where("category_id = ?", existing.ID).Count(&references).Error
			if err != nil {
				return err
			}
			if references > 0 {
				return domainerror.ErrCategoryInUse
			}
		}

		return tx.Delete(&model.CategoryModel{}, "id = ?", existing.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
