package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/integration/persistence/model"
)

// currencyRepository implements the adapter.CurrencyRepository interface.
type currencyRepository struct {
	db *gorm.DB
}

// NewCurrencyRepository creates a new currency repository instance.
func NewCurrencyRepository(db *gorm.DB) adapter.CurrencyRepository {
	return &currencyRepository{
		db: db,
	}
}

// FindByCode retrieves a currency by owner and code.
func (r *currencyRepository) FindByCode(ctx context.Context, ownerID, code string) (*entity.Currency, error) {
	currencyModel, err := findCurrency(r.db.WithContext(ctx), ownerID, code)
	if err != nil || currencyModel == nil {
		return nil, err
	}
	return currencyModel.ToEntity(), nil
}

// FindByOwner retrieves the owner's currencies in the given state.
func (r *currencyRepository) FindByOwner(ctx context.Context, ownerID string, state adapter.CurrencyState) ([]*entity.Currency, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	switch state {
	case adapter.CurrencyStateActive:
		query = query.Where("active = ?", true)
	case adapter.CurrencyStateArchived:
		query = query.Where("active = ?", false)
	}

	var currencyModels []model.CurrencyModel
	if err := query.Order("code ASC").Find(&currencyModels).Error; err != nil {
		return nil, err
	}

	currencies := make([]*entity.Currency, len(currencyModels))
	for i, cm := range currencyModels {
		currencies[i] = cm.ToEntity()
	}
	return currencies, nil
}

// Add inserts a currency or restores an archived one.
func (r *currencyRepository) Add(ctx context.Context, ownerID, code string) (*adapter.CurrencyAddResult, error) {
	result := &adapter.CurrencyAddResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownerModel, err := ensureOwner(tx, ownerID)
		if err != nil {
			return err
		}

		existing, err := findCurrency(tx, ownerID, code)
		if err != nil {
			return err
		}

		if existing != nil {
			if existing.Active {
				return domainerror.ErrDuplicateCurrency
			}
			existing.Active = true
			existing.UpdatedAt = time.Now().UTC()
			if err := tx.Save(existing).Error; err != nil {
				return err
			}
			result.Currency = existing.ToEntity()
			result.Restored = true
		} else {
			currencyModel := model.CurrencyFromEntity(entity.NewCurrency(ownerID, code))
			created := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(currencyModel)
			if created.Error != nil {
				return created.Error
			}
			if created.RowsAffected == 0 {
				return domainerror.ErrDuplicateCurrency
			}
			result.Currency = currencyModel.ToEntity()
		}

		if ownerModel.MainCurrency == "" {
			if err := setMainCurrency(tx, ownerID, code); err != nil {
				return err
			}
			result.BecameMain = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Ensure inserts the currency when absent.
func (r *currencyRepository) Ensure(ctx context.Context, ownerID, code string) (*entity.Currency, bool, error) {
	var (
		currency *entity.Currency
		created  bool
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ensureOwner(tx, ownerID); err != nil {
			return err
		}
		currencyModel, wasCreated, err := ensureCurrency(tx, ownerID, code)
		if err != nil {
			return err
		}
		currency = currencyModel.ToEntity()
		created = wasCreated
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return currency, created, nil
}

// Archive hides a currency, re-pointing the main currency when needed.
func (r *currencyRepository) Archive(ctx context.Context, ownerID, code string) (*adapter.CurrencyArchiveResult, error) {
	result := &adapter.CurrencyArchiveResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findCurrency(tx, ownerID, code)
		if err != nil {
			return err
		}
		if existing == nil {
			return domainerror.ErrCurrencyNotFound
		}
		if !existing.Active {
			return domainerror.ErrCurrencyAlreadyArchived
		}

		ownerModel, err := ensureOwner(tx, ownerID)
		if err != nil {
			return err
		}

		if ownerModel.MainCurrency == code {
			var next model.CurrencyModel
			err := tx.Where("owner_id = ? AND active = ? AND code <> ?", ownerID, true, code).
				Order("code ASC").
				First(&next).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domainerror.ErrMainCurrencyInUse
				}
				return err
			}
			if err := setMainCurrency(tx, ownerID, next.Code); err != nil {
				return err
			}
			result.NewMain = next.Code
		}

		existing.Active = false
		existing.UpdatedAt = time.Now().UTC()
		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		result.Currency = existing.ToEntity()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Restore reactivates an archived currency.
func (r *currencyRepository) Restore(ctx context.Context, ownerID, code string) (*entity.Currency, error) {
	var currency *entity.Currency

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findCurrency(tx, ownerID, code)
		if err != nil {
			return err
		}
		if existing == nil {
			return domainerror.ErrCurrencyNotFound
		}
		if existing.Active {
			return domainerror.ErrCurrencyNotArchived
		}

		existing.Active = true
		existing.UpdatedAt = time.Now().UTC()
		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		currency = existing.ToEntity()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return currency, nil
}

// Remove hard-deletes an unreferenced currency.
func (r *currencyRepository) Remove(ctx context.Context, ownerID, code string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findCurrency(tx, ownerID, code)
		if err != nil {
			return err
		}
		if existing == nil {
			return domainerror.ErrCurrencyNotFound
		}

		var ownerModel model.OwnerModel
		err = tx.Where("id = ?", ownerID).Limit(1).Find(&ownerModel).Error
		if err != nil {
			return err
		}
		if ownerModel.MainCurrency == code {
			return domainerror.ErrMainCurrencyInUse
		}

		var references int64
		err = tx.Model(&model.SpendingModel{}).Where("currency_id = ?", existing.ID).Count(&references).Error
		if err != nil {
			return err
		}
		if references > 0 {
			return domainerror.ErrCurrencyInUse
		}

		return tx.Delete(&model.CurrencyModel{}, "id = ?", existing.ID).Error
	})
}

// SetMain makes an active currency the owner's main currency.
func (r *currencyRepository) SetMain(ctx context.Context, ownerID, code string) (*entity.Currency, error) {
	var currency *entity.Currency

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := findCurrency(tx, ownerID, code)
		if err != nil {
			return err
		}
		if existing == nil {
			return domainerror.ErrCurrencyNotFound
		}
		if !existing.Active {
			return domainerror.ErrCurrencyArchived
		}
		if _, err := ensureOwner(tx, ownerID); err != nil {
			return err
		}
		if err := setMainCurrency(tx, ownerID, code); err != nil {
			return err
		}
		currency = existing.ToEntity()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return currency, nil
}
