// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	"github.com/spendings-bot/ledger/internal/integration/persistence/model"
)

// ownerRepository implements the adapter.OwnerRepository interface.
type ownerRepository struct {
	db *gorm.DB
}

// NewOwnerRepository creates a new owner repository instance.
func NewOwnerRepository(db *gorm.DB) adapter.OwnerRepository {
	return &ownerRepository{
		db: db,
	}
}

// FindByID retrieves an owner by ID.
func (r *ownerRepository) FindByID(ctx context.Context, ownerID string) (*entity.Owner, error) {
	var ownerModel model.OwnerModel
	result := r.db.WithContext(ctx).Where("id = ?", ownerID).First(&ownerModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ownerModel.ToEntity(), nil
}

// Onboard seeds an owner with currencies and categories.
func (r *ownerRepository) Onboard(ctx context.Context, ownerID string, currencies, categories []string) (*adapter.OnboardResult, error) {
	result := &adapter.OnboardResult{
		CreatedCurrencies: []string{},
		CreatedCategories: []string{},
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownerModel, err := ensureOwner(tx, ownerID)
		if err != nil {
			return err
		}

		firstActive := ""
		for _, code := range currencies {
			currencyModel, created, err := ensureCurrency(tx, ownerID, code)
			if err != nil {
				return err
			}
			if created {
				result.CreatedCurrencies = append(result.CreatedCurrencies, code)
			}
			if firstActive == "" && currencyModel.Active {
				firstActive = code
			}
		}

		if ownerModel.MainCurrency == "" && firstActive != "" {
			if err := setMainCurrency(tx, ownerID, firstActive); err != nil {
				return err
			}
			ownerModel.MainCurrency = firstActive
		}

		for _, name := range categories {
			_, created, err := ensureCategory(tx, ownerID, name)
			if err != nil {
				return err
			}
			if created {
				result.CreatedCategories = append(result.CreatedCategories, name)
			}
		}

		result.Owner = ownerModel.ToEntity()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteAllData removes all of an owner's rows. Exchange rates are shared and stay.
func (r *ownerRepository) DeleteAllData(ctx context.Context, ownerID string) (*adapter.OwnerDataCounts, error) {
	counts := &adapter.OwnerDataCounts{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("owner_id = ?", ownerID).Delete(&model.SpendingModel{})
		if result.Error != nil {
			return result.Error
		}
		counts.Spendings = result.RowsAffected

		result = tx.Where("owner_id = ?", ownerID).Delete(&model.CategoryModel{})
		if result.Error != nil {
			return result.Error
		}
		counts.Categories = result.RowsAffected

		result = tx.Where("owner_id = ?", ownerID).Delete(&model.CurrencyModel{})
		if result.Error != nil {
			return result.Error
		}
		counts.Currencies = result.RowsAffected

		return tx.Where("id = ?", ownerID).Delete(&model.OwnerModel{}).Error
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}
