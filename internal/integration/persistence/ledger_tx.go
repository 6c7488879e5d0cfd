package persistence

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spendings-bot/ledger/internal/domain/entity"
	"github.com/spendings-bot/ledger/internal/integration/persistence/model"
)

// The helpers below run inside a caller's transaction. Inserts use
// ON CONFLICT DO NOTHING so that concurrent duplicate writes never abort it.

// ensureOwner returns the owner row, creating it when absent.
func ensureOwner(tx *gorm.DB, ownerID string) (*model.OwnerModel, error) {
	ownerModel := model.OwnerFromEntity(entity.NewOwner(ownerID))
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(ownerModel).Error; err != nil {
		return nil, err
	}

	var stored model.OwnerModel
	if err := tx.Where("id = ?", ownerID).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// setMainCurrency points the owner's main currency at code.
func setMainCurrency(tx *gorm.DB, ownerID, code string) error {
	return tx.Model(&model.OwnerModel{}).
		Where("id = ?", ownerID).
		Updates(map[string]interface{}{
			"main_currency": code,
			"updated_at":    time.Now().UTC(),
		}).Error
}

// findCurrency returns nil, nil when the owner has no currency with code.
func findCurrency(tx *gorm.DB, ownerID, code string) (*model.CurrencyModel, error) {
	var currencyModel model.CurrencyModel
	err := tx.Where("owner_id = ? AND code = ?", ownerID, code).First(&currencyModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &currencyModel, nil
}

// ensureCurrency returns the currency, creating it active when absent.
func ensureCurrency(tx *gorm.DB, ownerID, code string) (*model.CurrencyModel, bool, error) {
	currencyModel := model.CurrencyFromEntity(entity.NewCurrency(ownerID, code))
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(currencyModel)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 1 {
		return currencyModel, true, nil
	}

	existing, err := findCurrency(tx, ownerID, code)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, gorm.ErrRecordNotFound
	}
	return existing, false, nil
}

// findCategory returns nil, nil when the owner has no category with name.
func findCategory(tx *gorm.DB, ownerID, name string) (*model.CategoryModel, error) {
	var categoryModel model.CategoryModel
	err := tx.Where("owner_id = ? AND name = ?", ownerID, name).First(&categoryModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &categoryModel, nil
}

// ensureCategory returns the category, creating it when absent.
func ensureCategory(tx *gorm.DB, ownerID, name string) (*model.CategoryModel, bool, error) {
	categoryModel := model.CategoryFromEntity(entity.NewCategory(ownerID, name))
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(categoryModel)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 1 {
		return categoryModel, true, nil
	}

	existing, err := findCategory(tx, ownerID, name)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, gorm.ErrRecordNotFound
	}
	return existing, false, nil
}
