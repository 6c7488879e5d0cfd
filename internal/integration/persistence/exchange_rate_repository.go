package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	"github.com/spendings-bot/ledger/internal/integration/persistence/model"
)

// exchangeRateRepository implements the adapter.ExchangeRateRepository interface.
type exchangeRateRepository struct {
	db *gorm.DB
}

// NewExchangeRateRepository creates a new exchange rate repository instance.
func NewExchangeRateRepository(db *gorm.DB) adapter.ExchangeRateRepository {
	return &exchangeRateRepository{
		db: db,
	}
}

// Find retrieves the rate for a pair on a calendar day.
func (r *exchangeRateRepository) Find(ctx context.Context, base, quote string, date time.Time) (*entity.ExchangeRate, error) {
	var rateModel model.ExchangeRateModel
	result := r.db.WithContext(ctx).
		Where("base = ? AND quote = ? AND day = ?", base, quote, model.RateDay(date)).
		First(&rateModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return rateModel.ToEntity(), nil
}

// Save stores a rate unless one already exists for the pair and day.
func (r *exchangeRateRepository) Save(ctx context.Context, rate *entity.ExchangeRate) error {
	rateModel := model.ExchangeRateFromEntity(rate)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(rateModel).Error
}
