package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendings-bot/ledger/internal/domain/entity"
)

// rateDayLayout is the layout of the Day key column.
const rateDayLayout = "2006-01-02"

// ExchangeRateModel represents the exchange_rates table in the database.
// Day is stored as text so the key compares identically on every database.
type ExchangeRateModel struct {
	Base       string          `gorm:"type:varchar(3);primaryKey"`
	Quote      string          `gorm:"type:varchar(3);primaryKey"`
	Day        string          `gorm:"type:varchar(10);primaryKey"`
	Rate       decimal.Decimal `gorm:"type:decimal(24,10);not null"`
	ObservedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ExchangeRateModel.
func (ExchangeRateModel) TableName() string {
	return "exchange_rates"
}

// RateDay formats the key of a rate date.
func RateDay(date time.Time) string {
	return entity.RateDate(date).Format(rateDayLayout)
}

// ToEntity converts an ExchangeRateModel to a domain ExchangeRate entity.
func (m *ExchangeRateModel) ToEntity() *entity.ExchangeRate {
	date, _ := time.ParseInLocation(rateDayLayout, m.Day, time.UTC)
	return &entity.ExchangeRate{
		Base:       m.Base,
		Quote:      m.Quote,
		Date:       date,
		Rate:       m.Rate,
		ObservedAt: m.ObservedAt,
	}
}

// ExchangeRateFromEntity creates an ExchangeRateModel from a domain ExchangeRate entity.
func ExchangeRateFromEntity(rate *entity.ExchangeRate) *ExchangeRateModel {
	return &ExchangeRateModel{
		Base:       rate.Base,
		Quote:      rate.Quote,
		Day:        RateDay(rate.Date),
		Rate:       rate.Rate,
		ObservedAt: rate.ObservedAt,
	}
}

// AllModels returns every model managed by AutoMigrate, in dependency order.
func AllModels() []interface{} {
	return []interface{}{
		&OwnerModel{},
		&CurrencyModel{},
		&CategoryModel{},
		&SpendingModel{},
		&ExchangeRateModel{},
	}
}
