package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/spendings-bot/ledger/internal/domain/entity"
)

// CurrencyModel represents the currencies table in the database.
type CurrencyModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID   string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_currencies_owner_code,priority:1"`
	Code      string    `gorm:"type:varchar(3);not null;uniqueIndex:idx_currencies_owner_code,priority:2"`
	Active    bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the CurrencyModel.
func (CurrencyModel) TableName() string {
	return "currencies"
}

// ToEntity converts a CurrencyModel to a domain Currency entity.
func (m *CurrencyModel) ToEntity() *entity.Currency {
	return &entity.Currency{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Code:      m.Code,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CurrencyFromEntity creates a CurrencyModel from a domain Currency entity.
func CurrencyFromEntity(currency *entity.Currency) *CurrencyModel {
	return &CurrencyModel{
		ID:        currency.ID,
		OwnerID:   currency.OwnerID,
		Code:      currency.Code,
		Active:    currency.Active,
		CreatedAt: currency.CreatedAt,
		UpdatedAt: currency.UpdatedAt,
	}
}
