package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendings-bot/ledger/internal/domain/entity"
)

// SpendingModel represents the spendings table in the database.
type SpendingModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID     string          `gorm:"type:varchar(64);not null;index:idx_spendings_owner_occurred,priority:1"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CurrencyID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(255);not null;default:''"`
	OccurredAt  time.Time       `gorm:"not null;index:idx_spendings_owner_occurred,priority:2"`
	CreatedAt   time.Time       `gorm:"not null"`

	// Relationships
	Currency CurrencyModel `gorm:"foreignKey:CurrencyID"`
	Category CategoryModel `gorm:"foreignKey:CategoryID"`
}

// TableName returns the table name for the SpendingModel.
func (SpendingModel) TableName() string {
	return "spendings"
}

// ToEntity converts a SpendingModel to a domain Spending entity.
// Currency and Category must be preloaded for the code and name to be set.
func (m *SpendingModel) ToEntity() *entity.Spending {
	return &entity.Spending{
		ID:           m.ID,
		OwnerID:      m.OwnerID,
		Amount:       m.Amount,
		CurrencyID:   m.CurrencyID,
		CurrencyCode: m.Currency.Code,
		CategoryID:   m.CategoryID,
		CategoryName: m.Category.Name,
		Description:  m.Description,
		OccurredAt:   m.OccurredAt.UTC(),
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

// SpendingFromEntity creates a SpendingModel from a domain Spending entity.
func SpendingFromEntity(spending *entity.Spending) *SpendingModel {
	return &SpendingModel{
		ID:          spending.ID,
		OwnerID:     spending.OwnerID,
		Amount:      spending.Amount,
		CurrencyID:  spending.CurrencyID,
		CategoryID:  spending.CategoryID,
		Description: spending.Description,
		OccurredAt:  spending.OccurredAt,
		CreatedAt:   spending.CreatedAt,
	}
}
