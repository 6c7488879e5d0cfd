// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/spendings-bot/ledger/internal/domain/entity"
)

// OwnerModel represents the owners table in the database.
type OwnerModel struct {
	ID           string    `gorm:"type:varchar(64);primaryKey"`
	MainCurrency string    `gorm:"type:varchar(3);not null;default:''"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the OwnerModel.
func (OwnerModel) TableName() string {
	return "owners"
}

// ToEntity converts an OwnerModel to a domain Owner entity.
func (m *OwnerModel) ToEntity() *entity.Owner {
	return &entity.Owner{
		ID:           m.ID,
		MainCurrency: m.MainCurrency,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// OwnerFromEntity creates an OwnerModel from a domain Owner entity.
func OwnerFromEntity(owner *entity.Owner) *OwnerModel {
	return &OwnerModel{
		ID:           owner.ID,
		MainCurrency: owner.MainCurrency,
		CreatedAt:    owner.CreatedAt,
		UpdatedAt:    owner.UpdatedAt,
	}
}
