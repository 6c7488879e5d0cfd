// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// DefaultCurrencies are seeded for a new owner; the first one becomes the main currency.
var DefaultCurrencies = []string{"USD", "EUR", "CNY"}

// DefaultCategories are seeded for a new owner.
var DefaultCategories = []string{
	"Food",
	"Transport",
	"Housing",
	"Utilities",
	"Health",
	"Entertainment",
	"Shopping",
	"Travel",
}

// Owner is the user scope that exclusively owns currencies, categories and spendings.
// ID is the opaque identifier assigned by the messaging front end.
type Owner struct {
	ID           string
	MainCurrency string // Empty when no main currency is configured
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewOwner creates a new Owner entity.
func NewOwner(id string) *Owner {
	now := time.Now().UTC()

	return &Owner{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasMainCurrency reports whether a main currency is configured.
func (o *Owner) HasMainCurrency() bool {
	return o.MainCurrency != ""
}
