package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CurrencyCodeLength is the length of an ISO 4217 style currency code.
const CurrencyCodeLength = 3

// Currency is a currency known to an owner. Archived currencies (Active == false)
// are hidden from pickers but stay resolvable for historical spendings and reports.
type Currency struct {
	ID        uuid.UUID
	OwnerID   string
	Code      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCurrency creates a new active Currency entity. The code must already be normalized.
func NewCurrency(ownerID, code string) *Currency {
	now := time.Now().UTC()

	return &Currency{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Code:      code,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NormalizeCurrencyCode trims and upper-cases a code and reports whether it is
// made of exactly three ASCII letters.
func NormalizeCurrencyCode(code string) (string, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if len(normalized) != CurrencyCodeLength {
		return normalized, false
	}
	for _, r := range normalized {
		if r < 'A' || r > 'Z' {
			return normalized, false
		}
	}
	return normalized, true
}
