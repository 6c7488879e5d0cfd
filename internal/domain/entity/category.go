package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxCategoryNameLength is the maximum number of characters in a category name.
const MaxCategoryNameLength = 50

// Category is a spending category of an owner.
type Category struct {
	ID        uuid.UUID
	OwnerID   string
	Name      string
	Archived  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a new Category entity. The name must already be normalized.
func NewCategory(ownerID, name string) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NormalizeCategoryName trims a name and reports whether it is usable.
func NormalizeCategoryName(name string) (string, bool) {
	normalized := strings.Join(strings.Fields(name), " ")
	if normalized == "" || utf8.RuneCountInString(normalized) > MaxCategoryNameLength {
		return normalized, false
	}
	return normalized, true
}
