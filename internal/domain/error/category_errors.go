package error

import "fmt"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category does not exist for the owner.
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)

	// ErrCategoryAlreadyArchived is returned when archiving an archived category.
	ErrCategoryAlreadyArchived = fmt.Errorf("category %w", ErrAlreadyArchived)

	// ErrCategoryNotArchived is returned when restoring an active category.
	ErrCategoryNotArchived = fmt.Errorf("category %w", ErrNotArchived)

	// ErrInvalidCategoryName is returned when a category name is empty or too long.
	ErrInvalidCategoryName = fmt.Errorf("%w: invalid category name", ErrValidation)

	// ErrReassignToSameCategory is returned when a removal reassigns spendings to the removed category.
	ErrReassignToSameCategory = fmt.Errorf("%w: cannot reassign spendings to the category being removed", ErrValidation)
)

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidCategoryName    ErrorCode = "CAT-010001"
	ErrCodeReassignToSameCategory ErrorCode = "CAT-010002"

	// Lookup errors (02XXXX)
	ErrCodeCategoryNotFound ErrorCode = "CAT-020001"

	// State errors (03XXXX)
	ErrCodeDuplicateCategory       ErrorCode = "CAT-030001"
	ErrCodeCategoryAlreadyArchived ErrorCode = "CAT-030002"
	ErrCodeCategoryNotArchived     ErrorCode = "CAT-030003"
	ErrCodeCategoryInUse           ErrorCode = "CAT-030004"
)
