package error

import "fmt"

// Currency domain errors.
var (
	// ErrCurrencyNotFound is returned when a currency does not exist for the owner.
	ErrCurrencyNotFound = fmt.Errorf("currency %w", ErrNotFound)

	// ErrCurrencyAlreadyArchived is returned when archiving an archived currency.
	ErrCurrencyAlreadyArchived = fmt.Errorf("currency %w", ErrAlreadyArchived)

	// ErrCurrencyNotArchived is returned when restoring an active currency.
	ErrCurrencyNotArchived = fmt.Errorf("currency %w", ErrNotArchived)

	// ErrInvalidCurrencyCode is returned when a code is not three letters.
	ErrInvalidCurrencyCode = fmt.Errorf("%w: currency code must be three letters", ErrValidation)

	// ErrCurrencyArchived is returned when selecting an archived currency as main currency.
	ErrCurrencyArchived = fmt.Errorf("%w: currency is archived", ErrValidation)

	// ErrMainCurrencyNotSet is returned when a report needs the main currency and none is set.
	ErrMainCurrencyNotSet = fmt.Errorf("%w: main currency is not set", ErrValidation)
)

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidCurrencyCode ErrorCode = "CUR-010001"
	ErrCodeCurrencyArchived    ErrorCode = "CUR-010002"
	ErrCodeMainCurrencyNotSet  ErrorCode = "CUR-010003"

	// Lookup errors (02XXXX)
	ErrCodeCurrencyNotFound ErrorCode = "CUR-020001"

	// State errors (03XXXX)
	ErrCodeDuplicateCurrency       ErrorCode = "CUR-030001"
	ErrCodeCurrencyAlreadyArchived ErrorCode = "CUR-030002"
	ErrCodeCurrencyNotArchived     ErrorCode = "CUR-030003"
	ErrCodeMainCurrencyInUse       ErrorCode = "CUR-030004"
	ErrCodeCurrencyInUse           ErrorCode = "CUR-030005"
)
