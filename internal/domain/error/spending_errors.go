package error

import "fmt"

// Spending domain errors.
var (
	// ErrSpendingNotFound is returned when a spending does not exist for the owner.
	ErrSpendingNotFound = fmt.Errorf("spending %w", ErrNotFound)

	// ErrInvalidAmount is returned when an amount is not a positive decimal.
	ErrInvalidAmount = fmt.Errorf("%w: amount must be a positive number", ErrValidation)

	// ErrInvalidDate is returned when a date cannot be parsed.
	ErrInvalidDate = fmt.Errorf("%w: invalid date", ErrValidation)

	// ErrInvalidDateRange is returned when a range ends before it starts.
	ErrInvalidDateRange = fmt.Errorf("%w: date range end must be after its start", ErrValidation)

	// ErrDescriptionTooLong is returned when a description exceeds the maximum length.
	ErrDescriptionTooLong = fmt.Errorf("%w: description too long", ErrValidation)

	// ErrInvalidCursor is returned when a pagination cursor cannot be decoded.
	ErrInvalidCursor = fmt.Errorf("%w: invalid cursor", ErrValidation)

	// ErrMissingOwner is returned when an operation has no owner scope.
	ErrMissingOwner = fmt.Errorf("%w: owner is required", ErrValidation)
)

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount         ErrorCode = "SPN-010001"
	ErrCodeInvalidDate           ErrorCode = "SPN-010002"
	ErrCodeInvalidDateRange      ErrorCode = "SPN-010003"
	ErrCodeDescriptionTooLong    ErrorCode = "SPN-010004"
	ErrCodeInvalidCursor         ErrorCode = "SPN-010005"
	ErrCodeMissingOwner          ErrorCode = "SPN-010006"
	ErrCodeMissingSpendingFields ErrorCode = "SPN-010007"

	// Lookup errors (02XXXX)
	ErrCodeSpendingNotFound ErrorCode = "SPN-020001"
)
