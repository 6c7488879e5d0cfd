// Package error defines domain-specific errors for the spendings ledger.
package error

import "errors"

// Error kinds. Every domain error wraps exactly one of these so callers can
// branch on the kind with errors.Is regardless of the specific error.
var (
	// ErrNotFound is returned when an entity does not exist for the owner.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when input fails validation.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateCurrency is returned when adding a currency the owner already has active.
	ErrDuplicateCurrency = errors.New("currency already exists")

	// ErrDuplicateCategory is returned when adding a category the owner already has active.
	ErrDuplicateCategory = errors.New("category already exists")

	// ErrAlreadyArchived is returned when archiving an archived entity.
	ErrAlreadyArchived = errors.New("already archived")

	// ErrNotArchived is returned when restoring an entity that is not archived.
	ErrNotArchived = errors.New("not archived")

	// ErrMainCurrencyInUse is returned when the main currency cannot be archived or removed.
	ErrMainCurrencyInUse = errors.New("main currency in use")

	// ErrCurrencyInUse is returned when removing a currency referenced by spendings.
	ErrCurrencyInUse = errors.New("currency in use")

	// ErrCategoryInUse is returned when removing a category referenced by spendings.
	ErrCategoryInUse = errors.New("category in use")

	// ErrRateUnavailable is returned when no exchange rate can be resolved.
	ErrRateUnavailable = errors.New("exchange rate unavailable")

	// ErrReportIncomplete is returned when a report cannot convert every line item.
	ErrReportIncomplete = errors.New("report incomplete")
)

// ErrorCode identifies a domain error for API clients.
// Format: AAA-XXYYYY where AAA is the area, XX the kind and YYYY the specific error.
type ErrorCode string

// LedgerError represents a domain error with code and message.
type LedgerError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code ErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Class groups error kinds by how a caller should react to them.
type Class string

const (
	// ClassNotFound means nothing was found for the owner.
	ClassNotFound Class = "not_found"
	// ClassNotPermitted means the operation conflicts with the current state.
	ClassNotPermitted Class = "not_permitted"
	// ClassInvalid means the request itself is malformed.
	ClassInvalid Class = "invalid"
	// ClassUnavailable means an external dependency is unavailable; retry later.
	ClassUnavailable Class = "unavailable"
	// ClassInternal is everything else.
	ClassInternal Class = "internal"
)

// Classify maps an error to its Class.
func Classify(err error) Class {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return ClassNotFound
	case errors.Is(err, ErrValidation):
		return ClassInvalid
	case errors.Is(err, ErrRateUnavailable), errors.Is(err, ErrReportIncomplete):
		return ClassUnavailable
	case errors.Is(err, ErrDuplicateCurrency),
		errors.Is(err, ErrDuplicateCategory),
		errors.Is(err, ErrAlreadyArchived),
		errors.Is(err, ErrNotArchived),
		errors.Is(err, ErrMainCurrencyInUse),
		errors.Is(err, ErrCurrencyInUse),
		errors.Is(err, ErrCategoryInUse):
		return ClassNotPermitted
	default:
		return ClassInternal
	}
}

// CodeOf returns the code of the outermost LedgerError in the chain, if any.
func CodeOf(err error) ErrorCode {
	var ledgerErr *LedgerError
	if errors.As(err, &ledgerErr) {
		return ledgerErr.Code
	}
	return ""
}
