package error

import "fmt"

// Exchange rate and report domain errors.
var (
	// ErrRateNotPositive is returned when a rate is zero or negative.
	ErrRateNotPositive = fmt.Errorf("%w: exchange rate must be positive", ErrValidation)

	// ErrImportMalformed is returned when an import file cannot be read as a whole.
	ErrImportMalformed = fmt.Errorf("%w: malformed import file", ErrValidation)
)

const (
	// Validation errors (01XXXX)
	ErrCodeRateNotPositive ErrorCode = "RPT-010001"

	// Availability errors (04XXXX)
	ErrCodeRateUnavailable  ErrorCode = "RPT-040001"
	ErrCodeReportIncomplete ErrorCode = "RPT-040002"

	// Import errors (05XXXX)
	ErrCodeImportMalformed ErrorCode = "IMP-050001"

	// Internal errors (99XXXX)
	ErrCodeInternal ErrorCode = "LED-990001"
)
