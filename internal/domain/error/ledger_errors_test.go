package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Class
	}{
		{name: "nil", err: nil, expected: ""},
		{name: "currency not found", err: ErrCurrencyNotFound, expected: ClassNotFound},
		{name: "spending not found wrapped", err: fmt.Errorf("remove: %w", ErrSpendingNotFound), expected: ClassNotFound},
		{name: "invalid amount", err: ErrInvalidAmount, expected: ClassInvalid},
		{name: "duplicate currency", err: ErrDuplicateCurrency, expected: ClassNotPermitted},
		{name: "category in use", err: ErrCategoryInUse, expected: ClassNotPermitted},
		{name: "main currency in use", err: ErrMainCurrencyInUse, expected: ClassNotPermitted},
		{name: "already archived", err: ErrCurrencyAlreadyArchived, expected: ClassNotPermitted},
		{name: "rate unavailable", err: ErrRateUnavailable, expected: ClassUnavailable},
		{
			name:     "report incomplete wraps rate unavailable",
			err:      NewLedgerError(ErrCodeReportIncomplete, "report incomplete", fmt.Errorf("%w: %w", ErrReportIncomplete, ErrRateUnavailable)),
			expected: ClassUnavailable,
		},
		{name: "unknown", err: errors.New("boom"), expected: ClassInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.expected {
				t.Errorf("expected class %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestLedgerError_UnwrapAndCode(t *testing.T) {
	err := NewLedgerError(ErrCodeCurrencyNotFound, "currency not found", ErrCurrencyNotFound)
	wrapped := fmt.Errorf("archive: %w", err)

	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("expected wrapped error to match ErrNotFound")
	}
	if CodeOf(wrapped) != ErrCodeCurrencyNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeCurrencyNotFound, CodeOf(wrapped))
	}
	if CodeOf(errors.New("plain")) != "" {
		t.Error("expected empty code for plain error")
	}
	if err.Error() != "currency not found: currency not found" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
