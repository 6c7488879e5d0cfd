package entity

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSortedLines_OrdersByAmountThenKey(t *testing.T) {
	totals := map[string]decimal.Decimal{
		"Transport": decimal.RequireFromString("10.00"),
		"Food":      decimal.RequireFromString("25.50"),
		"Health":    decimal.RequireFromString("10.00"),
		"Travel":    decimal.RequireFromString("3.10"),
	}

	lines := SortedLines(totals)

	expected := []string{"Food", "Health", "Transport", "Travel"}
	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %d", len(expected), len(lines))
	}
	for i, key := range expected {
		if lines[i].Key != key {
			t.Errorf("position %d: expected %s, got %s", i, key, lines[i].Key)
		}
	}
}

func TestSortedLines_Empty(t *testing.T) {
	lines := SortedLines(nil)
	if lines == nil || len(lines) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", lines)
	}
}

func TestNormalizeCurrencyCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		valid    bool
	}{
		{" usd ", "USD", true},
		{"EUR", "EUR", true},
		{"EURO", "EURO", false},
		{"U5D", "U5D", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeCurrencyCode(tt.input)
		if got != tt.expected || ok != tt.valid {
			t.Errorf("NormalizeCurrencyCode(%q) = (%q, %v), expected (%q, %v)", tt.input, got, ok, tt.expected, tt.valid)
		}
	}
}

func TestNormalizeCategoryName(t *testing.T) {
	if name, ok := NormalizeCategoryName("  Eating   out "); !ok || name != "Eating out" {
		t.Errorf("expected %q to normalize, got (%q, %v)", "Eating out", name, ok)
	}
	if _, ok := NormalizeCategoryName("   "); ok {
		t.Error("expected blank name to be rejected")
	}
}
