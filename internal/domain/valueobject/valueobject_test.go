package valueobject

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "dot separator", input: "12.50", expected: "12.50"},
		{name: "comma separator", input: "12,5", expected: "12.50"},
		{name: "integer", input: " 7 ", expected: "7.00"},
		{name: "half even down", input: "0.125", expected: "0.12"},
		{name: "half even up", input: "0.135", expected: "0.14"},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-3.00", wantErr: true},
		{name: "rounds to zero", input: "0.004", wantErr: true},
		{name: "two separators", input: "1,234.50", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "largest storable", input: "9999999999999.99", expected: "9999999999999.99"},
		{name: "above column precision", input: "10000000000000", wantErr: true},
		{name: "rounds above maximum", input: "9999999999999.995", wantErr: true},
		{name: "far above maximum", input: "123456789012345678.01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q, got %s", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if FormatAmount(got) != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, FormatAmount(got))
			}
		})
	}
}

func TestParseLedgerDate(t *testing.T) {
	day := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		input    string
		expected time.Time
	}{
		{"2024-03-05", day},
		{"05-03-2024", day},
		{"05/03/2024", day},
		{"05.03.2024", day},
		{"2024-03-05T10:30:00+02:00", time.Date(2024, time.March, 5, 8, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := ParseLedgerDate(tt.input)
		if err != nil {
			t.Errorf("ParseLedgerDate(%q) returned error: %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.expected) {
			t.Errorf("ParseLedgerDate(%q) = %s, expected %s", tt.input, got, tt.expected)
		}
	}

	for _, bad := range []string{"", "2024-13-01", "yesterday"} {
		if _, err := ParseLedgerDate(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestFormatLedgerDate_RoundTrip(t *testing.T) {
	values := []time.Time{
		time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 31, 23, 59, 59, 123456000, time.UTC),
	}
	for _, v := range values {
		parsed, err := ParseLedgerDate(FormatLedgerDate(v))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !parsed.Equal(v) {
			t.Errorf("round trip of %s produced %s", v, parsed)
		}
	}
	if got := FormatLedgerDate(values[0]); got != "2024-01-31" {
		t.Errorf("expected calendar day format, got %s", got)
	}
}

func TestDateRange(t *testing.T) {
	r := MonthRange(2024, time.February)
	if !r.Contains(time.Date(2024, time.February, 29, 23, 0, 0, 0, time.UTC)) {
		t.Error("expected leap day to be inside February")
	}
	if r.Contains(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected upper bound to be exclusive")
	}

	now := time.Now()
	if _, err := NewDateRange(now, now); err == nil {
		t.Error("expected empty range to be rejected")
	}
	open, err := NewDateRange(time.Time{}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if open.HasFrom() || !open.HasTo() {
		t.Error("expected only an upper bound")
	}
}

func TestSpendingCursor_RoundTrip(t *testing.T) {
	cursor := SpendingCursor{
		OccurredAt: time.Date(2024, time.May, 1, 12, 0, 0, 123000, time.UTC),
		ID:         uuid.New(),
	}

	decoded, err := DecodeSpendingCursor(cursor.Encode())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decoded.OccurredAt.Equal(cursor.OccurredAt) || decoded.ID != cursor.ID {
		t.Errorf("expected %+v, got %+v", cursor, decoded)
	}

	for _, bad := range []string{"!!", "bm90LWEtY3Vyc29y", ""} {
		if _, err := DecodeSpendingCursor(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
