package entity

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ReportLine is one keyed amount of a report breakdown.
type ReportLine struct {
	Key    string
	Amount decimal.Decimal
}

// Report is a categorized, currency-normalized summary of spendings in a range.
// ByCategory holds amounts converted to TargetCurrency; ByCurrency holds native,
// pre-conversion totals per original currency.
type Report struct {
	OwnerID        string
	From           time.Time
	To             time.Time
	TargetCurrency string
	Total          decimal.Decimal
	ByCategory     []ReportLine
	ByCurrency     []ReportLine
	SpendingCount  int
}

// SortedLines turns totals into lines ordered by descending amount, ties broken
// alphabetically by key, so that output is deterministic.
func SortedLines(totals map[string]decimal.Decimal) []ReportLine {
	lines := make([]ReportLine, 0, len(totals))
	for key, amount := range totals {
		lines = append(lines, ReportLine{Key: key, Amount: amount})
	}
	sort.Slice(lines, func(i, j int) bool {
		if cmp := lines[i].Amount.Cmp(lines[j].Amount); cmp != 0 {
			return cmp > 0
		}
		return lines[i].Key < lines[j].Key
	})
	return lines
}

// Lookup returns the amount for key, or zero when the key is absent.
func Lookup(lines []ReportLine, key string) decimal.Decimal {
	for _, line := range lines {
		if line.Key == key {
			return line.Amount
		}
	}
	return decimal.Zero
}
