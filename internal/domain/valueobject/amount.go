// Package valueobject contains domain value objects for the spendings ledger.
package valueobject

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits stored for monetary amounts.
const AmountScale = 2

// MaxAmount is the largest amount a decimal(15,2) column holds.
var MaxAmount = decimal.RequireFromString("9999999999999.99")

var (
	errMalformedAmount = errors.New("malformed amount")
	errAmountTooLarge  = errors.New("amount too large")
)

// ParseAmount parses a user supplied amount. Both "." and "," are accepted as the
// decimal separator. The result is rounded half-even to AmountScale digits and
// must be strictly positive.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if strings.Count(s, ",")+strings.Count(s, ".") > 1 {
		return decimal.Zero, errMalformedAmount
	}
	s = strings.Replace(s, ",", ".", 1)

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errMalformedAmount
	}
	return NormalizeAmount(amount)
}

// NormalizeAmount rounds an amount to AmountScale digits and checks it is
// positive and no larger than MaxAmount.
func NormalizeAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	rounded := amount.RoundBank(AmountScale)
	if !rounded.IsPositive() {
		return decimal.Zero, errMalformedAmount
	}
	if rounded.GreaterThan(MaxAmount) {
		return decimal.Zero, errAmountTooLarge
	}
	return rounded, nil
}

// FormatAmount renders an amount with exactly AmountScale digits.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(AmountScale)
}
