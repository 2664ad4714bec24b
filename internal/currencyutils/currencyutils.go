// Package currencyutils provides the exact-decimal amount handling used by
// the transformer. Amounts never round-trip through floats.
package currencyutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// numericPattern is the strict grammar an amount must match before it is
// handed to the decimal parser. Thousands separators and currency symbols
// are not accepted.
var numericPattern = regexp.MustCompile(`^[-+]?\d*\.?\d+(?:[eE][-+]?\d+)?$`)

// ParseDecimal parses a strictly numeric string into an exact decimal.
// The second return value is false when the trimmed text does not fully
// match the numeric grammar. Callers treat false as "contributes nothing",
// never as an error.
func ParseDecimal(text string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(text)
	if s == "" || !numericPattern.MatchString(s) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// SumAmounts sums every parseable value, skipping the rest, and renders the
// total with exactly two fractional digits using half-up rounding. With
// takeAbsolute set the absolute value of the total is rendered, so refund
// magnitudes stay non-negative even when the sources are negative.
func SumAmounts(values []string, takeAbsolute bool) string {
	total := decimal.Zero
	for _, v := range values {
		d, ok := ParseDecimal(v)
		if !ok {
			if strings.TrimSpace(v) != "" {
				log.WithField("value", v).Debug("Skipping non-numeric amount")
			}
			continue
		}
		total = total.Add(d)
	}
	if takeAbsolute {
		total = total.Abs()
	}
	return FormatAmount(total)
}

// FormatAmount renders a decimal with exactly two fractional digits using
// half-up rounding, e.g. "217.66" or "0.00".
func FormatAmount(amount decimal.Decimal) string {
	return amount.Round(2).StringFixed(2)
}
