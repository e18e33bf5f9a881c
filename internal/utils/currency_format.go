package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// bgnSuffix is how BGN amounts are written in the UI.
const bgnSuffix = "лв"

// FormatCurrency renders an amount with two decimals and the currency marker.
// Example: 12.3 BGN returns "12.30 лв"
// Example: 12.3 EUR returns "12.30 EUR"
func FormatCurrency(amount decimal.Decimal, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" || currency == "BGN" {
		return amount.StringFixed(2) + " " + bgnSuffix
	}
	return amount.StringFixed(2) + " " + currency
}

// ParseAmount parses a user-typed amount, accepting a decimal comma.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	return decimal.NewFromString(raw)
}
