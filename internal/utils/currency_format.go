package utils

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

const (
	// RatePrecision is the number of decimal places a rate is reported with.
	RatePrecision int32 = 6
	// AmountPrecision is the number of decimal places a converted amount is reported with.
	AmountPrecision int32 = 2
)

// RoundHalfUp rounds d to places decimal places, with ties rounded away from zero.
// Example: 0.8888885 at 6 places returns 0.888889
func RoundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// FormatWithPrecision formats an amount with exactly precision decimal places,
// keeping trailing zeros.
// Example: 91 at precision 2 returns "91.00"
func FormatWithPrecision(amount decimal.Decimal, precision int32) string {
	return amount.StringFixed(precision)
}

// RateNumber renders a rate as a JSON number with RatePrecision places.
func RateNumber(rate decimal.Decimal) json.Number {
	return json.Number(FormatWithPrecision(rate, RatePrecision))
}

// AmountNumber renders an amount as a JSON number with AmountPrecision places.
func AmountNumber(amount decimal.Decimal) json.Number {
	return json.Number(FormatWithPrecision(amount, AmountPrecision))
}
