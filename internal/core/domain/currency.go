package domain

import "strings"

// CurrencyCodeLength is the length of an ISO 4217 style currency code.
const CurrencyCodeLength = 3

// MaxSignLength bounds the display sign of a currency, in characters.
const MaxSignLength = 3

// ReferenceCurrencyCode is the hub currency used to triangulate rates
// between two currencies that have no direct or inverse quote.
const ReferenceCurrencyCode = "USD"

// Currency represents a registered currency. Currencies are immutable once created.
type Currency struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`     // e.g. "USD", unique
	FullName string `json:"fullName"` // e.g. "US Dollar"
	Sign     string `json:"sign"`     // e.g. "$"
}

// NormalizeCode trims surrounding whitespace and uppercases a currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
