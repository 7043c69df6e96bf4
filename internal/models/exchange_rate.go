package models

import (
	"github.com/shopspring/decimal"
)

// ExchangeRate is a row of the exchange_rates table joined with both of its currencies.
type ExchangeRate struct {
	ID             int64           `json:"id"`
	BaseCurrency   Currency        `json:"baseCurrency"`
	TargetCurrency Currency        `json:"targetCurrency"`
	Rate           decimal.Decimal `json:"rate"` // NUMERIC, scanned without loss
}
