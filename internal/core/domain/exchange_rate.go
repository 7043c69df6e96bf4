package domain

import "github.com/shopspring/decimal"

// ExchangeRate is a stored quote: one unit of BaseCurrency buys Rate units of TargetCurrency.
// At most one quote exists per ordered (base, target) pair.
type ExchangeRate struct {
	ID             int64           `json:"id"`
	BaseCurrency   Currency        `json:"baseCurrency"`
	TargetCurrency Currency        `json:"targetCurrency"`
	Rate           decimal.Decimal `json:"rate"`
}

// ConversionResult is the outcome of converting an amount between two currencies.
type ConversionResult struct {
	BaseCurrency    Currency
	TargetCurrency  Currency
	Rate            decimal.Decimal
	Amount          decimal.Decimal
	ConvertedAmount decimal.Decimal
}

// RateStrategy names how a rate between two currencies was derived.
type RateStrategy string

const (
	StrategyDirect  RateStrategy = "direct"
	StrategyInverse RateStrategy = "inverse"
	StrategyCross   RateStrategy = "cross"
)
