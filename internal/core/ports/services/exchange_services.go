package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sinahatake/currency-exchange-api/internal/core/domain"
)

// ExchangeSvc derives rates between any two registered currencies and converts amounts.
type ExchangeSvc interface {
	// ResolveRate finds a rate for base->target using a direct quote, the inverse
	// quote, or triangulation through domain.ReferenceCurrencyCode, in that order.
	ResolveRate(ctx context.Context, baseCode, targetCode string) (decimal.Decimal, error)

	// Convert converts amount of base into target. It never writes.
	Convert(ctx context.Context, baseCode, targetCode string, amount decimal.Decimal) (*domain.ConversionResult, error)
}
