package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sinahatake/currency-exchange-api/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindExchangeRate retrieves the quote for the exact ordered pair (base, target).
	// It never looks at the inverse pair and returns apperrors.ErrNotFound when absent.
	FindExchangeRate(ctx context.Context, baseCurrencyCode, targetCurrencyCode string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves every stored quote.
	ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate persists a new quote. BaseCurrency.ID and TargetCurrency.ID must be set.
	// An existing quote for the pair yields apperrors.ErrDuplicate.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error)

	// UpdateExchangeRate replaces the rate of an existing quote.
	// It returns apperrors.ErrNotFound when the pair has no quote and never inserts.
	UpdateExchangeRate(ctx context.Context, baseCurrencyCode, targetCurrencyCode string, rate decimal.Decimal) (*domain.ExchangeRate, error)
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
// This is a facade for clients that need access to all operations
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
