package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sinahatake/currency-exchange-api/internal/core/domain"
	"github.com/sinahatake/currency-exchange-api/internal/dto"
)

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetExchangeRate retrieves the direct quote between two currencies.
	GetExchangeRate(ctx context.Context, baseCode, targetCode string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves all stored quotes.
	ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// CreateExchangeRate persists a new exchange rate.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest) (*domain.ExchangeRate, error)

	// UpdateExchangeRate replaces the rate of an existing quote.
	UpdateExchangeRate(ctx context.Context, baseCode, targetCode string, rate decimal.Decimal) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
