package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/sinahatake/currency-exchange-api/internal/core/domain"
)

// CreateExchangeRateRequest defines the structure for creating a new exchange rate.
type CreateExchangeRateRequest struct {
	BaseCurrencyCode   string          `form:"baseCurrencyCode" json:"baseCurrencyCode" binding:"required"`
	TargetCurrencyCode string          `form:"targetCurrencyCode" json:"targetCurrencyCode" binding:"required"`
	Rate               decimal.Decimal `form:"rate" json:"rate"`
}

// UpdateExchangeRateRequest carries the new rate for an existing pair.
type UpdateExchangeRateRequest struct {
	Rate decimal.Decimal `form:"rate" json:"rate"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ID             int64            `json:"id"`
	BaseCurrency   CurrencyResponse `json:"baseCurrency"`
	TargetCurrency CurrencyResponse `json:"targetCurrency"`
	Rate           json.Number      `json:"rate" swaggertype:"number"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO.
// Stored quotes keep the precision they were registered with.
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ID:             rate.ID,
		BaseCurrency:   ToCurrencyResponse(&rate.BaseCurrency),
		TargetCurrency: ToCurrencyResponse(&rate.TargetCurrency),
		Rate:           json.Number(rate.Rate.String()),
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to a slice of ExchangeRateResponse DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}
