package dto

import (
	"encoding/json"

	"github.com/sinahatake/currency-exchange-api/internal/core/domain"
	"github.com/sinahatake/currency-exchange-api/internal/utils"
)

// ConvertQuery holds the query parameters of a conversion request.
// Amount stays a string so that malformed numbers can be reported precisely.
type ConvertQuery struct {
	From   string `form:"from" binding:"required"`
	To     string `form:"to" binding:"required"`
	Amount string `form:"amount" binding:"required"`
}

// ConversionResponse is returned by the exchange endpoint.
type ConversionResponse struct {
	BaseCurrency    CurrencyResponse `json:"baseCurrency"`
	TargetCurrency  CurrencyResponse `json:"targetCurrency"`
	Rate            json.Number      `json:"rate" swaggertype:"number"`
	Amount          json.Number      `json:"amount" swaggertype:"number"`
	ConvertedAmount json.Number      `json:"convertedAmount" swaggertype:"number"`
}

func ToConversionResponse(res *domain.ConversionResult) ConversionResponse {
	return ConversionResponse{
		BaseCurrency:    ToCurrencyResponse(&res.BaseCurrency),
		TargetCurrency:  ToCurrencyResponse(&res.TargetCurrency),
		Rate:            utils.RateNumber(res.Rate),
		Amount:          json.Number(res.Amount.String()),
		ConvertedAmount: utils.AmountNumber(res.ConvertedAmount),
	}
}
