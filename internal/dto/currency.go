package dto

import (
	"github.com/sinahatake/currency-exchange-api/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to register a new currency.
// Accepted as form fields or JSON. The binding tags only check presence;
// format rules are enforced by the validate tags in the service layer.
type CreateCurrencyRequest struct {
	Code     string `form:"code" json:"code" binding:"required" validate:"len=3,alpha"`
	FullName string `form:"name" json:"name" binding:"required" validate:"required"`
	Sign     string `form:"sign" json:"sign" binding:"required" validate:"required,max=3"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
	Sign string `json:"sign"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		ID:   curr.ID,
		Name: curr.FullName,
		Code: curr.Code,
		Sign: curr.Sign,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to a slice of CurrencyResponse DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		res[i] = ToCurrencyResponse(&currencies[i])
	}
	return res
}
