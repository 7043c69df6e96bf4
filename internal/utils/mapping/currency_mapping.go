package mapping

import (
	"github.com/sinahatake/currency-exchange-api/internal/core/domain"
	"github.com/sinahatake/currency-exchange-api/internal/models"
)

// ToModelCurrency converts a domain Currency to a model Currency
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		ID:       d.ID,
		Code:     d.Code,
		FullName: d.FullName,
		Sign:     d.Sign,
	}
}

// ToDomainCurrency converts a model Currency to a domain Currency
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		ID:       m.ID,
		Code:     m.Code,
		FullName: m.FullName,
		Sign:     m.Sign,
	}
}

// ToDomainCurrencySlice converts a slice of model Currencies to a slice of domain Currencies
func ToDomainCurrencySlice(ms []models.Currency) []domain.Currency {
	ds := make([]domain.Currency, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrency(m)
	}
	return ds
}
