package services

import (
	portsrepo "github.com/sinahatake/currency-exchange-api/internal/core/ports/repositories"
	portssvc "github.com/sinahatake/currency-exchange-api/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...ExchangeServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The registry comes first; both rate services look currencies up through it.
	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency)
	container.Exchange = NewExchangeService(repos.ExchangeRateRepo, container.Currency, options...)

	return container
}
